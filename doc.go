// Package lvlgrad is a symbolic matrix-expression toolkit: build sparse
// matrix-valued computational graphs, evaluate them numerically or
// symbolically, propagate sparsity patterns, derive forward and adjoint
// sensitivities, and emit low-level code for the whole graph.
//
// 🚀 What is lvlgrad?
//
//	A pure-Go library that brings together:
//		• Sparsity patterns: immutable nonzero layouts + range selectors
//		• Nonzero containers: one generic buffer type for numeric values,
//		  symbolic scalars and sparsity seed words
//		• Graph nodes: reshape, submatrix gather, scatter, elementwise sum
//		  and named symbols, all behind one evaluation contract
//		• Sensitivities: forward (tangent) and adjoint (cotangent)
//		  propagation with the accumulate-then-clear seed protocol
//		• Code generation: per-node fragments assembled into a flat kernel
//
// ✨ Why choose lvlgrad?
//
//   - Deterministic – no global state, fixed sweep orders, stable output
//   - Rock-solid guarantees – sentinel errors, construction-time contracts
//   - Pure Go – no cgo, no hidden deps
//   - Composable – nodes are immutable values sharing common sub-expressions
//
// Under the hood, everything is organized under six subpackages:
//
//	sparsity/ — Pattern (nonzero layout) and Slice (start:stop:step selector)
//	dmat/     — Mat[T] nonzero-value containers bound to a Pattern
//	sym/      — minimal symbolic scalars for the symbolic evaluation path
//	expr/     — the node layer: Expr handles, node kinds, the Node contract
//	codegen/  — fragment accumulator with index-table deduplication
//	sched/    — topological scheduler: eval, sparsity & sensitivity sweeps
//
// Quick sketch:
//
//	x := expr.MustSym("x", sparsity.NewDense(4, 4))
//	b, _ := expr.SubMatrix(x, sparsity.Range(1, 3), sparsity.Range(0, 2))
//	g, _ := sched.Compile(b)
//	out, _ := g.Eval(map[string]*dmat.Num{"x": xv})
//
// Dive into the per-package docs for the full contract, starting with expr.
//
//	go get github.com/katalvlaran/lvlgrad
package lvlgrad
