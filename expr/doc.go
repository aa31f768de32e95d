// Package expr is the node layer of the symbolic matrix-expression graph:
// immutable matrix-valued nodes that know how to evaluate themselves
// numerically and symbolically, propagate sparsity seed words, derive
// forward and adjoint sensitivities, print themselves, and emit low-level
// code fragments.
//
// The expr package provides:
//
//   - Expr — a value handle sharing an immutable Node; common
//     sub-expressions are shared structurally and the DAG is acyclic by
//     construction (constructors only consume already-built operands).
//     The zero Expr is the empty expression, the structural zero of the
//     sensitivity-propagation protocol.
//   - Node — the uniform contract every node kind implements: numeric and
//     symbolic-scalar evaluation over caller-provided buffers (both
//     short-circuiting to a no-op under in-place aliasing), derivative
//     propagation with the accumulate-then-clear adjoint-seed rule,
//     forward/backward sparsity seed-word propagation, two-part printing,
//     per-node code generation and scratch sizing.
//   - Node kinds: Sym (named leaf), Reshape (positional reinterpretation),
//     SubMatrix (rectangular gather), Scatter (its structural inverse) and
//     Add (elementwise sum, the adjoint accumulation vehicle).
//
// Error policy: construction contract violations (nonzero-count mismatch,
// selector out of range, pattern mismatch) fail at construction with
// sentinel errors — a malformed graph is never built. Inside the
// evaluation operations there is no recoverable error path: violated
// buffer or seed preconditions surface immediately as sentinels and no
// partial result is produced.
package expr
