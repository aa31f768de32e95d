// SPDX-License-Identifier: MIT

// Package sched turns expression graphs into executable schedules.
//
// A Schedule is a fixed topological ordering of the distinct nodes
// reachable from a set of output expressions. Shared sub-expressions are
// visited once; the ordering guarantees every node's dependencies precede
// it. Over that one ordering the package runs every sweep the node layer
// supports:
//
//   - Eval / EvalSym — numeric and symbolic-scalar value sweeps.
//   - ForwardSparsity / ReverseSparsity — per-nonzero dependency-word
//     sweeps (one bit per simultaneous direction).
//   - Forward / Reverse — symbolic derivative graph construction by
//     forward tangent and reverse adjoint propagation.
//   - Generate — emission of one flat code kernel for the whole graph.
//
// Inputs are the named symbolic leaves discovered during compilation, in
// first-use order. Two distinct leaves may not share a name; one leaf
// reachable through many paths is one input.
package sched
