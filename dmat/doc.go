// Package dmat provides nonzero-value containers bound to a sparsity
// pattern.
//
// Mat[T] stores one T per structural nonzero of its Pattern, in the
// pattern's row-major nonzero order, inside a single flat backing slice.
// The same container carries all three buffer families the node layer
// works with:
//
//   - Num  = Mat[float64]   — plain numeric buffers
//   - SMat = Mat[sym.Value] — symbolic-scalar buffers
//   - BMat = Mat[uint64]    — sparsity seed words (64 directions per word)
//
// SharesStorage is the in-place aliasing predicate: node operations are
// required to become no-ops when an output buffer aliases an input buffer,
// and this package is where that condition is decided.
package dmat
