// Package sparsity describes which entries of a matrix are structurally
// nonzero, independent of their values.
//
// The sparsity package provides:
//
//   - Pattern — an immutable nonzero layout (shape + row-major nonzero
//     coordinates) shared by every value container and graph node that
//     refers to the same structure.
//   - Slice — a start:stop:step range selector resolved against a concrete
//     axis length, the addressing primitive for rectangular sub-blocks.
//   - Pattern.Sub — the restriction of a pattern to a selected block plus
//     the gather map from block nonzeros back to parent nonzeros, the one
//     query both gather and scatter operations are built on.
//
// Patterns are value objects: they are never mutated after construction,
// so they can be shared freely across expression graphs and goroutines.
//
// See the examples in this package and expr for usage patterns.
package sparsity
