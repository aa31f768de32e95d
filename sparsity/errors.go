// SPDX-License-Identifier: MIT
// Package sparsity: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// sparsity package. All operations MUST return these sentinels and tests
// MUST check them via errors.Is. Panics are reserved for programmer errors
// (negative shapes in constructors).

package sparsity

import "errors"

var (
	// ErrTripletLength is returned when the row-index and column-index
	// slices handed to New have different lengths.
	ErrTripletLength = errors.New("sparsity: triplet slices differ in length")

	// ErrOutOfRange indicates that a nonzero coordinate or a linear nonzero
	// position is outside the pattern's bounds.
	ErrOutOfRange = errors.New("sparsity: index out of range")

	// ErrUnsorted indicates that nonzero triplets are not in strict
	// row-major order (ascending, no duplicates). Construction requires the
	// canonical order so that positional nonzero semantics stay stable.
	ErrUnsorted = errors.New("sparsity: triplets not in strict row-major order")

	// ErrZeroStep is returned when a Slice carries a step of zero; such a
	// selector addresses nothing meaningful and never resolves.
	ErrZeroStep = errors.New("sparsity: slice step is zero")

	// ErrSliceOutOfRange is returned when resolving a Slice against an axis
	// length would produce an index outside [0, n).
	ErrSliceOutOfRange = errors.New("sparsity: slice exceeds axis bounds")
)
