// SPDX-License-Identifier: MIT
// Package dmat: sentinel error set. All container operations return these
// sentinels; tests check them via errors.Is.

package dmat

import "errors"

var (
	// ErrNilPattern indicates a container was requested without a pattern.
	ErrNilPattern = errors.New("dmat: nil sparsity pattern")

	// ErrLengthMismatch indicates the supplied data slice does not match
	// the pattern's nonzero count.
	ErrLengthMismatch = errors.New("dmat: data length differs from pattern nnz")

	// ErrOutOfRange indicates a linear nonzero position outside [0, nnz).
	ErrOutOfRange = errors.New("dmat: nonzero position out of range")
)
