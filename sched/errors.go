// SPDX-License-Identifier: MIT
// Package sched: sentinel error set (unified, consistent).
// Tests MUST match them via errors.Is.

package sched

import "errors"

var (
	// ErrNoOutputs indicates Compile was called without any output
	// expression.
	ErrNoOutputs = errors.New("sched: no output expressions")

	// ErrEmptyOutput indicates an output slot held the empty expression.
	ErrEmptyOutput = errors.New("sched: empty output expression")

	// ErrDuplicateSymbol indicates two distinct symbolic leaves carry the
	// same name, which would make input binding ambiguous.
	ErrDuplicateSymbol = errors.New("sched: duplicate symbol name")

	// ErrUnboundInput indicates an evaluation sweep was started without a
	// buffer for one of the schedule's inputs.
	ErrUnboundInput = errors.New("sched: unbound input")

	// ErrInputShape indicates a bound input buffer whose sparsity pattern
	// differs from the leaf's declared pattern. Nonzero count alone is not
	// enough: a 6×1 buffer must not bind to a 2×3 leaf.
	ErrInputShape = errors.New("sched: input buffer pattern mismatch")

	// ErrSeedCount indicates a derivative or sparsity sweep was given a
	// direction whose seed count does not match the schedule's inputs
	// (forward) or outputs (reverse).
	ErrSeedCount = errors.New("sched: seed count mismatch")

	// ErrNilGenerator indicates Generate was called without a generator.
	ErrNilGenerator = errors.New("sched: nil generator")
)
