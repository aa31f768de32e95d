// SPDX-License-Identifier: MIT

// Package sparsity: Slice — an immutable start:stop:step range selector.
// A Slice is a pure value object; it holds no reference to any axis and is
// only given meaning by resolving it against a concrete axis length.
package sparsity

import (
	"fmt"
	"math"
)

// End is the sentinel Stop value meaning "through the end of the axis".
// With a positive step it resolves to the axis length; with a negative
// step it resolves to one before index zero, so the walk reaches 0.
const End = math.MaxInt

// Slice addresses a strided sub-range of one axis: Start inclusive, Stop
// exclusive, Step nonzero (negative steps walk downward). The zero value
// is not a valid selector (its step is zero); build slices with NewSlice,
// Range or All.
type Slice struct {
	Start int // first index, inclusive; must lie in [0, n) once resolved
	Stop  int // one past the last index (exclusive); End means axis end
	Step  int // stride; must be nonzero, may be negative
}

// NewSlice builds a Slice with full start/stop/step control.
// Implementation:
//   - Stage 1: reject a zero step (the only statically checkable violation).
//   - Stage 2: return the value; bounds are checked at resolution time
//     because they depend on the axis length.
//
// Errors:
//   - ErrZeroStep when step == 0.
//
// Complexity:
//   - Time O(1), Space O(1).
func NewSlice(start, stop, step int) (Slice, error) {
	if step == 0 {
		return Slice{}, ErrZeroStep
	}

	return Slice{Start: start, Stop: stop, Step: step}, nil
}

// Range is the common contiguous selector [start, stop) with step 1.
// Complexity: O(1).
func Range(start, stop int) Slice {
	return Slice{Start: start, Stop: stop, Step: 1}
}

// All selects a whole axis regardless of its length.
// Complexity: O(1).
func All() Slice {
	return Slice{Start: 0, Stop: End, Step: 1}
}

// resolvedStop maps the End sentinel onto a concrete exclusive bound for
// the given axis length and walk direction.
func (s Slice) resolvedStop(n int) int {
	if s.Stop != End {
		return s.Stop
	}
	if s.Step > 0 {
		return n // walk up to the last index
	}

	return -1 // walk down through index zero
}

// Len reports how many indices the slice resolves to on an axis of length
// n, without allocating. An empty resolution is valid and yields 0.
// Complexity: O(1).
func (s Slice) Len(n int) int {
	if s.Step == 0 {
		return 0
	}
	stop := s.resolvedStop(n)
	var span int
	if s.Step > 0 {
		span = stop - s.Start
	} else {
		span = s.Start - stop
	}
	if span <= 0 {
		return 0
	}
	step := s.Step
	if step < 0 {
		step = -step
	}

	return (span + step - 1) / step
}

// Indices resolves the slice against an axis of length n and returns the
// addressed indices in walk order.
// Implementation:
//   - Stage 1: validate step and materialize the End sentinel.
//   - Stage 2: walk Start → Stop by Step, bounds-checking every index.
//
// Behavior highlights:
//   - An empty resolution (Start already past Stop) is valid and returns
//     an empty, non-nil slice — a zero-sized block, not a failure.
//
// Errors:
//   - ErrZeroStep when Step == 0.
//   - ErrSliceOutOfRange when any produced index falls outside [0, n).
//
// Complexity:
//   - Time O(k) for k produced indices, Space O(k).
func (s Slice) Indices(n int) ([]int, error) {
	if s.Step == 0 {
		return nil, ErrZeroStep
	}
	stop := s.resolvedStop(n)

	idx := make([]int, 0, s.Len(n))
	if s.Step > 0 {
		for i := s.Start; i < stop; i += s.Step {
			if i < 0 || i >= n {
				return nil, fmt.Errorf("index %d on axis of length %d: %w", i, n, ErrSliceOutOfRange)
			}
			idx = append(idx, i)
		}
	} else {
		for i := s.Start; i > stop; i += s.Step {
			if i < 0 || i >= n {
				return nil, fmt.Errorf("index %d on axis of length %d: %w", i, n, ErrSliceOutOfRange)
			}
			idx = append(idx, i)
		}
	}

	return idx, nil
}

// String renders the selector in start:stop[:step] form; a full-axis
// selector renders as ":". Used by expression printing.
func (s Slice) String() string {
	if s.Start == 0 && s.Stop == End && s.Step == 1 {
		return ":"
	}
	stop := "$"
	if s.Stop != End {
		stop = fmt.Sprintf("%d", s.Stop)
	}
	if s.Step == 1 {
		return fmt.Sprintf("%d:%s", s.Start, stop)
	}

	return fmt.Sprintf("%d:%s:%d", s.Start, stop, s.Step)
}
