// SPDX-License-Identifier: MIT

// Package dmat: the generic Mat[T] container. One flat slice, one value
// per structural nonzero, pattern-ordered. The generic parameter is what
// lets numeric, symbolic-scalar and seed-word buffers share one evaluation
// template in the node layer.
package dmat

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvlgrad/sparsity"
	"github.com/katalvlaran/lvlgrad/sym"
)

// Num is the numeric buffer used by plain evaluation.
type Num = Mat[float64]

// SMat is the symbolic-scalar buffer used by symbolic evaluation.
type SMat = Mat[sym.Value]

// BMat is the sparsity seed buffer: one word per nonzero, one bit per
// simultaneous propagation direction (up to 64). A dedicated word store is
// used instead of reinterpreting numeric buffers; the bit-aliasing of the
// original design was a storage trick, not part of the contract.
type BMat = Mat[uint64]

// Mat is a nonzero-value container bound to a sparsity pattern. The
// pattern is shared and immutable; the data slice is owned by whoever
// allocated it and may deliberately be shared to express in-place
// evaluation.
type Mat[T any] struct {
	sp   *sparsity.Pattern
	data []T // len == sp.NNZ(), row-major nonzero order
}

// New allocates a zero-initialized container over sp.
// Errors: ErrNilPattern. Complexity: O(nnz).
func New[T any](sp *sparsity.Pattern) (*Mat[T], error) {
	if sp == nil {
		return nil, ErrNilPattern
	}

	return &Mat[T]{sp: sp, data: make([]T, sp.NNZ())}, nil
}

// NewFrom wraps an existing nonzero slice without copying, so the caller
// can alias one backing array from several views (the in-place case).
// Errors: ErrNilPattern, ErrLengthMismatch. Complexity: O(1).
func NewFrom[T any](sp *sparsity.Pattern, data []T) (*Mat[T], error) {
	if sp == nil {
		return nil, ErrNilPattern
	}
	if len(data) != sp.NNZ() {
		return nil, fmt.Errorf("%d values for nnz %d: %w", len(data), sp.NNZ(), ErrLengthMismatch)
	}

	return &Mat[T]{sp: sp, data: data}, nil
}

// Sparsity returns the shared pattern. Complexity: O(1).
func (m *Mat[T]) Sparsity() *sparsity.Pattern { return m.sp }

// NNZ returns the nonzero count. Complexity: O(1).
func (m *Mat[T]) NNZ() int { return len(m.data) }

// Data returns the backing slice itself, NOT a copy. Mutating it mutates
// the container; this is intentional — the evaluation protocol works on
// caller-provided storage. Complexity: O(1).
func (m *Mat[T]) Data() []T { return m.data }

// At reads the k-th nonzero. Errors: ErrOutOfRange. Complexity: O(1).
func (m *Mat[T]) At(k int) (T, error) {
	var zero T
	if k < 0 || k >= len(m.data) {
		return zero, fmt.Errorf("position %d of %d: %w", k, len(m.data), ErrOutOfRange)
	}

	return m.data[k], nil
}

// Set writes the k-th nonzero. Errors: ErrOutOfRange. Complexity: O(1).
func (m *Mat[T]) Set(k int, v T) error {
	if k < 0 || k >= len(m.data) {
		return fmt.Errorf("position %d of %d: %w", k, len(m.data), ErrOutOfRange)
	}
	m.data[k] = v

	return nil
}

// Fill assigns v to every nonzero. Complexity: O(nnz).
func (m *Mat[T]) Fill(v T) {
	for k := range m.data {
		m.data[k] = v
	}
}

// Zero resets every nonzero to the zero value of T. Complexity: O(nnz).
func (m *Mat[T]) Zero() {
	var zero T
	m.Fill(zero)
}

// Clone returns a deep copy sharing the (immutable) pattern but owning a
// fresh data slice. Complexity: O(nnz).
func (m *Mat[T]) Clone() *Mat[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)

	return &Mat[T]{sp: m.sp, data: data}
}

// SharesStorage reports whether a and b alias the same backing array —
// the in-place condition every node operation short-circuits on. Two
// distinct empty containers never alias.
// Complexity: O(1).
func SharesStorage[T any](a, b *Mat[T]) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	if len(a.data) == 0 || len(b.data) == 0 {
		return false
	}

	return &a.data[0] == &b.data[0]
}

// String renders the nonzero sequence for debugging, e.g. "[1 2 3]".
func (m *Mat[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for k := range m.data {
		if k > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v", m.data[k])
	}
	sb.WriteByte(']')

	return sb.String()
}
