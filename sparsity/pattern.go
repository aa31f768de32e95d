// SPDX-License-Identifier: MIT

// Package sparsity: Pattern — the immutable nonzero layout of a matrix.
// A Pattern stores its shape and the coordinates of every structural
// nonzero in strict row-major order; the position of a coordinate pair in
// that order is the nonzero's stable linear index, which every value
// container and graph node relies on.
package sparsity

import (
	"fmt"
	"sort"
	"strings"
)

// panicNegativeShape is the stable message for the one programmer error a
// constructor panics on; everything else is a returned sentinel.
const panicNegativeShape = "sparsity: shape dimensions must be non-negative"

// Pattern describes which entries of a rows×cols matrix are structurally
// nonzero. Immutable after construction; safe to share.
type Pattern struct {
	rows, cols int
	ri, ci     []int // nonzero coordinates, strict row-major order
}

// NewDense returns the pattern of a fully populated rows×cols matrix.
// Zero-sized axes are legal and yield an empty pattern; negative axes are
// a programmer error and panic with a stable message.
// Complexity: O(rows*cols).
func NewDense(rows, cols int) *Pattern {
	if rows < 0 || cols < 0 {
		panic(panicNegativeShape)
	}
	nnz := rows * cols
	ri := make([]int, 0, nnz)
	ci := make([]int, 0, nnz)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			ri = append(ri, i)
			ci = append(ci, j)
		}
	}

	return &Pattern{rows: rows, cols: cols, ri: ri, ci: ci}
}

// New builds a pattern from explicit nonzero triplets.
// Implementation:
//   - Stage 1: validate shape (panic on negative — programmer error) and
//     triplet slice lengths.
//   - Stage 2: validate every coordinate against the shape and enforce
//     strict row-major ordering (which also rules out duplicates).
//   - Stage 3: copy the triplets so the pattern owns its storage.
//
// Errors:
//   - ErrTripletLength when len(rowIdx) != len(colIdx).
//   - ErrOutOfRange when a coordinate lies outside the shape.
//   - ErrUnsorted when triplets are not strictly row-major ascending.
//
// Complexity:
//   - Time O(nnz), Space O(nnz).
func New(rows, cols int, rowIdx, colIdx []int) (*Pattern, error) {
	if rows < 0 || cols < 0 {
		panic(panicNegativeShape)
	}
	if len(rowIdx) != len(colIdx) {
		return nil, ErrTripletLength
	}
	for k := range rowIdx {
		i, j := rowIdx[k], colIdx[k]
		if i < 0 || i >= rows || j < 0 || j >= cols {
			return nil, fmt.Errorf("triplet %d at (%d,%d) in %d×%d: %w", k, i, j, rows, cols, ErrOutOfRange)
		}
		if k > 0 {
			pi, pj := rowIdx[k-1], colIdx[k-1]
			if i < pi || (i == pi && j <= pj) {
				return nil, fmt.Errorf("triplet %d at (%d,%d) after (%d,%d): %w", k, i, j, pi, pj, ErrUnsorted)
			}
		}
	}
	ri := make([]int, len(rowIdx))
	ci := make([]int, len(colIdx))
	copy(ri, rowIdx)
	copy(ci, colIdx)

	return &Pattern{rows: rows, cols: cols, ri: ri, ci: ci}, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (p *Pattern) Rows() int { return p.rows }

// Cols returns the number of columns. Complexity: O(1).
func (p *Pattern) Cols() int { return p.cols }

// NNZ returns the structural nonzero count. Complexity: O(1).
func (p *Pattern) NNZ() int { return len(p.ri) }

// Coord returns the (row, col) coordinate of the k-th nonzero in row-major
// order. Returns ErrOutOfRange when k is not a valid nonzero position.
// Complexity: O(1).
func (p *Pattern) Coord(k int) (int, int, error) {
	if k < 0 || k >= len(p.ri) {
		return 0, 0, fmt.Errorf("nonzero %d of %d: %w", k, len(p.ri), ErrOutOfRange)
	}

	return p.ri[k], p.ci[k], nil
}

// Triplets returns copies of the row and column index slices, in the
// pattern's canonical row-major order.
// Complexity: O(nnz) time and memory.
func (p *Pattern) Triplets() (rows, cols []int) {
	rows = make([]int, len(p.ri))
	cols = make([]int, len(p.ci))
	copy(rows, p.ri)
	copy(cols, p.ci)

	return rows, cols
}

// Index returns the linear nonzero position of entry (i, j), or -1 when
// the entry is structurally zero or outside the shape. Positions are found
// by binary search over the row-major order.
// Complexity: O(log nnz).
func (p *Pattern) Index(i, j int) int {
	if i < 0 || i >= p.rows || j < 0 || j >= p.cols {
		return -1
	}
	// First position with (row, col) >= (i, j) in row-major order.
	k := sort.Search(len(p.ri), func(k int) bool {
		return p.ri[k] > i || (p.ri[k] == i && p.ci[k] >= j)
	})
	if k < len(p.ri) && p.ri[k] == i && p.ci[k] == j {
		return k
	}

	return -1
}

// SameShape reports whether both patterns have identical extents.
// Complexity: O(1).
func (p *Pattern) SameShape(o *Pattern) bool {
	return o != nil && p.rows == o.rows && p.cols == o.cols
}

// Equal reports whether both patterns have identical extents AND identical
// nonzero layouts. Two equal patterns are fully interchangeable.
// Complexity: O(nnz).
func (p *Pattern) Equal(o *Pattern) bool {
	if !p.SameShape(o) || len(p.ri) != len(o.ri) {
		return false
	}
	for k := range p.ri {
		if p.ri[k] != o.ri[k] || p.ci[k] != o.ci[k] {
			return false
		}
	}

	return true
}

// Sub restricts the pattern to the rectangular block addressed by the two
// selectors and reports how the block's nonzeros map back to the parent.
// Implementation:
//   - Stage 1: resolve both selectors against the pattern's extents.
//   - Stage 2: scan the block in its own row-major order, keeping every
//     position that is structurally nonzero in the parent.
//
// Returns:
//   - *Pattern: the block's pattern (extents = selector lengths).
//   - []int: gather map; element k is the parent nonzero position backing
//     the block's k-th nonzero. len == block NNZ.
//
// Errors:
//   - ErrZeroStep / ErrSliceOutOfRange from selector resolution.
//
// Complexity:
//   - Time O(|rows|·|cols|·log nnz), Space O(block nnz).
//
// Notes:
//   - Empty selections are valid and produce a zero-nonzero block.
//   - The gather map is the single primitive gather (read parent at map
//     positions) and scatter (write parent at map positions) share.
func (p *Pattern) Sub(rowSel, colSel Slice) (*Pattern, []int, error) {
	rows, err := rowSel.Indices(p.rows)
	if err != nil {
		return nil, nil, fmt.Errorf("row selector %s: %w", rowSel, err)
	}
	cols, err := colSel.Indices(p.cols)
	if err != nil {
		return nil, nil, fmt.Errorf("col selector %s: %w", colSel, err)
	}

	var (
		ri, ci []int // block-local coordinates of surviving nonzeros
		gather []int // parent nonzero position per block nonzero
	)
	for a, i := range rows { // block row order follows the row selector
		for b, j := range cols { // block col order follows the col selector
			if k := p.Index(i, j); k >= 0 {
				ri = append(ri, a)
				ci = append(ci, b)
				gather = append(gather, k)
			}
		}
	}

	return &Pattern{rows: len(rows), cols: len(cols), ri: ri, ci: ci}, gather, nil
}

// String renders the layout as one mask row per matrix row, '*' for a
// structural nonzero and '.' for a structural zero. Intended for debugging
// and tests, not for serialization.
// Complexity: O(rows*cols).
func (p *Pattern) String() string {
	var sb strings.Builder
	k := 0
	for i := 0; i < p.rows; i++ {
		sb.WriteByte('[')
		for j := 0; j < p.cols; j++ {
			if k < len(p.ri) && p.ri[k] == i && p.ci[k] == j {
				sb.WriteByte('*')
				k++
			} else {
				sb.WriteByte('.')
			}
			if j < p.cols-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
