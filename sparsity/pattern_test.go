// Package sparsity_test contains unit tests for the Pattern type of the
// sparsity package.
package sparsity_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/lvlgrad/sparsity"
	"github.com/stretchr/testify/require"
)

// TestNewDenseLayout verifies shape, nonzero count and row-major ordering
// of a dense pattern.
func TestNewDenseLayout(t *testing.T) {
	p := sparsity.NewDense(2, 3) // fully populated 2×3 pattern

	require.Equal(t, 2, p.Rows()) // expected row extent
	require.Equal(t, 3, p.Cols()) // expected column extent
	require.Equal(t, 6, p.NNZ())  // all six entries are structural nonzeros

	rows, cols := p.Triplets() // canonical row-major coordinates
	wantRows := []int{0, 0, 0, 1, 1, 1}
	wantCols := []int{0, 1, 2, 0, 1, 2}
	require.Empty(t, cmp.Diff(wantRows, rows)) // row indices in row-major order
	require.Empty(t, cmp.Diff(wantCols, cols)) // column indices in row-major order
}

// TestNewDensePanicsOnNegativeShape ensures negative extents are treated
// as a programmer error.
func TestNewDensePanicsOnNegativeShape(t *testing.T) {
	require.Panics(t, func() { sparsity.NewDense(-1, 2) }) // negative rows must panic
	require.Panics(t, func() { sparsity.NewDense(2, -1) }) // negative cols must panic
}

// TestNewValidation covers the construction sentinels for explicit triplets.
func TestNewValidation(t *testing.T) {
	_, err := sparsity.New(2, 2, []int{0, 1}, []int{0})  // mismatched triplet slices
	require.ErrorIs(t, err, sparsity.ErrTripletLength)   // expect ErrTripletLength
	_, err = sparsity.New(2, 2, []int{0, 2}, []int{0, 0}) // row 2 outside a 2×2 shape
	require.ErrorIs(t, err, sparsity.ErrOutOfRange)      // expect ErrOutOfRange
	_, err = sparsity.New(2, 2, []int{1, 0}, []int{0, 0}) // descending row order
	require.ErrorIs(t, err, sparsity.ErrUnsorted)        // expect ErrUnsorted
	_, err = sparsity.New(2, 2, []int{0, 0}, []int{1, 1}) // duplicate coordinate
	require.ErrorIs(t, err, sparsity.ErrUnsorted)        // duplicates violate strict order
}

// TestIndexLookup verifies linear position lookup for nonzeros, zeros and
// out-of-shape coordinates.
func TestIndexLookup(t *testing.T) {
	// Diagonal of a 3×3 matrix: nonzeros at (0,0), (1,1), (2,2).
	p, err := sparsity.New(3, 3, []int{0, 1, 2}, []int{0, 1, 2})
	require.NoError(t, err) // valid strictly ordered triplets

	require.Equal(t, 0, p.Index(0, 0))  // first diagonal entry
	require.Equal(t, 1, p.Index(1, 1))  // second diagonal entry
	require.Equal(t, 2, p.Index(2, 2))  // third diagonal entry
	require.Equal(t, -1, p.Index(0, 1)) // structural zero
	require.Equal(t, -1, p.Index(3, 0)) // outside the shape
	require.Equal(t, -1, p.Index(-1, 0)) // negative coordinate
}

// TestCoordBounds ensures Coord rejects invalid nonzero positions.
func TestCoordBounds(t *testing.T) {
	p := sparsity.NewDense(1, 2) // two nonzeros

	i, j, err := p.Coord(1) // last valid position
	require.NoError(t, err)
	require.Equal(t, 0, i)
	require.Equal(t, 1, j)

	_, _, err = p.Coord(2) // one past the end
	require.ErrorIs(t, err, sparsity.ErrOutOfRange)
	_, _, err = p.Coord(-1) // negative position
	require.ErrorIs(t, err, sparsity.ErrOutOfRange)
}

// TestEqualAndSameShape distinguishes shape equality from layout equality.
func TestEqualAndSameShape(t *testing.T) {
	dense := sparsity.NewDense(2, 2)                              // full 2×2
	diag, err := sparsity.New(2, 2, []int{0, 1}, []int{0, 1})     // diagonal 2×2
	require.NoError(t, err)                                       // valid construction
	require.True(t, dense.SameShape(diag))                        // same extents
	require.False(t, dense.Equal(diag))                           // different layouts
	require.True(t, dense.Equal(sparsity.NewDense(2, 2)))         // identical layouts
	require.False(t, dense.SameShape(sparsity.NewDense(2, 3)))    // different extents
}

// TestSubDenseBlock checks restriction of a dense pattern to a contiguous
// block together with its gather map.
func TestSubDenseBlock(t *testing.T) {
	p := sparsity.NewDense(4, 4) // dense 4×4, row-major nonzero k = 4*i+j

	// Rows [1,3), columns [0,2) — the 2×2 block at (1,0).
	sub, gather, err := p.Sub(sparsity.Range(1, 3), sparsity.Range(0, 2))
	require.NoError(t, err)       // selectors lie inside the shape
	require.Equal(t, 2, sub.Rows()) // block has two rows
	require.Equal(t, 2, sub.Cols()) // block has two columns
	require.Equal(t, 4, sub.NNZ())  // dense block keeps all four entries

	// Parent positions of the block entries in block row-major order.
	require.Empty(t, cmp.Diff([]int{4, 5, 8, 9}, gather))
}

// TestSubSparseParent ensures only nonzeros inside the block survive and
// the block pattern is expressed in block-local coordinates.
func TestSubSparseParent(t *testing.T) {
	// 3×3 with nonzeros at (0,0), (1,2), (2,1).
	p, err := sparsity.New(3, 3, []int{0, 1, 2}, []int{0, 2, 1})
	require.NoError(t, err) // valid construction

	// Rows [1,3), all columns: keeps (1,2) and (2,1) only.
	sub, gather, err := p.Sub(sparsity.Range(1, 3), sparsity.All())
	require.NoError(t, err)        // resolution succeeds
	require.Equal(t, 2, sub.NNZ()) // two surviving nonzeros

	rows, cols := sub.Triplets()                      // block-local coordinates
	require.Empty(t, cmp.Diff([]int{0, 1}, rows))     // rows re-based to the block
	require.Empty(t, cmp.Diff([]int{2, 1}, cols))     // columns unchanged (All selector)
	require.Empty(t, cmp.Diff([]int{1, 2}, gather))   // parent nonzero positions
}

// TestSubEmptySelection treats a zero-length selection as a valid
// zero-sized block rather than a failure.
func TestSubEmptySelection(t *testing.T) {
	p := sparsity.NewDense(3, 3) // dense parent

	sub, gather, err := p.Sub(sparsity.Range(2, 2), sparsity.All()) // empty row range
	require.NoError(t, err)         // empty selection is not an error
	require.Equal(t, 0, sub.Rows()) // zero-row block
	require.Equal(t, 3, sub.Cols()) // column extent preserved
	require.Equal(t, 0, sub.NNZ())  // no nonzeros
	require.Empty(t, gather)        // nothing to gather
}

// TestSubSelectorOutOfRange surfaces selector violations as wrapped
// sparsity sentinels.
func TestSubSelectorOutOfRange(t *testing.T) {
	p := sparsity.NewDense(3, 3) // dense parent

	_, _, err := p.Sub(sparsity.Range(1, 5), sparsity.All()) // rows exceed the shape
	require.ErrorIs(t, err, sparsity.ErrSliceOutOfRange)     // expect the slice sentinel
}

// TestStringMask checks the debug rendering of a small pattern.
func TestStringMask(t *testing.T) {
	p, err := sparsity.New(2, 2, []int{0, 1}, []int{0, 1}) // 2×2 diagonal
	require.NoError(t, err)                                // valid construction

	require.Equal(t, "[*, .]\n[., *]\n", p.String()) // mask rows with '*' and '.'
}
