package expr_test

import (
	"testing"

	"github.com/katalvlaran/lvlgrad/codegen"
	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/expr"
	"github.com/katalvlaran/lvlgrad/sparsity"
	"github.com/stretchr/testify/require"
)

// dense4x4 builds the canonical test fixture: a dense 4×4 numeric buffer
// with v[i][j] = 4*i + j.
func dense4x4(t *testing.T) (*sparsity.Pattern, *dmat.Num) {
	t.Helper()
	sp := sparsity.NewDense(4, 4)
	vals := make([]float64, 16)
	for k := range vals {
		vals[k] = float64(k) // row-major, so index == 4*i + j
	}
	m, err := dmat.NewFrom(sp, vals)
	require.NoError(t, err)

	return sp, m
}

// TestSubMatrixConstruction covers selector resolution, the identity
// short-circuit and construction-time range checking.
func TestSubMatrixConstruction(t *testing.T) {
	x := expr.MustSym("x", sparsity.NewDense(4, 4))

	y, err := expr.SubMatrix(x, sparsity.Range(1, 3), sparsity.Range(0, 2))
	require.NoError(t, err)
	require.Equal(t, expr.OpSubRef, y.Op())
	require.Equal(t, 2, y.Rows())
	require.Equal(t, 2, y.Cols())
	require.Equal(t, 4, y.NNZ()) // a dense block of a dense parent

	all, err := expr.SubMatrix(x, sparsity.All(), sparsity.All())
	require.NoError(t, err)
	require.Same(t, x.Node(), all.Node()) // selecting everything is the identity

	_, err = expr.SubMatrix(x, sparsity.Range(0, 5), sparsity.All())
	require.ErrorIs(t, err, sparsity.ErrSliceOutOfRange) // bound at construction

	_, err = expr.SubMatrix(expr.Expr{}, sparsity.All(), sparsity.All())
	require.ErrorIs(t, err, expr.ErrEmptyExpr)
}

// TestSubMatrixEmptySelection confirms an empty block is a valid, albeit
// degenerate, expression.
func TestSubMatrixEmptySelection(t *testing.T) {
	x := expr.MustSym("x", sparsity.NewDense(4, 4))

	y, err := expr.SubMatrix(x, sparsity.Range(2, 2), sparsity.All())
	require.NoError(t, err)
	require.Equal(t, 0, y.Rows())
	require.Equal(t, 4, y.Cols())
	require.Equal(t, 0, y.NNZ())
}

// TestSubMatrixEvalNum checks the gather: rows [1,3) and columns [0,2) of
// a dense 4×4 with v[i][j] = 4*i + j gather to the block [[4,5],[8,9]].
func TestSubMatrixEvalNum(t *testing.T) {
	sp, in := dense4x4(t)
	x := expr.MustSym("x", sp)
	y, err := expr.SubMatrix(x, sparsity.Range(1, 3), sparsity.Range(0, 2))
	require.NoError(t, err)

	out, err := dmat.New[float64](y.Sparsity())
	require.NoError(t, err)
	require.NoError(t, y.Node().EvalNum([]*dmat.Num{in}, []*dmat.Num{out}, nil))
	require.Equal(t, []float64{4, 5, 8, 9}, out.Data())
}

// TestSubMatrixEvalStrided checks a stepped selection: every other column
// of the first row.
func TestSubMatrixEvalStrided(t *testing.T) {
	sp, in := dense4x4(t)
	x := expr.MustSym("x", sp)

	colSel, err := sparsity.NewSlice(0, sparsity.End, 2)
	require.NoError(t, err)
	y, err := expr.SubMatrix(x, sparsity.Range(0, 1), colSel)
	require.NoError(t, err)
	require.Equal(t, 2, y.NNZ())

	out, err := dmat.New[float64](y.Sparsity())
	require.NoError(t, err)
	require.NoError(t, y.Node().EvalNum([]*dmat.Num{in}, []*dmat.Num{out}, nil))
	require.Equal(t, []float64{0, 2}, out.Data())
}

// TestSubMatrixDerive runs one forward and one adjoint direction through
// the same call — the directions must not interfere.
func TestSubMatrixDerive(t *testing.T) {
	sp := sparsity.NewDense(4, 4)
	x := expr.MustSym("x", sp)
	y, err := expr.SubMatrix(x, sparsity.Range(1, 3), sparsity.Range(0, 2))
	require.NoError(t, err)

	dep, out := x, y
	fseed := expr.MustSym("dx", sp)              // parent-shaped forward seed
	aseed := expr.MustSym("ybar", y.Sparsity())  // block-shaped adjoint seed
	var fsens, asens expr.Expr

	err = y.Node().Derive(
		[]*expr.Expr{&dep}, []*expr.Expr{&out},
		[][]*expr.Expr{{&fseed}}, [][]*expr.Expr{{&fsens}},
		[][]*expr.Expr{{&aseed}}, [][]*expr.Expr{{&asens}},
		true)
	require.NoError(t, err)

	// Forward: the tangent gathers through the same selectors.
	require.Equal(t, expr.OpSubRef, fsens.Op())
	require.True(t, fsens.Sparsity().Equal(y.Sparsity()))

	// Adjoint: the sensitivity scatters the block back into the parent
	// layout, and the consumed seed slot reads empty.
	require.Equal(t, expr.OpScatter, asens.Op())
	require.True(t, asens.Sparsity().Equal(sp))
	require.True(t, aseed.IsEmpty())
	require.False(t, fseed.IsEmpty())
}

// TestSubMatrixAdjointValues evaluates the adjoint expression produced by
// Derive and checks the scatter semantics value-by-value: the seed lands
// in the block, everything else is zero.
func TestSubMatrixAdjointValues(t *testing.T) {
	sp := sparsity.NewDense(4, 4)
	x := expr.MustSym("x", sp)
	y, err := expr.SubMatrix(x, sparsity.Range(1, 3), sparsity.Range(0, 2))
	require.NoError(t, err)

	dep, out := x, y
	aseed := expr.MustSym("ybar", y.Sparsity())
	var asens expr.Expr
	err = y.Node().Derive(
		[]*expr.Expr{&dep}, []*expr.Expr{&out},
		nil, nil,
		[][]*expr.Expr{{&aseed}}, [][]*expr.Expr{{&asens}},
		true)
	require.NoError(t, err)

	// Evaluate the resulting scatter node over a concrete seed.
	seedVals, err := dmat.NewFrom(y.Sparsity(), []float64{10, 20, 30, 40})
	require.NoError(t, err)
	res, err := dmat.New[float64](sp)
	require.NoError(t, err)
	require.NoError(t, asens.Node().EvalNum([]*dmat.Num{seedVals}, []*dmat.Num{res}, nil))
	require.Equal(t, []float64{
		0, 0, 0, 0,
		10, 20, 0, 0,
		30, 40, 0, 0,
		0, 0, 0, 0,
	}, res.Data())
}

// TestSubMatrixAdjointAccumulation drives the adjoint sweep over two
// consumers of one upstream value: contributions must sum in the shared
// slot, never overwrite.
func TestSubMatrixAdjointAccumulation(t *testing.T) {
	sp := sparsity.NewDense(4, 4)
	x := expr.MustSym("x", sp)
	top, err := expr.SubMatrix(x, sparsity.Range(0, 2), sparsity.All())
	require.NoError(t, err)
	bot, err := expr.SubMatrix(x, sparsity.Range(2, 4), sparsity.All())
	require.NoError(t, err)

	var xbar expr.Expr // the one slot both consumers accumulate into
	for i, half := range []expr.Expr{top, bot} {
		dep, out := x, half
		seed := expr.MustSym([]string{"tbar", "bbar"}[i], half.Sparsity())
		err = half.Node().Derive(
			[]*expr.Expr{&dep}, []*expr.Expr{&out},
			nil, nil,
			[][]*expr.Expr{{&seed}}, [][]*expr.Expr{{&xbar}},
			true)
		require.NoError(t, err)
		require.True(t, seed.IsEmpty())
	}
	require.Equal(t, expr.OpAdd, xbar.Op(), "two contributions must meet in a sum")
	require.True(t, xbar.Sparsity().Equal(sp))
}

// TestSubMatrixSparsity covers both word directions through the gather.
func TestSubMatrixSparsity(t *testing.T) {
	sp := sparsity.NewDense(4, 4)
	x := expr.MustSym("x", sp)
	y, err := expr.SubMatrix(x, sparsity.Range(1, 3), sparsity.Range(0, 2))
	require.NoError(t, err)
	n := y.Node()

	in, err := dmat.New[uint64](sp)
	require.NoError(t, err)
	for k := range in.Data() {
		in.Data()[k] = 1 << uint(k%8) // distinguishable tag per position
	}
	out, err := dmat.New[uint64](y.Sparsity())
	require.NoError(t, err)

	// Forward: the block positions 4, 5, 8, 9 gather in.
	require.NoError(t, n.PropagateSparsity([]*dmat.BMat{in}, []*dmat.BMat{out}, true))
	require.Equal(t, []uint64{1 << 4, 1 << 5, 1 << 0, 1 << 1}, out.Data())

	// Backward: the output words OR back into exactly those positions and
	// the output slot is consumed.
	in.Zero()
	copy(out.Data(), []uint64{2, 4, 8, 16})
	require.NoError(t, n.PropagateSparsity([]*dmat.BMat{in}, []*dmat.BMat{out}, false))
	want := make([]uint64, 16)
	want[4], want[5], want[8], want[9] = 2, 4, 8, 16
	require.Equal(t, want, in.Data())
	require.Equal(t, []uint64{0, 0, 0, 0}, out.Data())
}

// TestSubMatrixPrint checks the postfix selector rendering.
func TestSubMatrixPrint(t *testing.T) {
	x := expr.MustSym("x", sparsity.NewDense(4, 4))
	y, err := expr.SubMatrix(x, sparsity.Range(1, 3), sparsity.All())
	require.NoError(t, err)
	require.Equal(t, "x[1:3, :]", y.String())
}

// TestSubMatrixGenerate checks the emitted gather loop with its shared
// index table, plus the aliasing and empty-block suppressions.
func TestSubMatrixGenerate(t *testing.T) {
	x := expr.MustSym("x", sparsity.NewDense(4, 4))
	y, err := expr.SubMatrix(x, sparsity.Range(1, 3), sparsity.Range(0, 2))
	require.NoError(t, err)

	g := codegen.New()
	require.NoError(t, y.Node().Generate(g, []string{"w0"}, []string{"w1"}))
	src := g.Source()
	require.Contains(t, src, "static const int s0[] = {4, 5, 8, 9};")
	require.Contains(t, src, "for (i=0; i<4; ++i) w1[i] = w0[s0[i]];")

	g = codegen.New()
	require.NoError(t, y.Node().Generate(g, []string{"w0"}, []string{"w0"}))
	require.Empty(t, g.Source()) // aliased storage emits nothing

	empty, err := expr.SubMatrix(x, sparsity.Range(2, 2), sparsity.All())
	require.NoError(t, err)
	g = codegen.New()
	require.NoError(t, empty.Node().Generate(g, []string{"w0"}, []string{"w1"}))
	require.Empty(t, g.Source()) // an empty block moves nothing
}
