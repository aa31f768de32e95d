// SPDX-License-Identifier: MIT

// Package expr: the Scatter node — the structural inverse of SubMatrix.
// A block-shaped value is placed into a zero-filled value of the target
// pattern at the positions the two selectors address. Gather and scatter
// are mutually adjoint, which is exactly why this node exists: it is the
// adjoint transform of SubMatrix, and SubMatrix is its.
package expr

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/codegen"
	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/sparsity"
)

type scatterNode struct {
	baseNode
	rowSel, colSel sparsity.Slice
	sel            []int // own (target) nonzero position per dependency nonzero
}

// Scatter places the block-shaped x into a zero-filled value of pattern
// sp at the block addressed by the two selectors.
// Implementation:
//   - Stage 1: validate operands and resolve the selectors against sp.
//   - Stage 2: require x's pattern to equal sp's restriction to the block
//     (the construction-time contract that makes eval a pure placement).
//   - Stage 3: short-circuit the identity placement to x itself.
//
// Errors:
//   - ErrEmptyExpr, ErrNilPattern on missing operands.
//   - sparsity.ErrZeroStep / ErrSliceOutOfRange (wrapped) from selector
//     resolution.
//   - ErrPatternMismatch when x is not shaped like the addressed block.
//
// Complexity:
//   - Time O(|rows|·|cols|·log nnz), Space O(block nnz).
func Scatter(x Expr, sp *sparsity.Pattern, rowSel, colSel sparsity.Slice) (Expr, error) {
	if x.IsEmpty() {
		return Expr{}, ErrEmptyExpr
	}
	if sp == nil {
		return Expr{}, ErrNilPattern
	}
	sub, sel, err := sp.Sub(rowSel, colSel)
	if err != nil {
		return Expr{}, fmt.Errorf("scatter into %d×%d: %w", sp.Rows(), sp.Cols(), err)
	}
	if !sub.Equal(x.Sparsity()) {
		return Expr{}, fmt.Errorf("scatter of %d×%d block into %d×%d at [%s, %s]: %w",
			x.Rows(), x.Cols(), sp.Rows(), sp.Cols(), rowSel, colSel, ErrPatternMismatch)
	}
	if sp.Equal(x.Sparsity()) && isIdentity(sel) {
		return x, nil // placing everything onto itself is the identity
	}

	return wrap(&scatterNode{
		baseNode: baseNode{op: OpScatter, sp: sp, deps: []Expr{x}},
		rowSel:   rowSel,
		colSel:   colSel,
		sel:      sel,
	}), nil
}

func (n *scatterNode) EvalNum(in, out []*dmat.Num, _ *Workspace) error {
	return scatterEval(n, in, out)
}

func (n *scatterNode) EvalSym(in, out []*dmat.SMat, _ *Workspace) error {
	return scatterEval(n, in, out)
}

// scatterEval is the shared placement template: zero-fill the target,
// then place the block values at their mapped positions.
func scatterEval[T any](n *scatterNode, in, out []*dmat.Mat[T]) error {
	if err := checkBuffers(n, in, out); err != nil {
		return err
	}
	if dmat.SharesStorage(in[0], out[0]) {
		return nil
	}
	evalScatter(in[0], out[0], n.sel)

	return nil
}

func (n *scatterNode) Derive(in, out []*Expr, fwdSeed, fwdSens, adjSeed, adjSens [][]*Expr, outputGiven bool) error {
	if len(in) != 1 || len(out) != 1 || in[0] == nil || out[0] == nil {
		return ErrArity
	}
	if err := checkSeeds(n, fwdSeed, fwdSens, adjSeed, adjSens); err != nil {
		return err
	}
	if in[0] == out[0] {
		return nil
	}
	if !outputGiven {
		y, err := Scatter(*in[0], n.sp, n.rowSel, n.colSel)
		if err != nil {
			return err
		}
		*out[0] = y
	}

	// Forward: scatter the seed exactly as the primal scatters values.
	for d := range fwdSeed {
		seed := *fwdSeed[d][0]
		if seed.IsEmpty() {
			continue
		}
		sens, err := Scatter(seed, n.sp, n.rowSel, n.colSel)
		if err != nil {
			return err
		}
		*fwdSens[d][0] = sens
	}

	// Adjoint: gather the block back out of the seed — the adjoint of a
	// scatter is the corresponding sub-reference.
	for d := range adjSeed {
		seed := *adjSeed[d][0]
		if !seed.IsEmpty() {
			back, err := SubMatrix(seed, n.rowSel, n.colSel)
			if err != nil {
				return err
			}
			if err = accumulate(adjSens[d][0], back); err != nil {
				return err
			}
		}
		*adjSeed[d][0] = Expr{}
	}

	return nil
}

func (n *scatterNode) PropagateSparsity(in, out []*dmat.BMat, fwd bool) error {
	if err := checkBuffers(n, in, out); err != nil {
		return err
	}
	if dmat.SharesStorage(in[0], out[0]) {
		return nil
	}
	src, dst := in[0].Data(), out[0].Data()
	if fwd {
		out[0].Zero() // positions outside the block carry no taint
		for k, p := range n.sel {
			dst[p] = src[k]
		}

		return nil
	}
	for k, p := range n.sel {
		src[k] |= dst[p] // only the mapped words flow back to the block
	}
	out[0].Zero() // the whole output slot is consumed

	return nil
}

func (n *scatterNode) PrintPart(part int) string {
	if part == 0 {
		return "scatter("
	}

	return fmt.Sprintf(", [%s, %s])", n.rowSel, n.colSel)
}

func (n *scatterNode) Generate(g *codegen.Generator, arg, res []string) error {
	if len(arg) != 1 || len(res) != 1 {
		return ErrArity
	}
	if arg[0] == res[0] {
		return nil
	}
	lv := g.LoopVar()
	g.Line("for (%s=0; %s<%d; ++%s) %s[%s] = 0;", lv, lv, n.sp.NNZ(), lv, res[0], lv)
	if len(n.sel) == 0 {
		return nil // an empty block only zero-fills
	}
	tab := g.IntConstant(n.sel)
	g.Line("for (%s=0; %s<%d; ++%s) %s[%s[%s]] = %s[%s];", lv, lv, len(n.sel), lv, res[0], tab, lv, arg[0], lv)

	return nil
}
