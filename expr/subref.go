// SPDX-License-Identifier: MIT

// Package expr: the SubMatrix node — a reference to a rectangular
// sub-block of its dependency, the paradigmatic gather operation. The
// restriction pattern and the gather map are computed once at
// construction and are immutable afterwards.
package expr

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/codegen"
	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/sparsity"
)

type subRefNode struct {
	baseNode
	rowSel, colSel sparsity.Slice
	sel            []int // dependency nonzero position per own nonzero
}

// SubMatrix references the block of x addressed by the two selectors.
// Implementation:
//   - Stage 1: validate the operand.
//   - Stage 2: restrict x's pattern to the block (resolving both
//     selectors; out-of-range selections fail here, at construction).
//   - Stage 3: short-circuit the identity selection to x itself.
//
// Errors:
//   - ErrEmptyExpr on a missing operand.
//   - sparsity.ErrZeroStep / sparsity.ErrSliceOutOfRange (wrapped) from
//     selector resolution.
//
// Complexity:
//   - Time O(|rows|·|cols|·log nnz), Space O(block nnz).
//
// Notes:
//   - Empty selections are valid and produce a zero-sized block.
func SubMatrix(x Expr, rowSel, colSel sparsity.Slice) (Expr, error) {
	if x.IsEmpty() {
		return Expr{}, ErrEmptyExpr
	}
	sub, sel, err := x.Sparsity().Sub(rowSel, colSel)
	if err != nil {
		return Expr{}, fmt.Errorf("submatrix of %d×%d: %w", x.Rows(), x.Cols(), err)
	}
	if sub.Equal(x.Sparsity()) && isIdentity(sel) {
		return x, nil // selecting everything in order is the identity
	}

	return wrap(&subRefNode{
		baseNode: baseNode{op: OpSubRef, sp: sub, deps: []Expr{x}},
		rowSel:   rowSel,
		colSel:   colSel,
		sel:      sel,
	}), nil
}

// isIdentity reports whether sel maps every position onto itself.
func isIdentity(sel []int) bool {
	for k, p := range sel {
		if k != p {
			return false
		}
	}

	return true
}

func (n *subRefNode) EvalNum(in, out []*dmat.Num, _ *Workspace) error {
	return subRefEval(n, in, out)
}

func (n *subRefNode) EvalSym(in, out []*dmat.SMat, _ *Workspace) error {
	return subRefEval(n, in, out)
}

// subRefEval is the shared gather template.
func subRefEval[T any](n *subRefNode, in, out []*dmat.Mat[T]) error {
	if err := checkBuffers(n, in, out); err != nil {
		return err
	}
	if dmat.SharesStorage(in[0], out[0]) {
		return nil
	}
	evalGather(in[0], out[0], n.sel)

	return nil
}

func (n *subRefNode) Derive(in, out []*Expr, fwdSeed, fwdSens, adjSeed, adjSens [][]*Expr, outputGiven bool) error {
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
		y, err := SubMatrix(*in[0], n.rowSel, n.colSel)
		if err != nil {
			return err
		}
		*out[0] = y
	}

	// Forward: gather the seed through the same two selectors.
	for d := range fwdSeed {
		seed := *fwdSeed[d][0]
		if seed.IsEmpty() {
			continue
		}
		sens, err := SubMatrix(seed, n.rowSel, n.colSel)
		if err != nil {
			return err
		}
		*fwdSens[d][0] = sens
	}

	// Adjoint: scatter the block-shaped seed into a dependency-shaped
	// zero-filled value, accumulate it, clear the consumed slot.
	for d := range adjSeed {
		seed := *adjSeed[d][0]
		if !seed.IsEmpty() {
			sc, err := Scatter(seed, n.deps[0].Sparsity(), n.rowSel, n.colSel)
			if err != nil {
				return err
			}
			if err = accumulate(adjSens[d][0], sc); err != nil {
				return err
			}
		}
		*adjSeed[d][0] = Expr{}
	}

	return nil
}

func (n *subRefNode) PropagateSparsity(in, out []*dmat.BMat, fwd bool) error {
	if err := checkBuffers(n, in, out); err != nil {
		return err
	}
	if dmat.SharesStorage(in[0], out[0]) {
		return nil
	}
	src, dst := in[0].Data(), out[0].Data()
	if fwd {
		for k, p := range n.sel {
			dst[k] = src[p] // gather the tag words inside the block
		}

		return nil
	}
	for k, p := range n.sel {
		src[p] |= dst[k] // scatter-OR back into the mapped positions
		dst[k] = 0       // consume the output word
	}

	return nil
}

func (n *subRefNode) PrintPart(part int) string {
	if part == 0 {
		return ""
	}

	return fmt.Sprintf("[%s, %s]", n.rowSel, n.colSel)
}

func (n *subRefNode) Generate(g *codegen.Generator, arg, res []string) error {
	if len(arg) != 1 || len(res) != 1 {
		return ErrArity
	}
	if arg[0] == res[0] || len(n.sel) == 0 {
		return nil // aliased storage or an empty block: nothing to move
	}
	lv := g.LoopVar()
	tab := g.IntConstant(n.sel)
	g.Line("for (%s=0; %s<%d; ++%s) %s[%s] = %s[%s[%s]];", lv, lv, len(n.sel), lv, res[0], lv, arg[0], tab, lv)

	return nil
}
