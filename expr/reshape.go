// SPDX-License-Identifier: MIT

// Package expr: the Reshape node — the paradigmatic "free" operation. The
// nonzero sequence is reinterpreted under a different pattern with the
// same count; every transform it induces (numeric, symbolic, sparsity,
// both sensitivity directions) is a positional copy or another reshape.
package expr

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/codegen"
	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/sparsity"
)

type reshapeNode struct {
	baseNode
}

// Reshape reinterprets x under the target pattern sp.
// Implementation:
//   - Stage 1: validate operands; equal nonzero counts are the contract
//     (reshape only relabels storage, it never grows or shrinks it).
//   - Stage 2: short-circuit the identity reshape to x itself.
//   - Stage 3: build the node.
//
// Errors:
//   - ErrEmptyExpr, ErrNilPattern on missing operands.
//   - ErrNNZMismatch when nnz(sp) != nnz(x) — a construction-time
//     contract violation; the graph is never built.
//
// Complexity:
//   - Time O(nnz) for the identity check, Space O(1).
func Reshape(x Expr, sp *sparsity.Pattern) (Expr, error) {
	if x.IsEmpty() {
		return Expr{}, ErrEmptyExpr
	}
	if sp == nil {
		return Expr{}, ErrNilPattern
	}
	if sp.NNZ() != x.NNZ() {
		return Expr{}, fmt.Errorf("reshape %d×%d (nnz %d) into %d×%d (nnz %d): %w",
			x.Rows(), x.Cols(), x.NNZ(), sp.Rows(), sp.Cols(), sp.NNZ(), ErrNNZMismatch)
	}
	if sp.Equal(x.Sparsity()) {
		return x, nil // relabeling to the same layout is the identity
	}

	return wrap(&reshapeNode{baseNode{op: OpReshape, sp: sp, deps: []Expr{x}}}), nil
}

func (n *reshapeNode) EvalNum(in, out []*dmat.Num, _ *Workspace) error {
	return reshapeEval(n, in, out)
}

func (n *reshapeNode) EvalSym(in, out []*dmat.SMat, _ *Workspace) error {
	return reshapeEval(n, in, out)
}

// reshapeEval is the shared evaluation template: a quick return when the
// buffers alias (the scheduler planted no copy on purpose), a positional
// copy otherwise.
func reshapeEval[T any](n *reshapeNode, in, out []*dmat.Mat[T]) error {
	if err := checkBuffers(n, in, out); err != nil {
		return err
	}
	if dmat.SharesStorage(in[0], out[0]) {
		return nil // in-place: the values are already where they belong
	}
	evalCopy(in[0], out[0])

	return nil
}

func (n *reshapeNode) Derive(in, out []*Expr, fwdSeed, fwdSens, adjSeed, adjSens [][]*Expr, outputGiven bool) error {
	if len(in) != 1 || len(out) != 1 || in[0] == nil || out[0] == nil {
		return ErrArity
	}
	if err := checkSeeds(n, fwdSeed, fwdSens, adjSeed, adjSens); err != nil {
		return err
	}
	if in[0] == out[0] {
		return nil // in-place slot: nothing to build, nothing to move
	}
	if !outputGiven {
		y, err := Reshape(*in[0], n.sp)
		if err != nil {
			return err
		}
		*out[0] = y
	}

	// Forward: the tangent of a reshape is the reshape of the tangent.
	for d := range fwdSeed {
		seed := *fwdSeed[d][0]
		if seed.IsEmpty() {
			continue // structural zero stays zero
		}
		sens, err := Reshape(seed, n.sp)
		if err != nil {
			return err
		}
		*fwdSens[d][0] = sens
	}

	// Adjoint: reshape the seed back to the dependency's layout,
	// accumulate, then clear the consumed slot — the scheduler reuses
	// seed slots across consumers and relies on this exact protocol.
	for d := range adjSeed {
		seed := *adjSeed[d][0]
		if !seed.IsEmpty() {
			back, err := Reshape(seed, n.deps[0].Sparsity())
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

func (n *reshapeNode) PropagateSparsity(in, out []*dmat.BMat, fwd bool) error {
	if err := checkBuffers(n, in, out); err != nil {
		return err
	}
	if dmat.SharesStorage(in[0], out[0]) {
		return nil
	}
	src, dst := in[0].Data(), out[0].Data()
	if fwd {
		copy(dst, src)

		return nil
	}
	for k := range src {
		src[k] |= dst[k] // taint accumulates, it never overwrites
		dst[k] = 0       // the output slot is consumed
	}

	return nil
}

func (n *reshapeNode) PrintPart(part int) string {
	if part == 0 {
		return "reshape("
	}

	return ")"
}

func (n *reshapeNode) Generate(g *codegen.Generator, arg, res []string) error {
	if len(arg) != 1 || len(res) != 1 {
		return ErrArity
	}
	if arg[0] == res[0] {
		return nil // same storage, nothing to emit
	}
	lv := g.LoopVar()
	g.Line("for (%s=0; %s<%d; ++%s) %s[%s] = %s[%s];", lv, lv, n.sp.NNZ(), lv, res[0], lv, arg[0], lv)

	return nil
}
