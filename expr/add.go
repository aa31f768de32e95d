// SPDX-License-Identifier: MIT

// Package expr: the Add node — elementwise sum of two equal-pattern
// operands. Within this layer its main role is structural: it is the
// accumulation vehicle the adjoint protocol uses when several downstream
// consumers contribute to one dependency's sensitivity slot.
package expr

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/codegen"
	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/sym"
)

type addNode struct {
	baseNode
}

// Add builds the elementwise sum x + y.
// Errors:
//   - ErrEmptyExpr on a missing operand (structural zeros are folded by
//     the accumulation helper before a sum node is ever built).
//   - ErrPatternMismatch unless both operands carry identical patterns —
//     accumulation slots always do, and this layer needs no more.
//
// Complexity: O(nnz) for the pattern comparison.
func Add(x, y Expr) (Expr, error) {
	if x.IsEmpty() || y.IsEmpty() {
		return Expr{}, ErrEmptyExpr
	}
	if !x.Sparsity().Equal(y.Sparsity()) {
		return Expr{}, fmt.Errorf("add %d×%d (nnz %d) and %d×%d (nnz %d): %w",
			x.Rows(), x.Cols(), x.NNZ(), y.Rows(), y.Cols(), y.NNZ(), ErrPatternMismatch)
	}

	return wrap(&addNode{baseNode{op: OpAdd, sp: x.Sparsity(), deps: []Expr{x, y}}}), nil
}

// EvalNum sums elementwise. Aliasing the output with either operand is
// the scheduler's accumulate-in-place form and turns into a compound
// assignment — a full no-op would silently drop the other operand.
func (n *addNode) EvalNum(in, out []*dmat.Num, _ *Workspace) error {
	if err := checkBuffers(n, in, out); err != nil {
		return err
	}
	evalAdd(in[0], in[1], out[0], func(a, b float64) float64 { return a + b })

	return nil
}

func (n *addNode) EvalSym(in, out []*dmat.SMat, _ *Workspace) error {
	if err := checkBuffers(n, in, out); err != nil {
		return err
	}
	evalAdd(in[0], in[1], out[0], sym.Add)

	return nil
}

func (n *addNode) Derive(in, out []*Expr, fwdSeed, fwdSens, adjSeed, adjSens [][]*Expr, outputGiven bool) error {
	if len(in) != 2 || len(out) != 1 || in[0] == nil || in[1] == nil || out[0] == nil {
		return ErrArity
	}
	if err := checkSeeds(n, fwdSeed, fwdSens, adjSeed, adjSens); err != nil {
		return err
	}
	if !outputGiven {
		y, err := Add(*in[0], *in[1])
		if err != nil {
			return err
		}
		*out[0] = y
	}

	// Forward: addition is linear, the tangent is the sum of tangents
	// (with structural zeros folded away).
	for d := range fwdSeed {
		var sens Expr
		if err := accumulate(&sens, *fwdSeed[d][0]); err != nil {
			return err
		}
		if err := accumulate(&sens, *fwdSeed[d][1]); err != nil {
			return err
		}
		if !sens.IsEmpty() {
			*fwdSens[d][0] = sens
		}
	}

	// Adjoint: the seed flows unchanged into BOTH operands' slots.
	for d := range adjSeed {
		seed := *adjSeed[d][0]
		if !seed.IsEmpty() {
			if err := accumulate(adjSens[d][0], seed); err != nil {
				return err
			}
			if err := accumulate(adjSens[d][1], seed); err != nil {
				return err
			}
		}
		*adjSeed[d][0] = Expr{}
	}

	return nil
}

func (n *addNode) PropagateSparsity(in, out []*dmat.BMat, fwd bool) error {
	if err := checkBuffers(n, in, out); err != nil {
		return err
	}
	a, b, r := in[0].Data(), in[1].Data(), out[0].Data()
	if fwd {
		// Union of both operands' taint; compound form keeps aliased
		// storage correct.
		switch {
		case dmat.SharesStorage(out[0], in[0]):
			for k := range r {
				r[k] |= b[k]
			}
		case dmat.SharesStorage(out[0], in[1]):
			for k := range r {
				r[k] |= a[k]
			}
		default:
			for k := range r {
				r[k] = a[k] | b[k]
			}
		}

		return nil
	}
	// Backward: when the output slot aliases an operand, that operand's
	// words already hold the taint; consuming the slot would erase them,
	// so only the other operand accumulates and nothing is cleared.
	switch {
	case dmat.SharesStorage(out[0], in[0]):
		for k := range r {
			b[k] |= r[k]
		}
	case dmat.SharesStorage(out[0], in[1]):
		for k := range r {
			a[k] |= r[k]
		}
	default:
		for k := range r {
			a[k] |= r[k]
			b[k] |= r[k]
			r[k] = 0
		}
	}

	return nil
}

func (n *addNode) PrintPart(part int) string {
	switch part {
	case 0:
		return "("
	case 1:
		return "+"
	default:
		return ")"
	}
}

func (n *addNode) Generate(g *codegen.Generator, arg, res []string) error {
	if len(arg) != 2 || len(res) != 1 {
		return ErrArity
	}
	lv := g.LoopVar()
	nnz := n.sp.NNZ()
	switch res[0] {
	case arg[0]:
		g.Line("for (%s=0; %s<%d; ++%s) %s[%s] += %s[%s];", lv, lv, nnz, lv, res[0], lv, arg[1], lv)
	case arg[1]:
		g.Line("for (%s=0; %s<%d; ++%s) %s[%s] += %s[%s];", lv, lv, nnz, lv, res[0], lv, arg[0], lv)
	default:
		g.Line("for (%s=0; %s<%d; ++%s) %s[%s] = %s[%s] + %s[%s];", lv, lv, nnz, lv, res[0], lv, arg[0], lv, arg[1], lv)
	}

	return nil
}
