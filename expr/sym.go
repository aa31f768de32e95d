// SPDX-License-Identifier: MIT

// Package expr: the Sym leaf — a named matrix variable, the graph's input
// kind. Leaves are bound by the scheduler; at the node level every
// evaluation operation is a structural no-op.
package expr

import (
	"github.com/katalvlaran/lvlgrad/codegen"
	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/sparsity"
)

// panicSym is the stable message MustSym panics with on a bad symbol.
const panicSym = "expr: MustSym: invalid symbol"

type symNode struct {
	baseNode
	name string
}

// Sym constructs a named symbolic matrix variable over sp.
// Errors: ErrEmptyName, ErrNilPattern.
// Complexity: O(1).
func Sym(name string, sp *sparsity.Pattern) (Expr, error) {
	if name == "" {
		return Expr{}, ErrEmptyName
	}
	if sp == nil {
		return Expr{}, ErrNilPattern
	}

	return wrap(&symNode{baseNode: baseNode{op: OpSym, sp: sp}, name: name}), nil
}

// MustSym is Sym for statically known-good arguments; it panics with a
// stable message on the programmer errors Sym reports.
func MustSym(name string, sp *sparsity.Pattern) Expr {
	x, err := Sym(name, sp)
	if err != nil {
		panic(panicSym + ": " + err.Error())
	}

	return x
}

// Name returns the symbol's name (used by schedulers for input binding).
func (n *symNode) Name() string { return n.name }

// EvalNum validates buffers and leaves the output untouched: the
// scheduler binds leaf values itself before the sweep.
func (n *symNode) EvalNum(in, out []*dmat.Num, _ *Workspace) error {
	return checkBuffers(n, in, out)
}

// EvalSym mirrors EvalNum over symbolic scalars.
func (n *symNode) EvalSym(in, out []*dmat.SMat, _ *Workspace) error {
	return checkBuffers(n, in, out)
}

// Derive only materializes the leaf's own expression; a leaf has no
// dependencies to propagate into, and its adjoint slot is the sweep's
// result, so seeds are deliberately left alone.
func (n *symNode) Derive(in, out []*Expr, fwdSeed, fwdSens, adjSeed, adjSens [][]*Expr, outputGiven bool) error {
	if len(in) != 0 || len(out) != 1 || out[0] == nil {
		return ErrArity
	}
	if err := checkSeeds(n, fwdSeed, fwdSens, adjSeed, adjSens); err != nil {
		return err
	}
	if !outputGiven {
		*out[0] = wrap(n)
	}

	return nil
}

// PropagateSparsity validates buffers and moves nothing: the leaf's seed
// words are owned by the scheduler in both directions.
func (n *symNode) PropagateSparsity(in, out []*dmat.BMat, _ bool) error {
	return checkBuffers(n, in, out)
}

// PrintPart renders the symbol's name (a leaf has a single part).
func (n *symNode) PrintPart(part int) string {
	if part == 0 {
		return n.name
	}

	return ""
}

// Generate emits nothing: the scheduler's argument name for a leaf is the
// bound input buffer itself.
func (n *symNode) Generate(_ *codegen.Generator, _, _ []string) error {
	return nil
}
