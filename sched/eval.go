// SPDX-License-Identifier: MIT

// Package sched: the value sweeps. One generic driver serves the numeric
// and the symbolic-scalar element type; the per-node work is whatever the
// node's evaluation contract does.
package sched

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/expr"
)

// Eval runs the numeric sweep. Inputs bind by symbol name; every input
// must be bound with a buffer whose pattern equals the leaf's declared
// pattern, not merely one holding the right nonzero count.
//
// Returns one buffer per output, aligned with Outputs. An output that is
// itself an input returns the bound buffer; all other buffers are fresh.
//
// Errors: ErrUnboundInput, ErrInputShape; the node sentinels
// (expr.ErrBufferShape and friends) pass through.
// Complexity: O(total nnz over the schedule).
func (s *Schedule) Eval(args map[string]*dmat.Num) ([]*dmat.Num, error) {
	return run(s, args, expr.Node.EvalNum)
}

// EvalSym runs the symbolic-scalar sweep: the identical driver over
// sym.Value elements.
func (s *Schedule) EvalSym(args map[string]*dmat.SMat) ([]*dmat.SMat, error) {
	return run(s, args, expr.Node.EvalSym)
}

// run is the shared sweep driver: walk the postorder, hand every node its
// dependencies' buffers and a fresh output buffer, collect the roots.
// Leaves are invoked too — their evaluation validates the bound buffer's
// shape and touches nothing.
func run[T any](
	s *Schedule,
	args map[string]*dmat.Mat[T],
	call func(expr.Node, []*dmat.Mat[T], []*dmat.Mat[T], *expr.Workspace) error,
) ([]*dmat.Mat[T], error) {
	for k, name := range s.names {
		b := args[name]
		if b == nil {
			return nil, fmt.Errorf("%q: %w", name, ErrUnboundInput)
		}
		if !b.Sparsity().Equal(s.inputs[k].Sparsity()) {
			return nil, fmt.Errorf("%q: %w", name, ErrInputShape)
		}
	}
	w := s.workspace()
	buf := make(map[expr.Node]*dmat.Mat[T], len(s.order))
	for _, n := range s.order {
		var (
			out *dmat.Mat[T]
			in  []*dmat.Mat[T]
			err error
		)
		if n.Op() == expr.OpSym {
			out = args[n.(namedLeaf).Name()]
		} else {
			in = make([]*dmat.Mat[T], n.NumDeps())
			for i := range in {
				in[i] = buf[n.Dep(i).Node()]
			}
			if out, err = dmat.New[T](n.Sparsity()); err != nil {
				return nil, err
			}
		}
		if err = call(n, in, []*dmat.Mat[T]{out}, w); err != nil {
			return nil, err
		}
		buf[n] = out
	}
	res := make([]*dmat.Mat[T], len(s.outputs))
	for k, o := range s.outputs {
		res[k] = buf[o.Node()]
	}

	return res, nil
}
