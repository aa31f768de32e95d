// SPDX-License-Identifier: MIT

// Package sched: the dependency-word sweeps. Each nonzero carries one
// word of direction bits; forward pushes input taint to the outputs,
// reverse pulls output taint back to the inputs.
package sched

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/expr"
)

// ForwardSparsity runs the forward word sweep: up to 64 simultaneous
// input directions, one bit each. Inputs bind by symbol name, exactly
// like Eval; the result is one word buffer per output.
//
// Errors: ErrUnboundInput, ErrInputShape; node sentinels pass through.
// Complexity: O(total nnz over the schedule).
func (s *Schedule) ForwardSparsity(args map[string]*dmat.BMat) ([]*dmat.BMat, error) {
	return run(s, args, func(n expr.Node, in, out []*dmat.BMat, _ *expr.Workspace) error {
		return n.PropagateSparsity(in, out, true)
	})
}

// ReverseSparsity runs the reverse word sweep: seeds are one word buffer
// per output (aligned with Outputs), the result maps every input name to
// its accumulated dependency words.
//
// The walk is the schedule's order reversed; because each node ORs into
// its dependencies' words and then consumes its own, the result does not
// depend on the order consumers of a shared value are processed in.
//
// Errors: ErrSeedCount on a malformed seed vector; node sentinels pass
// through.
// Complexity: O(total nnz over the schedule).
func (s *Schedule) ReverseSparsity(seeds []*dmat.BMat) (map[string]*dmat.BMat, error) {
	if len(seeds) != len(s.outputs) {
		return nil, fmt.Errorf("%d seeds for %d outputs: %w", len(seeds), len(s.outputs), ErrSeedCount)
	}
	// One zeroed word buffer per node, then the output seeds OR in (an
	// output reached by two seed vectors accumulates both).
	buf := make(map[expr.Node]*dmat.BMat, len(s.order))
	for _, n := range s.order {
		b, err := dmat.New[uint64](n.Sparsity())
		if err != nil {
			return nil, err
		}
		buf[n] = b
	}
	for k, seed := range seeds {
		dst := buf[s.outputs[k].Node()]
		if seed == nil || seed.NNZ() != dst.NNZ() {
			return nil, fmt.Errorf("output %d: %w", k, ErrSeedCount)
		}
		dw := dst.Data()
		for i, word := range seed.Data() {
			dw[i] |= word
		}
	}
	for i := len(s.order) - 1; i >= 0; i-- {
		n := s.order[i]
		in := make([]*dmat.BMat, n.NumDeps())
		for j := range in {
			in[j] = buf[n.Dep(j).Node()]
		}
		if err := n.PropagateSparsity(in, []*dmat.BMat{buf[n]}, false); err != nil {
			return nil, err
		}
	}
	res := make(map[string]*dmat.BMat, len(s.inputs))
	for k, in := range s.inputs {
		res[s.names[k]] = buf[in.Node()]
	}

	return res, nil
}
