// SPDX-License-Identifier: MIT

// Package sched: symbolic derivative sweeps. Both build new expression
// graphs over the same shared nodes — forward by pushing tangents down
// the schedule, reverse by pulling adjoints back up it.
package sched

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/expr"
)

// Forward builds forward-mode (tangent) derivative expressions. Each
// direction maps input names to seed expressions; a missing or empty
// seed is the structural zero. The result holds, per direction, one
// sensitivity expression per output (empty where nothing flows).
//
// Errors: ErrUnboundInput on a seed name that is not a schedule input;
// node sentinels pass through.
// Complexity: O(directions · nodes).
func (s *Schedule) Forward(seeds []map[string]expr.Expr) ([][]expr.Expr, error) {
	leaf := s.leafByName()
	res := make([][]expr.Expr, len(seeds))
	for d, dir := range seeds {
		for name := range dir {
			if _, ok := leaf[name]; !ok {
				return nil, fmt.Errorf("seed %q: %w", name, ErrUnboundInput)
			}
		}
		sens := make(map[expr.Node]expr.Expr, len(s.order))
		for name, seed := range dir {
			sens[leaf[name]] = seed
		}
		for _, n := range s.order {
			if n.Op() == expr.OpSym {
				continue // the leaf's tangent is its seed
			}
			nd := n.NumDeps()
			in := make([]*expr.Expr, nd)
			seedSlots := make([]*expr.Expr, nd)
			for i := 0; i < nd; i++ {
				dep := n.Dep(i)
				in[i] = &dep
				dseed := sens[dep.Node()]
				seedSlots[i] = &dseed
			}
			out := s.handle[n]
			var sv expr.Expr
			err := n.Derive(in, []*expr.Expr{&out},
				[][]*expr.Expr{seedSlots}, [][]*expr.Expr{{&sv}},
				nil, nil, true)
			if err != nil {
				return nil, err
			}
			sens[n] = sv
		}
		res[d] = make([]expr.Expr, len(s.outputs))
		for k, o := range s.outputs {
			res[d][k] = sens[o.Node()]
		}
	}

	return res, nil
}

// Reverse builds reverse-mode (adjoint) derivative expressions. Each
// direction carries one seed expression per output (aligned with
// Outputs; empty seeds are structural zeros). The result maps, per
// direction, every input name to its accumulated adjoint (empty where
// nothing flows back).
//
// The sweep walks the schedule backwards. Each node consumes its own
// adjoint slot and accumulates into its dependencies' slots; a value
// shared by several consumers therefore collects one summed adjoint
// before it is consumed itself, regardless of consumer order.
//
// Errors: ErrSeedCount on a malformed seed vector; node sentinels pass
// through.
// Complexity: O(directions · nodes).
func (s *Schedule) Reverse(seeds [][]expr.Expr) ([]map[string]expr.Expr, error) {
	res := make([]map[string]expr.Expr, len(seeds))
	for d, dir := range seeds {
		if len(dir) != len(s.outputs) {
			return nil, fmt.Errorf("direction %d: %d seeds for %d outputs: %w",
				d, len(dir), len(s.outputs), ErrSeedCount)
		}
		adj := make(map[expr.Node]expr.Expr, len(s.order))
		for k, seed := range dir {
			if err := addTo(adj, s.outputs[k].Node(), seed); err != nil {
				return nil, err
			}
		}
		for i := len(s.order) - 1; i >= 0; i-- {
			n := s.order[i]
			if n.Op() == expr.OpSym {
				continue // the leaf's slot is the sweep's result
			}
			seed := adj[n]
			if seed.IsEmpty() {
				continue // nothing reached this node
			}
			nd := n.NumDeps()
			in := make([]*expr.Expr, nd)
			sensSlots := make([]*expr.Expr, nd)
			// One shared slot per distinct dependency: a node listing the
			// same dependency twice (Add(x, x)) must see both of its
			// accumulations land in the one slot, not in two snapshots
			// where the last write-back wins.
			slotFor := make(map[expr.Node]*expr.Expr, nd)
			for j := 0; j < nd; j++ {
				dep := n.Dep(j)
				in[j] = &dep
				slot, ok := slotFor[dep.Node()]
				if !ok {
					cur := adj[dep.Node()]
					slot = &cur
					slotFor[dep.Node()] = slot
				}
				sensSlots[j] = slot
			}
			out := s.handle[n]
			err := n.Derive(in, []*expr.Expr{&out},
				nil, nil,
				[][]*expr.Expr{{&seed}}, [][]*expr.Expr{sensSlots},
				true)
			if err != nil {
				return nil, err
			}
			adj[n] = seed // consumed: reads empty from here on
			for dep, slot := range slotFor {
				adj[dep] = *slot
			}
		}
		res[d] = make(map[string]expr.Expr, len(s.inputs))
		for k, in := range s.inputs {
			res[d][s.names[k]] = adj[in.Node()]
		}
	}

	return res, nil
}

// leafByName indexes the schedule's inputs by symbol name.
func (s *Schedule) leafByName() map[string]expr.Node {
	m := make(map[string]expr.Node, len(s.inputs))
	for k, in := range s.inputs {
		m[s.names[k]] = in.Node()
	}

	return m
}

// addTo accumulates a contribution into a node's adjoint slot: assign
// when empty, sum otherwise. Empty contributions change nothing.
func addTo(adj map[expr.Node]expr.Expr, n expr.Node, contrib expr.Expr) error {
	if contrib.IsEmpty() {
		return nil
	}
	cur := adj[n]
	if cur.IsEmpty() {
		adj[n] = contrib

		return nil
	}
	sum, err := expr.Add(cur, contrib)
	if err != nil {
		return err
	}
	adj[n] = sum

	return nil
}
