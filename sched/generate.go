// SPDX-License-Identifier: MIT

// Package sched: whole-graph code emission.
package sched

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/codegen"
	"github.com/katalvlaran/lvlgrad/expr"
)

// Generate emits the schedule as one flat kernel into g: every non-leaf
// node gets a work variable w0, w1, ... in schedule order and emits its
// fragment over its dependencies' variables. Leaves contribute their
// symbol name as the variable directly, so nodes that merely relabel a
// leaf's storage can suppress their copy.
//
// Returns the variable name of each output, aligned with Outputs.
// Complexity: O(nodes + emitted text).
func (s *Schedule) Generate(g *codegen.Generator) ([]string, error) {
	if g == nil {
		return nil, ErrNilGenerator
	}
	vars := make(map[expr.Node]string, len(s.order))
	next := 0
	for _, n := range s.order {
		if n.Op() == expr.OpSym {
			vars[n] = n.(namedLeaf).Name()
			continue
		}
		args := make([]string, n.NumDeps())
		for i := range args {
			args[i] = vars[n.Dep(i).Node()]
		}
		res := fmt.Sprintf("w%d", next)
		next++
		if err := n.Generate(g, args, []string{res}); err != nil {
			return nil, err
		}
		vars[n] = res
	}
	outs := make([]string, len(s.outputs))
	for k, o := range s.outputs {
		outs[k] = vars[o.Node()]
	}

	return outs, nil
}
