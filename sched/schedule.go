// SPDX-License-Identifier: MIT

// Package sched: compilation — depth-first postorder over the shared DAG.
package sched

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/expr"
)

// namedLeaf is the capability symbolic leaves expose for input binding.
type namedLeaf interface{ Name() string }

// Schedule is a compiled, immutable execution order over the distinct
// nodes of one expression graph. All sweeps reuse the same ordering.
type Schedule struct {
	order   []expr.Node              // postorder: dependencies precede consumers
	handle  map[expr.Node]expr.Expr  // node identity -> its expression handle
	inputs  []expr.Expr              // symbolic leaves in first-use order
	names   []string                 // inputs' names, same order
	outputs []expr.Expr              // the compiled roots, as given
	ni, nr  int                      // workspace high-water marks
}

// Compile builds a schedule over everything reachable from the outputs.
// Implementation:
//   - Stage 1: validate the roots.
//   - Stage 2: depth-first postorder walk; a node reached through many
//     paths is scheduled exactly once (identity, not structure).
//   - Stage 3: collect symbolic leaves as the input set and reject name
//     collisions between distinct leaves.
//
// Errors: ErrNoOutputs, ErrEmptyOutput, ErrDuplicateSymbol.
// Complexity: O(nodes + edges), Space O(nodes).
//
// Notes:
//   - Graphs are acyclic by construction (expressions only reference
//     previously built expressions), so the walk needs no cycle check.
func Compile(outputs ...expr.Expr) (*Schedule, error) {
	if len(outputs) == 0 {
		return nil, ErrNoOutputs
	}
	s := &Schedule{
		handle:  make(map[expr.Node]expr.Expr),
		outputs: append([]expr.Expr(nil), outputs...),
	}
	byName := make(map[string]expr.Node)
	var visit func(x expr.Expr) error
	visit = func(x expr.Expr) error {
		n := x.Node()
		if _, seen := s.handle[n]; seen {
			return nil
		}
		s.handle[n] = x
		for i := 0; i < n.NumDeps(); i++ {
			if err := visit(n.Dep(i)); err != nil {
				return err
			}
		}
		if n.Op() == expr.OpSym {
			name := n.(namedLeaf).Name()
			if prev, ok := byName[name]; ok && prev != n {
				return fmt.Errorf("symbol %q: %w", name, ErrDuplicateSymbol)
			}
			byName[name] = n
			s.inputs = append(s.inputs, x)
			s.names = append(s.names, name)
		}
		ni, nr := n.WorkSize()
		if ni > s.ni {
			s.ni = ni
		}
		if nr > s.nr {
			s.nr = nr
		}
		s.order = append(s.order, n)

		return nil
	}
	for i, out := range outputs {
		if out.IsEmpty() {
			return nil, fmt.Errorf("output %d: %w", i, ErrEmptyOutput)
		}
		if err := visit(out); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Len returns the number of scheduled nodes. Complexity: O(1).
func (s *Schedule) Len() int { return len(s.order) }

// Inputs returns the symbolic leaves in first-use order.
func (s *Schedule) Inputs() []expr.Expr { return s.inputs }

// InputNames returns the leaf names, aligned with Inputs.
func (s *Schedule) InputNames() []string { return s.names }

// Outputs returns the compiled root expressions, as given to Compile.
func (s *Schedule) Outputs() []expr.Expr { return s.outputs }

// workspace allocates one scratch area sized to the schedule's
// high-water marks.
func (s *Schedule) workspace() *expr.Workspace {
	return &expr.Workspace{
		Int:  make([]int, s.ni),
		Real: make([]float64, s.nr),
	}
}
