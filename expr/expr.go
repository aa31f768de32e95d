// SPDX-License-Identifier: MIT

// Package expr: the Expr value handle. An Expr shares an immutable Node;
// copying an Expr copies a reference, not a subtree, which is how common
// sub-expressions are shared across the DAG.
package expr

import (
	"strings"

	"github.com/katalvlaran/lvlgrad/sparsity"
)

// Expr is a matrix-valued expression: a shared handle on one graph node.
// The zero Expr is the empty expression — the structural zero used by the
// sensitivity protocol for absent seeds and fresh accumulation slots.
type Expr struct {
	n Node
}

// wrap turns a freshly constructed node into its handle.
func wrap(n Node) Expr { return Expr{n: n} }

// IsEmpty reports whether x is the empty expression. Complexity: O(1).
func (x Expr) IsEmpty() bool { return x.n == nil }

// Node exposes the underlying shared node; nil for the empty expression.
// Schedulers key per-node state on this identity. Complexity: O(1).
func (x Expr) Node() Node { return x.n }

// Op returns the node kind; the empty expression reports -1.
// Complexity: O(1).
func (x Expr) Op() Op {
	if x.n == nil {
		return -1
	}

	return x.n.Op()
}

// Sparsity returns the expression's output pattern; nil for the empty
// expression. Complexity: O(1).
func (x Expr) Sparsity() *sparsity.Pattern {
	if x.n == nil {
		return nil
	}

	return x.n.Sparsity()
}

// NNZ returns the structural nonzero count (0 for the empty expression).
// Complexity: O(1).
func (x Expr) NNZ() int {
	if x.n == nil {
		return 0
	}

	return x.n.Sparsity().NNZ()
}

// Rows returns the row extent (0 for the empty expression).
func (x Expr) Rows() int {
	if x.n == nil {
		return 0
	}

	return x.n.Sparsity().Rows()
}

// Cols returns the column extent (0 for the empty expression).
func (x Expr) Cols() int {
	if x.n == nil {
		return 0
	}

	return x.n.Sparsity().Cols()
}

// String renders the expression tree by interleaving each node's print
// parts with its dependencies' renderings: part 0, dep 0, part 1, dep 1,
// ..., part NumDeps. The empty expression renders as "0".
// Complexity: O(tree size); shared subtrees are rendered once per use.
func (x Expr) String() string {
	if x.n == nil {
		return "0"
	}
	var sb strings.Builder
	x.print(&sb)

	return sb.String()
}

func (x Expr) print(sb *strings.Builder) {
	sb.WriteString(x.n.PrintPart(0))
	for i := 0; i < x.n.NumDeps(); i++ {
		dep := x.n.Dep(i)
		if dep.n == nil {
			sb.WriteString("0")
		} else {
			dep.print(sb)
		}
		sb.WriteString(x.n.PrintPart(i + 1))
	}
}
