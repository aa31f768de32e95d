// SPDX-License-Identifier: MIT
// Package expr: sentinel error set (unified, consistent).
// Construction sentinels guard graph assembly; invocation sentinels guard
// the evaluation protocol. Tests MUST match them via errors.Is.

package expr

import "errors"

var (
	// ErrEmptyExpr indicates the empty expression was used where a real
	// operand is required (constructors; primal evaluation slots).
	ErrEmptyExpr = errors.New("expr: empty expression operand")

	// ErrEmptyName indicates a symbol was requested with an empty name.
	ErrEmptyName = errors.New("expr: symbol name is empty")

	// ErrNilPattern indicates a constructor was handed a nil sparsity
	// pattern.
	ErrNilPattern = errors.New("expr: nil sparsity pattern")

	// ErrNNZMismatch indicates a reshape whose target pattern does not
	// preserve the nonzero count. Reshape only reinterprets storage; it
	// must never change how much of it there is.
	ErrNNZMismatch = errors.New("expr: nonzero count mismatch")

	// ErrPatternMismatch indicates two operands whose sparsity patterns
	// were required to be identical but are not (Add operands; the block
	// operand of a Scatter against the target's restriction).
	ErrPatternMismatch = errors.New("expr: sparsity pattern mismatch")

	// ErrArity indicates an invocation supplied the wrong number of
	// dependency or result slots for the node kind.
	ErrArity = errors.New("expr: wrong number of argument or result slots")

	// ErrBufferShape indicates an evaluation buffer whose nonzero count
	// does not match the node's declared sparsity. This is a programmer
	// error on the scheduler's side; no partial result is produced.
	ErrBufferShape = errors.New("expr: buffer size differs from declared sparsity")

	// ErrSeedShape indicates malformed forward/adjoint seed slot vectors
	// (per-direction slot counts not matching the node's arity).
	ErrSeedShape = errors.New("expr: malformed sensitivity seed slots")
)
