// SPDX-License-Identifier: MIT

// Package expr: stable opcode identities for node kinds. Opcodes are the
// small-integer tags dispatch, structural hashing and code generation key
// on; their numeric values are part of the package contract and must not
// be reordered.
package expr

import "fmt"

// Op identifies a node kind.
type Op int

const (
	// OpSym is a named symbolic leaf (a graph input).
	OpSym Op = iota

	// OpReshape reinterprets the nonzero sequence under a new pattern.
	OpReshape

	// OpSubRef gathers a rectangular sub-block of its dependency.
	OpSubRef

	// OpScatter places a block-shaped value into a larger zero-filled
	// pattern — the structural inverse of OpSubRef.
	OpScatter

	// OpAdd is the elementwise sum of two equal-pattern operands.
	OpAdd
)

// opNames holds the rendering for each opcode, indexed by the Op value.
var opNames = [...]string{
	OpSym:     "sym",
	OpReshape: "reshape",
	OpSubRef:  "subref",
	OpScatter: "scatter",
	OpAdd:     "add",
}

// String renders the opcode tag. Unknown values render as "op(N)".
func (op Op) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}

	return fmt.Sprintf("op(%d)", int(op))
}
