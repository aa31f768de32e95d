// SPDX-License-Identifier: MIT

// Package codegen: functional configuration for code emission.
// This file defines the Option/Options pair, documented defaults and the
// WithX constructors. Option constructors panic only on nonsensical values
// (programmer error); everything else is last-writer-wins.
package codegen

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultRealType is the scalar type name used in emitted code.
	DefaultRealType = "double"

	// DefaultIndent prefixes every emitted body line.
	DefaultIndent = "  "

	// DefaultLoopVar names the loop counter in emitted loops.
	DefaultLoopVar = "i"
)

// Internal panic messages (no magic strings).
const (
	panicRealTypeEmpty = "codegen: WithRealType: type name must be non-empty"
	panicLoopVarEmpty  = "codegen: WithLoopVar: loop variable must be non-empty"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective emission configuration. Fields are
// unexported; public entry points accept ...Option and resolve them via
// gatherOptions.
type Options struct {
	realType string // scalar type name; DefaultRealType
	indent   string // body line prefix; DefaultIndent
	loopVar  string // loop counter name; DefaultLoopVar
}

// WithRealType sets the scalar type name used in emitted declarations.
// Panics with a stable message when the name is empty.
// Complexity: O(1).
func WithRealType(name string) Option {
	if name == "" {
		panic(panicRealTypeEmpty)
	}

	return func(o *Options) { o.realType = name }
}

// WithIndent sets the body line prefix; an empty indent is legal (flat
// output). Complexity: O(1).
func WithIndent(indent string) Option {
	return func(o *Options) { o.indent = indent }
}

// WithLoopVar sets the loop counter name used in emitted loops.
// Panics with a stable message when the name is empty.
// Complexity: O(1).
func WithLoopVar(name string) Option {
	if name == "" {
		panic(panicLoopVarEmpty)
	}

	return func(o *Options) { o.loopVar = name }
}

// gatherOptions applies user-provided setters on top of the documented
// defaults (last-writer-wins). Complexity: O(k) for k options.
func gatherOptions(user ...Option) Options {
	o := Options{
		realType: DefaultRealType,
		indent:   DefaultIndent,
		loopVar:  DefaultLoopVar,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
