// SPDX-License-Identifier: MIT

// Package sym: the Value scalar and its additive algebra.
package sym

import (
	"fmt"
	"strings"
)

// kind discriminates the three scalar forms plus the implicit zero.
type kind uint8

const (
	kindZero  kind = iota // the additive identity; zero Value default
	kindVar               // a named symbolic variable
	kindConst             // a finite numeric constant
	kindSum               // a flat sum of two or more non-zero terms
)

// Value is an immutable symbolic scalar. The zero Value is the symbolic
// zero; build the other forms with Var and Const.
type Value struct {
	kind kind
	name string  // kindVar only
	val  float64 // kindConst only
	args []Value // kindSum only; never contains zeros or nested sums
}

// Var returns a named symbolic variable.
// Complexity: O(1).
func Var(name string) Value {
	return Value{kind: kindVar, name: name}
}

// Const returns a numeric constant scalar. A zero constant collapses to
// the symbolic zero so IsZero stays a single check.
// Complexity: O(1).
func Const(v float64) Value {
	if v == 0 {
		return Value{}
	}

	return Value{kind: kindConst, val: v}
}

// Zero returns the symbolic zero (identical to the zero Value).
// Complexity: O(1).
func Zero() Value { return Value{} }

// IsZero reports whether v is the symbolic zero.
// Complexity: O(1).
func (v Value) IsZero() bool { return v.kind == kindZero }

// Float returns the numeric value when v is a constant (or zero) and
// reports whether that interpretation is exact.
// Complexity: O(1).
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case kindZero:
		return 0, true
	case kindConst:
		return v.val, true
	default:
		return 0, false
	}
}

// terms flattens v into its additive terms (itself unless v is a sum).
func (v Value) terms() []Value {
	if v.kind == kindSum {
		return v.args
	}

	return []Value{v}
}

// Add returns the sum a + b with the minimal folding the propagation
// protocol relies on: zeros vanish, constants combine, everything else
// flattens into one sum.
// Complexity: O(terms(a) + terms(b)).
func Add(a, b Value) Value {
	// Additive identities first: they make "accumulate into a fresh slot"
	// a plain assignment.
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}

	var (
		csum  float64 // combined constant part
		terms []Value // surviving non-constant terms
	)
	for _, t := range append(a.terms(), b.terms()...) {
		if c, ok := t.Float(); ok {
			csum += c
			continue
		}
		terms = append(terms, t)
	}
	if csum != 0 {
		terms = append(terms, Const(csum))
	}
	switch len(terms) {
	case 0:
		return Zero()
	case 1:
		return terms[0]
	default:
		return Value{kind: kindSum, args: terms}
	}
}

// String renders the scalar for debugging: "0", the variable name, the
// constant in %g form, or a parenthesized sum.
func (v Value) String() string {
	switch v.kind {
	case kindZero:
		return "0"
	case kindVar:
		return v.name
	case kindConst:
		return fmt.Sprintf("%g", v.val)
	default:
		parts := make([]string, len(v.args))
		for i, t := range v.args {
			parts[i] = t.String()
		}

		return "(" + strings.Join(parts, "+") + ")"
	}
}
