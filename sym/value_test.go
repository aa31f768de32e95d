// Package sym_test contains unit tests for the symbolic scalar Value.
package sym_test

import (
	"testing"

	"github.com/katalvlaran/lvlgrad/sym"
	"github.com/stretchr/testify/require"
)

// TestZeroIdentity covers the zero Value and its additive identity role.
func TestZeroIdentity(t *testing.T) {
	var v sym.Value                 // zero Value is the symbolic zero
	require.True(t, v.IsZero())     // zero by construction
	require.True(t, sym.Zero().IsZero())
	require.True(t, sym.Const(0).IsZero()) // zero constant collapses

	x := sym.Var("x")
	require.Equal(t, x, sym.Add(sym.Zero(), x)) // 0 + x == x (assignment, no sum node)
	require.Equal(t, x, sym.Add(x, sym.Zero())) // x + 0 == x
}

// TestConstFolding combines constant terms during addition.
func TestConstFolding(t *testing.T) {
	s := sym.Add(sym.Const(2), sym.Const(3)) // 2 + 3
	v, ok := s.Float()                       // must stay a plain constant
	require.True(t, ok)                      // constant interpretation exact
	require.Equal(t, 5.0, v)                 // folded value

	s = sym.Add(sym.Const(2), sym.Const(-2)) // cancellation back to zero
	require.True(t, s.IsZero())              // exact zero after folding
}

// TestSumFlattening keeps sums flat across repeated accumulation.
func TestSumFlattening(t *testing.T) {
	x, y, z := sym.Var("x"), sym.Var("y"), sym.Var("z")

	s := sym.Add(sym.Add(x, y), z)            // ((x+y)+z) flattens
	require.Equal(t, "(x+y+z)", s.String())   // one flat sum, stable order

	s = sym.Add(sym.Add(x, sym.Const(1)), sym.Add(y, sym.Const(2)))
	require.Equal(t, "(x+y+3)", s.String()) // constants merge at the tail
}

// TestStringForms covers the scalar renderings.
func TestStringForms(t *testing.T) {
	require.Equal(t, "0", sym.Zero().String())      // symbolic zero
	require.Equal(t, "x", sym.Var("x").String())    // plain variable
	require.Equal(t, "2.5", sym.Const(2.5).String()) // %g constant
}

// TestFloatOnVariables rejects numeric interpretation of non-constants.
func TestFloatOnVariables(t *testing.T) {
	_, ok := sym.Var("x").Float() // a variable has no numeric value
	require.False(t, ok)          // interpretation must be refused
}
