// Package sym provides the minimal symbolic scalar used by the node
// layer's symbolic-scalar evaluation path.
//
// A Value is a named variable, a finite constant, or a flat sum of values.
// The package performs only the folding the evaluation protocol needs
// (zero elimination and constant addition); it is deliberately NOT an
// expression simplifier — the graph-level expr package owns structure.
//
// The zero Value is the symbolic zero, so freshly allocated buffers of
// Values are already zero-initialized the way numeric buffers are.
package sym
