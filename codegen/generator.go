// SPDX-License-Identifier: MIT

// Package codegen: the Generator fragment accumulator.
package codegen

import (
	"fmt"
	"strings"
)

// Generator accumulates a prelude of deduplicated integer index tables and
// a body of per-node fragments. One Generator corresponds to one emitted
// kernel; it is not safe for concurrent use.
type Generator struct {
	opts    Options
	prelude strings.Builder   // static index tables, one per unique content
	body    strings.Builder   // per-node fragments in emission order
	tables  map[string]string // rendered table content → table name
}

// New returns an empty Generator with the given emission policy.
// Complexity: O(k) for k options.
func New(opts ...Option) *Generator {
	return &Generator{
		opts:   gatherOptions(opts...),
		tables: make(map[string]string),
	}
}

// RealType returns the configured scalar type name. Complexity: O(1).
func (g *Generator) RealType() string { return g.opts.realType }

// LoopVar returns the configured loop counter name. Complexity: O(1).
func (g *Generator) LoopVar() string { return g.opts.loopVar }

// Printf appends formatted text to the body verbatim (no indent, no
// newline). Prefer Line for whole statements.
func (g *Generator) Printf(format string, a ...any) {
	fmt.Fprintf(&g.body, format, a...)
}

// Line appends one indented body line terminated by a newline.
func (g *Generator) Line(format string, a ...any) {
	g.body.WriteString(g.opts.indent)
	fmt.Fprintf(&g.body, format, a...)
	g.body.WriteByte('\n')
}

// Comment appends one indented /* ... */ body line.
func (g *Generator) Comment(text string) {
	g.Line("/* %s */", text)
}

// IntConstant registers an integer index table and returns its name.
// Identical contents are emitted once and shared between fragments, the
// way gather and scatter loops over the same selection reuse one table.
// Implementation:
//   - Stage 1: render the contents into a canonical key.
//   - Stage 2: return the existing name on a dedup hit.
//   - Stage 3: emit "static const int sK[] = {...};" into the prelude.
//
// Complexity: O(len(vals)) per call.
func (g *Generator) IntConstant(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	key := strings.Join(parts, ",")
	if name, ok := g.tables[key]; ok {
		return name
	}
	name := fmt.Sprintf("s%d", len(g.tables))
	g.tables[key] = name
	fmt.Fprintf(&g.prelude, "static const int %s[] = {%s};\n", name, strings.Join(parts, ", "))

	return name
}

// Source assembles the emitted kernel: prelude first (when any tables were
// registered), then the body. Complexity: O(output).
func (g *Generator) Source() string {
	if g.prelude.Len() == 0 {
		return g.body.String()
	}

	return g.prelude.String() + "\n" + g.body.String()
}
