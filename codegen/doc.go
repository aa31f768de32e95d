// Package codegen accumulates per-node source fragments into one flat
// target-code kernel.
//
// Nodes do not own the generator; they receive it together with the
// argument and result variable names chosen by the scheduler and append
// one fragment each. The generator contributes:
//
//   - Line/Printf — body emission with a configurable indent,
//   - IntConstant — deduplicated static integer index tables for gather
//     and scatter loops,
//   - Source — final assembly of the prelude (tables) and the body.
//
// Emission policy (real type, indent, loop variable) is configured with
// functional options; invalid option values are programmer errors and
// panic with stable messages.
package codegen
