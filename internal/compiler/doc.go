// Package compiler turns catalog source files into resolution catalogs.
//
// Two source formats are supported:
//
//   - YAML: a top-level sequence whose order is the catalog order. Each item
//     is a state name or a mapping with name, conditions, extends and
//     overrides. Relations may only name states that appear earlier.
//   - CUE: a "state" struct keyed by state name. Relations may name any
//     state; the order is computed and cycles are rejected.
//
// Both front-ends first produce []Definition. Build and BuildOrdered turn
// definitions into a Compiled catalog; Validate lints definitions without
// building them.
package compiler
