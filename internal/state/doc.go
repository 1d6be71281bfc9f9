// Package state provides the data model of issue states.
//
// A State is a named classification outcome. It carries the conditions an
// issue must satisfy for the state to be enabled, and relations to other
// states:
//
//   - Extends: the state is only enabled if the extended state is enabled too.
//   - Overrides: the state takes precedence over the overridden one when both
//     are enabled. No gating is implied.
//
// States are immutable once New (or Builder.Build) returns and are shared by
// pointer: a state may sit in a catalog and be the relation target of any
// number of other states at the same time. Builder exists for groups of states
// that refer to each other out of order.
//
// The total order of states is by name. Compare implements it as a plain
// function so the same ordering serves sorted slices, merge joins and maps
// keyed by name alike.
package state
