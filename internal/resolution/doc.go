// Package resolution orders issue states into a catalog and resolves the
// state of an issue against it.
//
// # Catalog
//
// A Catalog is a sequence of states in dependency order: every relation target
// of a state (Extends and Overrides alike) appears strictly before the state.
// FromSet establishes that order from an unordered set and rejects cycles.
// FromOrderedList trusts the caller's order and checks nothing.
//
// FromSet works in batches. Each round moves every state none of whose
// relation targets are still unresolved; within a round states keep their
// by-name order. A round that moves nothing means the remaining states contain
// a cycle.
//
// # Resolution
//
// IssueState scans the catalog once in order. For each state it evaluates the
// state's own conditions and checks that every Extends target was enabled
// earlier in the scan. Overrides relations never gate. The last enabled state
// wins: since a state always comes after everything it relates to, a later
// enabled state is the more specific match.
//
// A Catalog is immutable after construction. Any number of goroutines may
// resolve issues against the same Catalog concurrently; resolution keeps all
// of its bookkeeping local to the call.
package resolution
