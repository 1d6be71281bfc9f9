package resolution

import (
	"iter"
	"slices"

	"github.com/roach88/issuestate/internal/join"
	"github.com/roach88/issuestate/internal/state"
)

// Catalog is an immutable, dependency-ordered sequence of states.
type Catalog[I any] struct {
	states []*state.State[I]
}

// FromOrderedList wraps states as a catalog without any checks.
//
// The caller guarantees dependency order: every relation target of a state
// appears before it. Resolution reports a DependencyError if an Extends target
// turns out to be out of order; misplaced Overrides targets go unnoticed and
// silently weaken precedence.
func FromOrderedList[I any](states []*state.State[I]) *Catalog[I] {
	return &Catalog[I]{states: slices.Clone(states)}
}

// FromSet orders a set of states by dependency.
//
// The set must be closed under relations: every relation target of a member
// is a member too. Violations fail with ErrCodeUnknownRelation before ordering
// starts. Distinct states sharing a name fail with ErrCodeDuplicateState; the
// same state passed twice counts once. If the relations contain a cycle,
// FromSet fails with ErrCodeCyclicDependency and no catalog is returned.
func FromSet[I any](states []*state.State[I]) (*Catalog[I], error) {
	unresolved, err := normalizeSet(states)
	if err != nil {
		return nil, err
	}
	if err := checkClosed(unresolved); err != nil {
		return nil, err
	}

	ordered := make([]*state.State[I], 0, len(unresolved))
	for len(unresolved) > 0 {
		before := len(ordered)
		remaining := unresolved[:0:0]

		for _, s := range unresolved {
			if blockedBy(s, unresolved) {
				remaining = append(remaining, s)
				continue
			}
			ordered = append(ordered, s)
		}

		if len(ordered) == before {
			return nil, NewCycleError(findCycle(remaining), state.Names(remaining))
		}
		unresolved = remaining
	}

	return &Catalog[I]{states: ordered}, nil
}

// blockedBy reports whether any relation target of s is still in unresolved.
// unresolved must be sorted by name.
func blockedBy[I any](s *state.State[I], unresolved []*state.State[I]) bool {
	return join.Any(s.Relations(), state.Keyed(unresolved, struct{}{}), state.Compare[I])
}

// normalizeSet returns a name-sorted copy of states with repeated pointers
// removed.
func normalizeSet[I any](states []*state.State[I]) ([]*state.State[I], error) {
	sorted := slices.Clone(states)
	state.SortByName(sorted)

	out := sorted[:0]
	for i, s := range sorted {
		if i > 0 && sorted[i-1].Name() == s.Name() {
			if sorted[i-1] != s {
				return nil, NewDuplicateStateError(s.Name())
			}
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// checkClosed verifies every relation target of every member is a member.
// members must be sorted by name.
func checkClosed[I any](members []*state.State[I]) error {
	for _, s := range members {
		for row := range join.Left(targets(s), state.Keyed(members, struct{}{}), state.Compare[I]) {
			if !row.Matched {
				return NewUnknownRelationError(s.Name(), row.Left.Name())
			}
		}
	}
	return nil
}

// targets yields each relation target of s keyed by itself.
func targets[I any](s *state.State[I]) iter.Seq2[*state.State[I], *state.State[I]] {
	return func(yield func(*state.State[I], *state.State[I]) bool) {
		for target := range s.Relations() {
			if !yield(target, target) {
				return
			}
		}
	}
}

// Len returns the number of states in the catalog.
func (c *Catalog[I]) Len() int {
	return len(c.states)
}

// States returns a copy of the catalog in dependency order.
func (c *Catalog[I]) States() []*state.State[I] {
	return slices.Clone(c.states)
}

// All yields the states in dependency order.
func (c *Catalog[I]) All() iter.Seq[*state.State[I]] {
	return slices.Values(c.states)
}

// Names returns the state names in dependency order.
func (c *Catalog[I]) Names() []string {
	return state.Names(c.states)
}

// Lookup finds a state by name.
func (c *Catalog[I]) Lookup(name string) (*state.State[I], bool) {
	for _, s := range c.states {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}
