package resolution

import (
	"iter"
	"slices"

	"github.com/roach88/issuestate/internal/join"
	"github.com/roach88/issuestate/internal/state"
)

// Step records how one catalog entry was evaluated for an issue.
type Step[I any] struct {
	State *state.State[I]

	// Local is true when the state's own conditions hold.
	Local bool

	// DepsOK is true when every Extends target was enabled.
	DepsOK bool

	// Enabled is Local && DepsOK.
	Enabled bool
}

// IssueState returns the state of issue under c: the last enabled state in
// catalog order. A nil state with a nil error means no state is enabled.
func IssueState[I any](c *Catalog[I], issue I) (*state.State[I], error) {
	return c.IssueState(issue)
}

// IssueState returns the last enabled state for issue, or nil if none is.
//
// A state is enabled when its conditions hold and every state it extends is
// enabled. An Extends target that has not been evaluated yet yields an error
// with ErrCodeDependency; this only happens with catalogs built by
// FromOrderedList.
func (c *Catalog[I]) IssueState(issue I) (*state.State[I], error) {
	return c.resolve(issue, nil)
}

// Explain resolves issue like IssueState and also returns one Step per
// catalog entry, in catalog order.
func (c *Catalog[I]) Explain(issue I) (*state.State[I], []Step[I], error) {
	steps := make([]Step[I], 0, len(c.states))
	winner, err := c.resolve(issue, func(s Step[I]) {
		steps = append(steps, s)
	})
	if err != nil {
		return nil, nil, err
	}
	return winner, steps, nil
}

func (c *Catalog[I]) resolve(issue I, observe func(Step[I])) (*state.State[I], error) {
	var (
		winner  *state.State[I]
		enabled enabledMap[I]
	)
	for _, s := range c.states {
		local := s.ConditionsSatisfied(issue)
		depsOK, err := extendsEnabled(s, &enabled)
		if err != nil {
			return nil, err
		}

		on := local && depsOK
		enabled.set(s, on)
		if on {
			winner = s
		}
		if observe != nil {
			observe(Step[I]{State: s, Local: local, DepsOK: depsOK, Enabled: on})
		}
	}
	return winner, nil
}

// extendsEnabled joins the relations of s against the states evaluated so far.
// Every Extends target must have been evaluated; Overrides targets are
// skipped.
func extendsEnabled[I any](s *state.State[I], enabled *enabledMap[I]) (bool, error) {
	ok := true
	for row := range join.Left(relations(s), enabled.all(), state.Compare[I]) {
		if row.Left.Kind != state.Extends {
			continue
		}
		if !row.Matched {
			return false, NewDependencyError(s.Name(), row.Left.Target.Name())
		}
		ok = ok && row.Right
	}
	return ok, nil
}

// relations yields the relations of s keyed by target.
func relations[I any](s *state.State[I]) iter.Seq2[*state.State[I], state.Relation[I]] {
	return func(yield func(*state.State[I], state.Relation[I]) bool) {
		for target, kind := range s.Relations() {
			if !yield(target, state.Relation[I]{Target: target, Kind: kind}) {
				return
			}
		}
	}
}

type enabledEntry[I any] struct {
	state   *state.State[I]
	enabled bool
}

// enabledMap records evaluated states, sorted by name.
type enabledMap[I any] struct {
	entries []enabledEntry[I]
}

func (m *enabledMap[I]) set(s *state.State[I], enabled bool) {
	i, found := slices.BinarySearchFunc(m.entries, s, func(e enabledEntry[I], s *state.State[I]) int {
		return state.Compare(e.state, s)
	})
	if found {
		m.entries[i].enabled = enabled
		return
	}
	m.entries = slices.Insert(m.entries, i, enabledEntry[I]{state: s, enabled: enabled})
}

func (m *enabledMap[I]) all() iter.Seq2[*state.State[I], bool] {
	return func(yield func(*state.State[I], bool) bool) {
		for _, e := range m.entries {
			if !yield(e.state, e.enabled) {
				return
			}
		}
	}
}
