package state

import (
	"cmp"
	"iter"
	"slices"

	"github.com/roach88/issuestate/internal/condition"
)

// RelationKind classifies a relation from one state to another.
type RelationKind int

const (
	// Extends makes enablement depend on the target being enabled.
	Extends RelationKind = iota
	// Overrides declares precedence over the target without gating.
	Overrides
)

// String returns the lower-case relation keyword.
func (k RelationKind) String() string {
	switch k {
	case Extends:
		return "extends"
	case Overrides:
		return "overrides"
	default:
		return "unknown"
	}
}

// Relation is one outgoing edge of a state.
type Relation[I any] struct {
	Target *State[I]
	Kind   RelationKind
}

// State is a named issue state over issues of type I.
type State[I any] struct {
	name       string
	conditions []condition.Condition[I]

	// relations is sorted by target name; targets are unique.
	relations []Relation[I]
}

// Option configures a State under construction.
type Option[I any] func(*State[I])

// New creates a state. Options are applied in order; relating to the same
// target twice keeps the kind given last.
func New[I any](name string, opts ...Option[I]) *State[I] {
	s := &State[I]{name: name}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithConditions appends conditions to the state.
func WithConditions[I any](conds ...condition.Condition[I]) Option[I] {
	return func(s *State[I]) {
		s.conditions = append(s.conditions, conds...)
	}
}

// ExtendsStates adds Extends relations to each target.
func ExtendsStates[I any](targets ...*State[I]) Option[I] {
	return withRelations(Extends, targets)
}

// OverridesStates adds Overrides relations to each target.
func OverridesStates[I any](targets ...*State[I]) Option[I] {
	return withRelations(Overrides, targets)
}

// WithRelation adds a single relation of the given kind.
func WithRelation[I any](target *State[I], kind RelationKind) Option[I] {
	return withRelations(kind, []*State[I]{target})
}

func withRelations[I any](kind RelationKind, targets []*State[I]) Option[I] {
	return func(s *State[I]) {
		for _, target := range targets {
			s.addRelation(target, kind)
		}
	}
}

func (s *State[I]) addRelation(target *State[I], kind RelationKind) {
	i, found := slices.BinarySearchFunc(s.relations, target.name, func(r Relation[I], name string) int {
		return cmp.Compare(r.Target.name, name)
	})
	if found {
		s.relations[i] = Relation[I]{Target: target, Kind: kind}
		return
	}
	s.relations = slices.Insert(s.relations, i, Relation[I]{Target: target, Kind: kind})
}

// Name returns the state's name, which is also its ordering key.
func (s *State[I]) Name() string {
	return s.name
}

// Conditions returns a copy of the state's own conditions.
func (s *State[I]) Conditions() []condition.Condition[I] {
	return slices.Clone(s.conditions)
}

// Relations yields each relation target and kind in ascending target order.
func (s *State[I]) Relations() iter.Seq2[*State[I], RelationKind] {
	return func(yield func(*State[I], RelationKind) bool) {
		for _, r := range s.relations {
			if !yield(r.Target, r.Kind) {
				return
			}
		}
	}
}

// RelationList returns a copy of the state's relations in ascending target order.
func (s *State[I]) RelationList() []Relation[I] {
	return slices.Clone(s.relations)
}

// RelationCount returns the number of related states.
func (s *State[I]) RelationCount() int {
	return len(s.relations)
}

// RelationTo returns the kind of relation to the state named target.
func (s *State[I]) RelationTo(target string) (RelationKind, bool) {
	i, found := slices.BinarySearchFunc(s.relations, target, func(r Relation[I], name string) int {
		return cmp.Compare(r.Target.name, name)
	})
	if !found {
		return 0, false
	}
	return s.relations[i].Kind, true
}

// ConditionsSatisfied reports whether all of the state's own conditions hold
// for issue. A state without conditions is satisfied by every issue.
//
// Conditions inherited through Extends are not considered here, so this alone
// does not tell whether the state is enabled.
func (s *State[I]) ConditionsSatisfied(issue I) bool {
	for _, c := range s.conditions {
		if !c.SatisfiedBy(issue) {
			return false
		}
	}
	return true
}

// String returns the state's name.
func (s *State[I]) String() string {
	return s.name
}
