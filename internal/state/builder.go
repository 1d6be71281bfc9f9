package state

import (
	"errors"
	"fmt"
)

// ErrBuilt is returned when a Builder is used after Build.
var ErrBuilt = errors.New("state builder already built")

// Builder creates a group of states whose relations may point at any member,
// regardless of declaration order. It is how a set of states with a cycle
// comes to exist; New alone can only refer to states that already exist.
//
// A Builder is not safe for concurrent use.
type Builder[I any] struct {
	byName map[string]*State[I]
	order  []*State[I]
	built  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder[I any]() *Builder[I] {
	return &Builder[I]{byName: make(map[string]*State[I])}
}

// Declare adds a state. Names must be unique within the builder.
func (b *Builder[I]) Declare(name string, opts ...Option[I]) (*State[I], error) {
	if b.built {
		return nil, ErrBuilt
	}
	if _, ok := b.byName[name]; ok {
		return nil, fmt.Errorf("state %q declared twice", name)
	}
	s := New(name, opts...)
	b.byName[name] = s
	b.order = append(b.order, s)
	return s, nil
}

// Lookup returns a declared state.
func (b *Builder[I]) Lookup(name string) (*State[I], bool) {
	s, ok := b.byName[name]
	return s, ok
}

// Relate adds a relation between two declared states.
func (b *Builder[I]) Relate(from, to string, kind RelationKind) error {
	if b.built {
		return ErrBuilt
	}
	src, ok := b.byName[from]
	if !ok {
		return fmt.Errorf("unknown state %q", from)
	}
	dst, ok := b.byName[to]
	if !ok {
		return fmt.Errorf("unknown state %q", to)
	}
	src.addRelation(dst, kind)
	return nil
}

// Build returns the declared states in declaration order. The builder cannot
// be modified afterwards.
func (b *Builder[I]) Build() []*State[I] {
	b.built = true
	out := make([]*State[I], len(b.order))
	copy(out, b.order)
	return out
}
