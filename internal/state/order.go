package state

import (
	"cmp"
	"iter"
	"slices"
)

// Compare orders states by name.
func Compare[I any](a, b *State[I]) int {
	return cmp.Compare(a.name, b.name)
}

// SortByName sorts states in place by name.
func SortByName[I any](states []*State[I]) {
	slices.SortFunc(states, Compare[I])
}

// Names returns the names of states in the given order.
func Names[I any](states []*State[I]) []string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.name
	}
	return names
}

// Keyed yields each state keyed by itself, the shape expected on either side
// of a merge join over states.
func Keyed[I any, V any](states []*State[I], value V) iter.Seq2[*State[I], V] {
	return func(yield func(*State[I], V) bool) {
		for _, s := range states {
			if !yield(s, value) {
				return
			}
		}
	}
}
