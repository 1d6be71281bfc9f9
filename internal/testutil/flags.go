// Package testutil holds fixtures shared by tests across packages.
package testutil

import (
	"fmt"

	"github.com/roach88/issuestate/internal/condition"
)

// Flags is a minimal issue: a set of named boolean flags. A missing flag is
// false.
type Flags map[string]bool

// NewFlags returns an issue with every named flag set.
func NewFlags(names ...string) Flags {
	f := make(Flags, len(names))
	for _, n := range names {
		f[n] = true
	}
	return f
}

// Flag is a condition satisfied when the named flag is set (or, if Negated,
// when it is not).
type Flag struct {
	Name    string
	Negated bool
}

// SatisfiedBy implements condition.Condition.
func (f Flag) SatisfiedBy(issue Flags) bool {
	return issue[f.Name] != f.Negated
}

// Cond returns a Flag as a condition.Condition for use with state options.
func Cond(name string) condition.Condition[Flags] {
	return Flag{Name: name}
}

// NotCond returns a negated Flag as a condition.Condition.
func NotCond(name string) condition.Condition[Flags] {
	return Flag{Name: name, Negated: true}
}

// FlagFactory builds Flag conditions from existence atoms. Comparisons are
// rejected.
type FlagFactory struct{}

// MakeCondition implements condition.Factory.
func (FlagFactory) MakeCondition(name string, negated bool, cmp *condition.Comparison) (condition.Condition[Flags], error) {
	if cmp != nil {
		return nil, fmt.Errorf("flag %q: operator %s not supported", name, cmp.Op)
	}
	return Flag{Name: name, Negated: negated}, nil
}
