package matcher

import (
	"fmt"

	"github.com/roach88/issuestate/internal/condition"
	"github.com/roach88/issuestate/internal/meta"
)

// ValueError reports an atom the factory cannot turn into a condition.
type ValueError struct {
	Name    string
	Value   string
	Message string
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("condition %q: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("condition %q: %s: %q", e.Name, e.Message, e.Value)
}

// Factory builds Conditions from parsed atoms.
type Factory struct{}

var _ condition.Factory[Condition] = Factory{}

// MakeCondition implements condition.Factory.
func (Factory) MakeCondition(name string, negated bool, cmp *condition.Comparison) (Condition, error) {
	if name == "" {
		return Condition{}, &ValueError{Message: "empty metadata key"}
	}
	atom := condition.Atom{Name: name, Negated: negated}
	if cmp == nil {
		return Condition{atom: atom}, nil
	}

	c := *cmp
	atom.Comparison = &c
	literal := parseLiteral(c.Value)

	switch c.Op {
	case condition.LowerThan, condition.GreaterThan, condition.LowerThanOrEqual, condition.GreaterThanOrEqual:
		if _, ok := literal.(meta.Bool); ok {
			return Condition{}, &ValueError{Name: name, Value: c.Value, Message: "cannot order by a boolean"}
		}
		if c.Value == "" {
			return Condition{}, &ValueError{Name: name, Message: "ordering needs a value"}
		}
	case condition.Contains:
		if c.Value == "" {
			return Condition{}, &ValueError{Name: name, Message: "contains needs a value"}
		}
	}

	return Condition{atom: atom, literal: literal}, nil
}

// Parse parses a single condition atom.
func Parse(text string) (Condition, error) {
	return condition.Parse[Condition](Factory{}, text)
}

// ParseAll parses atoms and returns them as conditions over meta.Object,
// ready for state.WithConditions.
func ParseAll(texts []string) ([]condition.Condition[meta.Object], error) {
	parsed, err := condition.ParseAll[Condition](Factory{}, texts)
	if err != nil {
		return nil, err
	}
	out := make([]condition.Condition[meta.Object], len(parsed))
	for i, c := range parsed {
		out[i] = c
	}
	return out, nil
}
