// Package matcher evaluates condition atoms against issue metadata.
//
// A metadata key exists when it is present and holds neither null nor false.
// Comparison literals are typed by their text: an integer, then true/false,
// otherwise a string.
//
//	=   ints numerically, bools by value, anything else by text
//	< > <= >=   ints numerically, strings lexically; other pairs never match
//	~   list membership by text, otherwise substring of the text
//
// A missing key fails every comparison. Negation inverts the final result, so
// "priority!=1" holds for issues without a priority.
package matcher

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/issuestate/internal/condition"
	"github.com/roach88/issuestate/internal/meta"
)

// Condition is a compiled condition atom over meta.Object issues.
type Condition struct {
	atom    condition.Atom
	literal meta.Value
}

var _ condition.Condition[meta.Object] = Condition{}

// Atom returns the atom the condition was built from.
func (c Condition) Atom() condition.Atom {
	return c.atom
}

// String renders the condition in atom syntax.
func (c Condition) String() string {
	return c.atom.String()
}

// SatisfiedBy implements condition.Condition.
func (c Condition) SatisfiedBy(issue meta.Object) bool {
	return c.match(issue) != c.atom.Negated
}

func (c Condition) match(issue meta.Object) bool {
	v, ok := issue.Get(c.atom.Name)
	if c.atom.Comparison == nil {
		return ok && exists(v)
	}
	if !ok {
		return false
	}

	switch c.atom.Comparison.Op {
	case condition.Equivalence:
		return equivalent(v, c.literal, c.atom.Comparison.Value)
	case condition.Contains:
		return contains(v, c.atom.Comparison.Value)
	default:
		r, ok := order(v, c.literal, c.atom.Comparison.Value)
		if !ok {
			return false
		}
		return holds(c.atom.Comparison.Op, r)
	}
}

func exists(v meta.Value) bool {
	switch val := v.(type) {
	case nil, meta.Null:
		return false
	case meta.Bool:
		return bool(val)
	default:
		return true
	}
}

func equivalent(v, literal meta.Value, text string) bool {
	switch val := v.(type) {
	case meta.Int:
		if n, ok := literal.(meta.Int); ok {
			return val == n
		}
	case meta.Bool:
		if b, ok := literal.(meta.Bool); ok {
			return val == b
		}
	}
	return meta.Text(v) == text
}

func contains(v meta.Value, text string) bool {
	if list, ok := v.(meta.List); ok {
		return slices.ContainsFunc(list, func(item meta.Value) bool {
			return meta.Text(item) == text
		})
	}
	return strings.Contains(meta.Text(v), text)
}

// order compares v with the literal. ok is false for pairs without an order.
func order(v, literal meta.Value, text string) (int, bool) {
	switch val := v.(type) {
	case meta.Int:
		if n, ok := literal.(meta.Int); ok {
			return cmp.Compare(val, n), true
		}
	case meta.String:
		if _, isInt := literal.(meta.Int); !isInt {
			return strings.Compare(string(val), text), true
		}
	}
	return 0, false
}

func holds(op condition.MatchOp, r int) bool {
	switch op {
	case condition.LowerThan:
		return r < 0
	case condition.GreaterThan:
		return r > 0
	case condition.LowerThanOrEqual:
		return r <= 0
	case condition.GreaterThanOrEqual:
		return r >= 0
	default:
		return false
	}
}

// parseLiteral types a comparison literal.
func parseLiteral(text string) meta.Value {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return meta.Int(n)
	}
	switch text {
	case "true":
		return meta.Bool(true)
	case "false":
		return meta.Bool(false)
	}
	return meta.String(text)
}
