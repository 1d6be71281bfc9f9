package condition

// Condition is a predicate over an issue of type I.
//
// The conditions of a state are combined by conjunction: a state's own
// conditions hold only when every one of them is satisfied.
type Condition[I any] interface {
	SatisfiedBy(issue I) bool
}

// Func adapts a plain function to the Condition interface.
type Func[I any] func(issue I) bool

// SatisfiedBy calls f.
func (f Func[I]) SatisfiedBy(issue I) bool {
	return f(issue)
}

// MatchOp identifies how a piece of metadata (left-hand value) is compared to
// the literal of a condition atom (right-hand value). The meaning of each
// operator is attached by the Factory, not by this package.
type MatchOp int

const (
	// Equivalence matches if both values are equivalent.
	Equivalence MatchOp = iota
	// LowerThan matches if the left-hand value is lower.
	LowerThan
	// GreaterThan matches if the left-hand value is greater.
	GreaterThan
	// LowerThanOrEqual matches if the left-hand value is lower or equal.
	LowerThanOrEqual
	// GreaterThanOrEqual matches if the left-hand value is greater or equal.
	GreaterThanOrEqual
	// Contains matches if the left-hand value contains or equals the right-hand value.
	Contains
)

// String returns the operator token as written in a condition atom.
func (op MatchOp) String() string {
	switch op {
	case Equivalence:
		return "="
	case LowerThan:
		return "<"
	case GreaterThan:
		return ">"
	case LowerThanOrEqual:
		return "<="
	case GreaterThanOrEqual:
		return ">="
	case Contains:
		return "~"
	default:
		return "?"
	}
}

// Comparison is the optional operator/literal part of an atom.
type Comparison struct {
	Op    MatchOp
	Value string
}

// Atom is the tokenized form of a single condition.
//
// A nil Comparison denotes an existence check on Name.
type Atom struct {
	Name       string
	Negated    bool
	Comparison *Comparison
}

// String renders the atom back into condition syntax.
func (a Atom) String() string {
	if a.Comparison == nil {
		if a.Negated {
			return "!" + a.Name
		}
		return a.Name
	}
	neg := ""
	if a.Negated {
		neg = "!"
	}
	return a.Name + neg + a.Comparison.Op.String() + a.Comparison.Value
}

// Factory turns a tokenized atom into a concrete condition of type C.
//
// Implementations parse and validate the literal. Returned errors need not be
// *ParseError; Parse wraps them so callers can still reach the original with
// errors.As.
type Factory[C any] interface {
	MakeCondition(name string, negated bool, cmp *Comparison) (C, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc[C any] func(name string, negated bool, cmp *Comparison) (C, error)

// MakeCondition calls f.
func (f FactoryFunc[C]) MakeCondition(name string, negated bool, cmp *Comparison) (C, error) {
	return f(name, negated, cmp)
}
