package condition

import (
	"errors"
	"fmt"
	"strings"
)

// reserved holds the characters with syntactic meaning in a condition atom.
const reserved = "!=<>~"

// ParseAtom tokenizes a condition atom into name, negation and an optional
// comparison. It performs no validation of the literal value.
func ParseAtom(text string) (Atom, error) {
	pos := strings.IndexAny(text, reserved)
	if pos < 0 {
		return Atom{Name: text}, nil
	}

	if pos == 0 {
		rest := text[1:]
		if text[0] == '!' && !strings.ContainsAny(rest, reserved) {
			return Atom{Name: rest, Negated: true}, nil
		}
		return Atom{}, newParseError(ErrCodeReservedPrefix, text, 0,
			fmt.Sprintf("unexpected %q at start of condition", text[0]))
	}

	atom := Atom{Name: text[:pos]}
	rest := text[pos:]
	offset := pos

	if rest[0] == '!' {
		atom.Negated = true
		rest = rest[1:]
		offset++
	}

	op, width, err := parseOperator(text, rest, offset)
	if err != nil {
		return Atom{}, err
	}
	atom.Comparison = &Comparison{Op: op, Value: rest[width:]}

	return atom, nil
}

// parseOperator reads the operator token at the front of rest and returns it
// together with the number of bytes it occupies.
func parseOperator(text, rest string, offset int) (MatchOp, int, error) {
	if rest == "" {
		return 0, 0, newParseError(ErrCodeMissingOperator, text, offset, "expected operator after negation")
	}

	switch rest[0] {
	case '=':
		return Equivalence, 1, nil
	case '<':
		if strings.HasPrefix(rest, "<=") {
			return LowerThanOrEqual, 2, nil
		}
		return LowerThan, 1, nil
	case '>':
		if strings.HasPrefix(rest, ">=") {
			return GreaterThanOrEqual, 2, nil
		}
		return GreaterThan, 1, nil
	case '~':
		return Contains, 1, nil
	default:
		return 0, 0, newParseError(ErrCodeInvalidOperator, text, offset,
			fmt.Sprintf("invalid operator %q", rest[0]))
	}
}

// Parse tokenizes text and hands the atom to f.
//
// Factory errors that are not already a *ParseError are wrapped with
// ErrCodeInvalidValue; the original error stays reachable via errors.As.
func Parse[C any](f Factory[C], text string) (C, error) {
	var zero C

	atom, err := ParseAtom(text)
	if err != nil {
		return zero, err
	}

	cond, err := f.MakeCondition(atom.Name, atom.Negated, atom.Comparison)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return zero, err
		}
		return zero, &ParseError{
			Code:    ErrCodeInvalidValue,
			Message: err.Error(),
			Input:   text,
			Offset:  -1,
			Err:     err,
		}
	}

	return cond, nil
}

// ParseAll parses every text with f, stopping at the first failure.
func ParseAll[C any](f Factory[C], texts []string) ([]C, error) {
	out := make([]C, 0, len(texts))
	for i, text := range texts {
		cond, err := Parse(f, text)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		out = append(out, cond)
	}
	return out, nil
}
