package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns one
// message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for _, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertCatalogOrder:
		return assertCatalogOrder(result, a)
	case AssertEnabled:
		return assertEnabled(result, a, true)
	case AssertDisabled:
		return assertEnabled(result, a, false)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertCatalogOrder(result *Result, a Assertion) error {
	if slices.Equal(result.Order, a.States) {
		return nil
	}
	return &AssertionError{
		Type:     AssertCatalogOrder,
		Expected: strings.Join(a.States, ", "),
		Actual:   strings.Join(result.Order, ", "),
	}
}

func assertEnabled(result *Result, a Assertion, want bool) error {
	cr, ok := result.Case(a.Case)
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("case %q", a.Case),
			Actual:   "case did not run",
		}
	}

	on, found := cr.enabled(a.State)
	if !found {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("state %q in catalog", a.State),
			Actual:   "state not found",
		}
	}
	if on == want {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("state %q %s for case %q", a.State, enabledWord(want), a.Case),
		Actual:   enabledWord(on),
	}
}

func enabledWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
