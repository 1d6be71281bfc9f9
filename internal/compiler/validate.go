package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/issuestate/internal/matcher"
	"github.com/roach88/issuestate/internal/resolution"
)

// Validation codes. E1xx are errors; W2xx flag catalogs that build but
// probably do not do what was meant.
const (
	ErrBuildFailed         = "E100" // catalog does not build for another reason
	ErrStateNameEmpty      = "E101" // state name is required
	ErrDuplicateState      = "E102" // two definitions share a name
	ErrUnknownTarget       = "E103" // relation names no definition
	ErrForwardReference    = "E104" // relation names a later definition in document order
	ErrSelfRelation        = "E105" // state relates to itself
	ErrConflictingRelation = "E106" // same target both extended and overridden
	ErrInvalidCondition    = "E107" // condition atom does not parse
	ErrCyclicDependency    = "E108" // relations form a cycle
	WarnDuplicateCondition = "W201" // condition repeated within a state
	WarnShadowedState      = "W202" // a later state is always enabled
)

// Finding levels.
const (
	LevelError   = "error"
	LevelWarning = "warning"
)

// Mode selects how a catalog is ordered.
type Mode int

const (
	// DocumentOrder keeps the order of the definitions; relations must point
	// backwards. YAML catalogs use it.
	DocumentOrder Mode = iota
	// DependencyOrder computes the order from the relations. CUE catalogs
	// use it.
	DependencyOrder
)

// ValidationError is one lint finding.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Level   string `json:"level"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// HasErrors reports whether any finding is error level.
func HasErrors(errs []ValidationError) bool {
	return slices.ContainsFunc(errs, func(e ValidationError) bool {
		return e.Level == LevelError
	})
}

// Validate lints definitions and returns every finding; it does not stop at
// the first. Shadowing and cycles are only checked when nothing else is
// wrong, since both need a buildable catalog.
func Validate(defs []Definition, mode Mode) []ValidationError {
	var errs []ValidationError

	index := make(map[string]int, len(defs))
	for i, def := range defs {
		field := fmt.Sprintf("states[%d]", i)
		if strings.TrimSpace(def.Name) == "" {
			errs = append(errs, finding(def, field+".name", "state name is required", ErrStateNameEmpty, LevelError))
			continue
		}
		if _, dup := index[def.Name]; dup {
			errs = append(errs, finding(def, field+".name",
				fmt.Sprintf("duplicate state name: %q", def.Name), ErrDuplicateState, LevelError))
			continue
		}
		index[def.Name] = i
	}

	for i, def := range defs {
		field := fmt.Sprintf("state.%s", def.Name)
		errs = append(errs, validateConditions(def, field)...)
		errs = append(errs, validateRelations(def, i, field, index, mode)...)
	}

	if HasErrors(errs) {
		return errs
	}

	ordered := defs
	if mode == DependencyOrder {
		compiled, err := Build(defs)
		if err != nil {
			if resolution.IsCyclicDependency(err) {
				return append(errs, ValidationError{
					Field:   "state",
					Message: err.Error(),
					Code:    ErrCyclicDependency,
					Level:   LevelError,
				})
			}
			return append(errs, ValidationError{Field: "state", Message: err.Error(), Code: ErrBuildFailed, Level: LevelError})
		}
		ordered = compiled.Definitions
	}

	return append(errs, shadowed(ordered)...)
}

func validateConditions(def Definition, field string) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(def.Conditions))
	for j, text := range def.Conditions {
		path := fmt.Sprintf("%s.conditions[%d]", field, j)
		if _, err := matcher.Parse(text); err != nil {
			errs = append(errs, finding(def, path, err.Error(), ErrInvalidCondition, LevelError))
			continue
		}
		if seen[text] {
			errs = append(errs, finding(def, path,
				fmt.Sprintf("condition %q repeated", text), WarnDuplicateCondition, LevelWarning))
		}
		seen[text] = true
	}
	return errs
}

func validateRelations(def Definition, pos int, field string, index map[string]int, mode Mode) []ValidationError {
	var errs []ValidationError

	check := func(kind string, targets []string) {
		for j, target := range targets {
			path := fmt.Sprintf("%s.%s[%d]", field, kind, j)
			at, ok := index[target]
			switch {
			case target == def.Name:
				errs = append(errs, finding(def, path,
					fmt.Sprintf("state %q %s itself", def.Name, kind), ErrSelfRelation, LevelError))
			case !ok:
				errs = append(errs, finding(def, path,
					fmt.Sprintf("unknown state %q", target), ErrUnknownTarget, LevelError))
			case mode == DocumentOrder && at > pos:
				errs = append(errs, finding(def, path,
					fmt.Sprintf("state %q is defined later", target), ErrForwardReference, LevelError))
			}
		}
	}
	check("extends", def.Extends)
	check("overrides", def.Overrides)

	for _, target := range def.Extends {
		if slices.Contains(def.Overrides, target) {
			errs = append(errs, finding(def, field,
				fmt.Sprintf("state %q both extends and overrides %q", def.Name, target), ErrConflictingRelation, LevelError))
		}
	}
	return errs
}

// shadowed reports states that can never be the result because an
// unconditional state without Extends comes after them.
func shadowed(ordered []Definition) []ValidationError {
	last := -1
	for i, def := range ordered {
		if len(def.Conditions) == 0 && len(def.Extends) == 0 {
			last = i
		}
	}

	var errs []ValidationError
	for _, def := range ordered[:max(last, 0)] {
		errs = append(errs, finding(def, fmt.Sprintf("state.%s", def.Name),
			fmt.Sprintf("never selected: %q is always enabled and comes later", ordered[last].Name),
			WarnShadowedState, LevelWarning))
	}
	return errs
}

func finding(def Definition, field, msg, code, level string) ValidationError {
	return ValidationError{Field: field, Message: msg, Code: code, Level: level, Line: def.Line}
}
