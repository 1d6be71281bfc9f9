package resolution

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes catalog and resolution errors.
type ErrorCode string

const (
	// ErrCodeCyclicDependency indicates the relations of a state set form a
	// cycle, so no dependency order exists.
	ErrCodeCyclicDependency ErrorCode = "CYCLIC_DEPENDENCY"

	// ErrCodeDependency indicates an Extends target had not been evaluated
	// when its referrer was, i.e. the catalog is not in dependency order.
	ErrCodeDependency ErrorCode = "DEPENDENCY_ERROR"

	// ErrCodeUnknownRelation indicates a relation target missing from the
	// state set handed to FromSet.
	ErrCodeUnknownRelation ErrorCode = "UNKNOWN_RELATION"

	// ErrCodeDuplicateState indicates two distinct states share a name.
	ErrCodeDuplicateState ErrorCode = "DUPLICATE_STATE"
)

// Error is returned by FromSet and by resolution.
type Error struct {
	Code    ErrorCode
	Message string

	// State names the state being processed, when there is one.
	State string

	// Target names the relation target involved, for dependency and unknown
	// relation errors.
	Target string

	// Cycle is one dependency cycle, first element repeated at the end.
	Cycle []string

	// Unresolved lists every state that could not be ordered.
	Unresolved []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case len(e.Cycle) > 0:
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.Cycle, " → "))
	case e.State != "" && e.Target != "":
		return fmt.Sprintf("%s: %s (state=%s, target=%s)", e.Code, e.Message, e.State, e.Target)
	case e.State != "":
		return fmt.Sprintf("%s: %s (state=%s)", e.Code, e.Message, e.State)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsCyclicDependency returns true if err is a cycle error.
func IsCyclicDependency(err error) bool {
	return hasCode(err, ErrCodeCyclicDependency)
}

// IsDependencyError returns true if err reports a broken dependency order.
func IsDependencyError(err error) bool {
	return hasCode(err, ErrCodeDependency)
}

// IsUnknownRelation returns true if err reports a relation target outside the set.
func IsUnknownRelation(err error) bool {
	return hasCode(err, ErrCodeUnknownRelation)
}

// IsDuplicateState returns true if err reports two states with one name.
func IsDuplicateState(err error) bool {
	return hasCode(err, ErrCodeDuplicateState)
}

func hasCode(err error, code ErrorCode) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// NewCycleError creates an Error for an unorderable remainder.
func NewCycleError(cycle, unresolved []string) *Error {
	return &Error{
		Code:       ErrCodeCyclicDependency,
		Message:    "dependency cycle detected",
		Cycle:      cycle,
		Unresolved: unresolved,
	}
}

// NewDependencyError creates an Error for an Extends target evaluated out of order.
func NewDependencyError(state, target string) *Error {
	return &Error{
		Code:    ErrCodeDependency,
		Message: "extended state not resolved before its dependent",
		State:   state,
		Target:  target,
	}
}

// NewUnknownRelationError creates an Error for a relation leaving the state set.
func NewUnknownRelationError(state, target string) *Error {
	return &Error{
		Code:    ErrCodeUnknownRelation,
		Message: "relation target is not part of the state set",
		State:   state,
		Target:  target,
	}
}

// NewDuplicateStateError creates an Error for a name used by two states.
func NewDuplicateStateError(state string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateState,
		Message: "state name used more than once",
		State:   state,
	}
}
