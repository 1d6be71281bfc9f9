package condition

import (
	"errors"
	"fmt"
)

// ParseErrorCode categorizes condition syntax errors.
type ParseErrorCode string

const (
	// ErrCodeReservedPrefix indicates a reserved character other than a lone
	// negation at the start of the atom.
	ErrCodeReservedPrefix ParseErrorCode = "RESERVED_PREFIX"

	// ErrCodeMissingOperator indicates a negation not followed by an operator.
	ErrCodeMissingOperator ParseErrorCode = "MISSING_OPERATOR"

	// ErrCodeInvalidOperator indicates an unknown operator token.
	ErrCodeInvalidOperator ParseErrorCode = "INVALID_OPERATOR"

	// ErrCodeInvalidValue indicates the factory rejected the atom.
	ErrCodeInvalidValue ParseErrorCode = "INVALID_VALUE"
)

// ParseError reports a malformed condition atom.
type ParseError struct {
	Code    ParseErrorCode
	Message string

	// Input is the full atom text.
	Input string

	// Offset is the byte offset of the offending character, or -1 when the
	// error does not point at a single position.
	Offset int

	// Err is the factory error for ErrCodeInvalidValue.
	Err error
}

func newParseError(code ParseErrorCode, input string, offset int, msg string) *ParseError {
	return &ParseError{Code: code, Message: msg, Input: input, Offset: offset}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (condition %q, offset %d)", e.Code, e.Message, e.Input, e.Offset)
	}
	return fmt.Sprintf("%s: %s (condition %q)", e.Code, e.Message, e.Input)
}

// Unwrap returns the factory error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
