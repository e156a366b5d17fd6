package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks business-rule violations so handlers answer 400
// instead of 500.
type ValidationError struct {
	msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// ErrUnauthorized is returned when the actor's role or ownership does not
// permit the operation.
var ErrUnauthorized = errors.New("unauthorized action")
