// Package apperrors defines the error kinds reported back to clients through
// event acknowledgements.
package apperrors

import "fmt"

var (
	ErrValidation = fmt.Errorf("validation error")
	ErrConflict   = fmt.Errorf("conflict error")
	ErrPolicy     = fmt.Errorf("policy error")
)

// Error carries the human-readable acknowledgement text along with its kind.
// errors.Is(err, ErrConflict) matches on the kind.
type Error struct {
	kind    error
	message string
}

// Error returns the message sent back to the client.
func (e *Error) Error() string {
	return e.message
}

// Unwrap exposes the kind so errors.Is matches the sentinels.
func (e *Error) Unwrap() error {
	return e.kind
}

// Kind returns the sentinel this error belongs to.
func (e *Error) Kind() error {
	return e.kind
}

// Validation reports malformed or incomplete input.
func Validation(message string) error {
	return &Error{kind: ErrValidation, message: message}
}

// Conflict reports a clash with existing state.
func Conflict(message string) error {
	return &Error{kind: ErrConflict, message: message}
}

// Policy reports input refused by a content or rate rule.
func Policy(message string) error {
	return &Error{kind: ErrPolicy, message: message}
}
