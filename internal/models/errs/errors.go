package errs

import (
	"errors"
	"fmt"
)

// Failure kinds of the banking core. Failure sites wrap these with
// context via %w; callers match with errors.Is.
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrLimitExceeded       = errors.New("operation limit exceeded")
)

// Provides details at which field unique violation has occurred.
type AlreadyExistsError struct {
	FieldName string
	Value     string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("invalid input: %s %q already exists", e.FieldName, e.Value)
}

// Unwrap makes a duplicate count as an invalid input failure.
func (e *AlreadyExistsError) Unwrap() error {
	return ErrInvalidInput
}
