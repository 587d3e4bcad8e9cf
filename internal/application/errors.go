package application

import (
	"fmt"

	"treewarden/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrInvalidInput = domain.ErrInvalidInput
	ErrNotFound     = domain.ErrNotFound
	ErrConflict     = domain.ErrConflict
	ErrIOFailure    = domain.ErrIOFailure
)

// ValidationError represents a validation failure with details.
// It is always of kind InvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StepError wraps a failure of one reconciliation step with the path it
// was working on.
type StepError struct {
	Step string
	Path string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed at %s: %v", e.Step, e.Path, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind of the underlying failure
func (e *StepError) Kind() domain.ErrorKind {
	return domain.KindOf(e.Err)
}
