package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by the reconciler and adapters
type ErrorKind int

const (
	KindIOFailure ErrorKind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
)

// Sentinel errors, one per kind. PathError matches them via errors.Is.
var (
	ErrIOFailure    = errors.New("io failure")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	default:
		return "io failure"
	}
}

// Sentinel returns the sentinel error for the kind
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	default:
		return ErrIOFailure
	}
}

// PathError records a failed filesystem operation together with the
// offending path and the kind of failure.
type PathError struct {
	Op   string
	Path string
	Kind ErrorKind
	Err  error
}

// NewPathError creates a PathError. err may be nil.
func NewPathError(op, path string, kind ErrorKind, err error) *PathError {
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

func (e *PathError) Error() string {
	if e.Err == nil || errors.Is(e.Err, e.Kind.Sentinel()) {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func (e *PathError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// KindOf reports the kind of err. Unclassified errors are IO failures.
func KindOf(err error) ErrorKind {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindIOFailure
	}
}
