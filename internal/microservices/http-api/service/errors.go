package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Every error a service returns to a handler either wraps one
// of these or is an unexpected failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error carries a client-facing message next to its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error { return newError(ErrNotFound, format, args...) }
func conflict(format string, args ...any) error { return newError(ErrConflict, format, args...) }
func invalid(format string, args ...any) error { return newError(ErrValidation, format, args...) }
func forbidden(format string, args ...any) error { return newError(ErrForbidden, format, args...) }
func unauthorized() error { return newError(ErrUnauthorized, "authentication required") }

// invalidErr wraps a validation error built elsewhere, e.g. by the model.
func invalidErr(err error) error {
	return &Error{Kind: ErrValidation, Msg: err.Error()}
}

// lookupErr turns a record-not-found from a repository into NotFound and
// passes anything else through.
func lookupErr(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("%s %v not found", what, id)
	}
	return fmt.Errorf("load %s %v: %w", what, id, err)
}
