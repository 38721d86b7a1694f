package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidArgument is returned when an argument is invalid (e.g. non-positive width, malformed box).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a requested ID does not resolve to a live widget.
	ErrNotFound = errors.New("not found")
)

// ArgumentError describes which argument was rejected.
// It matches ErrInvalidArgument with errors.Is.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidArgument, e.Field, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

func invalid(field, reason string) error {
	return &ArgumentError{Field: field, Reason: reason}
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("%w: widget %s", ErrNotFound, id)
}
