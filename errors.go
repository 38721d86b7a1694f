package widgetstore

import (
	"errors"
	"fmt"

	"github.com/hupe1980/widgetstore/internal/engine"
)

var (
	// ErrNotFound is returned when an id does not resolve to a live widget.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned when a request or query is malformed.
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidArgumentError names the rejected argument.
//
// It matches ErrInvalidArgument with errors.Is. The underlying engine error
// (if any) can be accessed via errors.Unwrap.
type InvalidArgumentError struct {
	Field  string
	Reason string
	cause  error
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s %s", e.Field, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return e.cause }

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func invalidArgument(field, reason string) error {
	return &InvalidArgumentError{Field: field, Reason: reason}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, engine.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var ae *engine.ArgumentError
	if errors.As(err, &ae) {
		return &InvalidArgumentError{Field: ae.Field, Reason: ae.Reason, cause: err}
	}
	if errors.Is(err, engine.ErrInvalidArgument) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
