package orbital

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeStep indicates a time step that is not a positive finite number.
	ErrInvalidTimeStep = errors.New("orbital: time step must be positive and finite")

	// ErrInvalidFieldSize indicates a negative number of field bodies.
	ErrInvalidFieldSize = errors.New("orbital: field body count must not be negative")

	// ErrNoAnchor indicates field bodies were requested without a catalog to orbit.
	ErrNoAnchor = errors.New("orbital: field bodies need at least one catalog body")

	// ErrUnknownMode indicates a force model outside {Gravity, Springs}.
	ErrUnknownMode = errors.New("orbital: unknown force model")

	// ErrClosed indicates use of a simulation after Close.
	ErrClosed = errors.New("orbital: simulation closed")

	// ErrInvalidState indicates a NaN or Inf in a body's position or velocity.
	ErrInvalidState = errors.New("orbital: invalid state (NaN or Inf detected)")
)

// StepError wraps an error with the simulation context it was found in.
type StepError struct {
	Step    int
	Time    float64
	Body    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.0fs) body %d: %v", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
