package predict

import (
	"errors"
	"fmt"
)

// DefaultFailureMessage is used when the service reports failure without text.
const DefaultFailureMessage = "Prediction failed"

// EmptyInputError is returned when the drawing is blank and no upload exists.
type EmptyInputError struct{}

func (*EmptyInputError) Error() string { return "nothing to classify: drawing is blank" }

// ErrEmptyInput is the shared EmptyInputError value.
var ErrEmptyInput error = &EmptyInputError{}

// ErrBusy rejects a submission while another one is in flight.
var ErrBusy = errors.New("a prediction is already in progress")

// TransportError is a non-2xx HTTP response.
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// ApplicationError is a 2xx response whose payload reports failure.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return DefaultFailureMessage
	}
	return e.Message
}

// UnexpectedFault covers network failures, malformed bodies and panics.
type UnexpectedFault struct {
	Err error
}

func (e *UnexpectedFault) Error() string {
	if e.Err == nil {
		return "unexpected failure"
	}
	return e.Err.Error()
}

func (e *UnexpectedFault) Unwrap() error { return e.Err }
