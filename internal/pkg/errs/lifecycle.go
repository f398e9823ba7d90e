package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the order lifecycle taxonomy. Lost compare-and-swap
// races and idempotency guards are ordinary outcomes of concurrent use, not
// crashes; callers are expected to classify them with errors.Is and decide
// whether to re-read and retry.
var (
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("concurrent state change")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAlreadyPaid     = errors.New("order is already paid")
	ErrExternalFailure = errors.New("external collaborator failed")
)

// InvalidStateError indicates an operation that is not valid for the order's
// current lifecycle state, e.g. claiming an order that was never queued.
type InvalidStateError struct {
	Operation string
	Current   string
}

// NewInvalidStateError creates an InvalidStateError for the given operation
// and the state the order was observed in.
func NewInvalidStateError(operation, current string) *InvalidStateError {
	return &InvalidStateError{
		Operation: operation,
		Current:   current,
	}
}

func (e *InvalidStateError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s is not valid in state %s", ErrInvalidState, e.Operation, e.Current))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError indicates a lost compare-and-swap race: the order's state
// changed between the caller's read and its transition attempt. No partial
// mutation has taken place; the caller should re-read and decide whether to
// retry.
type ConflictError struct {
	Operation string
}

// NewConflictError creates a ConflictError for the given operation.
func NewConflictError(operation string) *ConflictError {
	return &ConflictError{Operation: operation}
}

func (e *ConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s lost the transition race, re-read and retry", ErrConflict, e.Operation))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UnauthorizedError indicates missing or invalid credentials, or a role
// mismatch such as a customer attempting a pharmacist-only operation.
type UnauthorizedError struct {
	Reason string
}

// NewUnauthorizedError creates an UnauthorizedError with a human-readable reason.
func NewUnauthorizedError(reason string) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrUnauthorized, e.Reason))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// ExternalFailureError indicates that a collaborator outside the core
// (settlement gateway, artifact storage) failed. The underlying error is
// surfaced verbatim and the condition is retryable.
type ExternalFailureError struct {
	Collaborator string
	Cause        error
}

// NewExternalFailureError creates an ExternalFailureError wrapping the
// collaborator's error.
func NewExternalFailureError(collaborator string, cause error) *ExternalFailureError {
	return &ExternalFailureError{
		Collaborator: collaborator,
		Cause:        cause,
	}
}

func (e *ExternalFailureError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrExternalFailure, e.Collaborator, e.Cause))
}

func (e *ExternalFailureError) Unwrap() error {
	return ErrExternalFailure
}

// Retryable reports whether the caller may retry the failed operation.
// Collaborator failures never leave partial state behind, so they always are.
func (e *ExternalFailureError) Retryable() bool {
	return true
}
