// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the codebase.
//
// Two families live here:
//   - Generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ObjectNotFoundError and friends) used by value objects and repositories.
//   - The order lifecycle taxonomy (InvalidStateError, ConflictError,
//     UnauthorizedError, ExternalFailureError plus the AlreadyPaid sentinel)
//     used by the use-case layer to report state-machine violations, lost
//     compare-and-swap races, and collaborator failures.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired, ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where applicable
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is classification
//
// Lost races (ErrConflict) and idempotency guards (ErrAlreadyPaid) are
// ordinary result values of a concurrent system. HTTP handlers map them to
// client-visible statuses; nothing in the core treats them as exceptional
// control flow.
package errs
