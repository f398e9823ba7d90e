// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: a validated
// command value object, a handler that orchestrates repositories and
// collaborators, and conditional state transitions through the order
// store's compare-and-swap primitive.
//
// No handler mutates order state directly: every lifecycle transition is a
// conditional swap that either lands atomically or fails with no side
// effect, surfacing as a Conflict the caller can resolve by re-reading.
package commands
