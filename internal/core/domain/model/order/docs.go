// Package order provides the domain model for pharmacy orders. It implements
// the Order aggregate root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root tracking identity, line items, prescription
//     attachment, pharmacist claim, payment status and lifecycle state
//   - Status: A state machine with a closed transition table
//   - Type: PRESCRIPTION vs OTC routing
//   - PaymentStatus: settlement outcome, independent of lifecycle state
//   - Item: priced line items fixed at consultation finalization
//
// Key business rules:
//   - Prescription orders cannot be queued until a prescription is attached
//   - Exactly one pharmacist ever claims an order; claimedBy is write-once
//   - The item list becomes non-empty and final on entry into Fulfillable
//   - Fulfilled and Cancelled are terminal; orders are never deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
