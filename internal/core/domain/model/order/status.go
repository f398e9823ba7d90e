package order

import (
	"fmt"

	"mediflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit transition table so that
// illegal transitions are rejected centrally rather than ad hoc at call sites.
//
// State transitions:
//
//	Created ──> AwaitingPrescription ──> Queued ──> Claimed ──> InConsultation ──> Fulfillable ──> Paid ──> Fulfilled
//	   │                                   ▲                                            ▲
//	   ├───────────────────────────────────┘  (OTC orders that need pharmacist review)  │
//	   └────────────────────────────────────────────────────────────────────────────────┘  (OTC orders that do not)
//
// Cancelled is reachable from every non-terminal state. Fulfilled and
// Cancelled are terminal: no transition leaves them.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status assigned at order creation, before the
	// order has been routed by type.
	Created

	// AwaitingPrescription indicates a prescription order waiting for its
	// prescription artifact to be attached.
	AwaitingPrescription

	// Queued indicates the order is in the shared pharmacist queue and is
	// eligible to be claimed.
	Queued

	// Claimed indicates exactly one pharmacist has taken ownership of the
	// order for consultation.
	Claimed

	// InConsultation indicates the claiming pharmacist has started the live
	// consultation.
	InConsultation

	// Fulfillable indicates the consultation finished and the item list is
	// final; the order is payable.
	Fulfillable

	// Paid indicates the settlement collaborator confirmed payment.
	Paid

	// Fulfilled indicates dispatch/delivery confirmed completion.
	// This is a terminal state.
	Fulfilled

	// Cancelled indicates the order was cancelled before fulfillment.
	// This is a terminal state; no further transitions are accepted.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "Unknown",
		Created:              "Created",
		AwaitingPrescription: "AwaitingPrescription",
		Queued:               "Queued",
		Claimed:              "Claimed",
		InConsultation:       "InConsultation",
		Fulfillable:          "Fulfillable",
		Paid:                 "Paid",
		Fulfilled:            "Fulfilled",
		Cancelled:            "Cancelled",
	}
}

// getTransitions returns the closed transition table of the state machine.
// A status maps to the set of statuses it may move to. Terminal statuses map
// to the empty set.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:              {AwaitingPrescription, Queued, Fulfillable, Cancelled},
		AwaitingPrescription: {Queued, Cancelled},
		Queued:               {Claimed, Cancelled},
		Claimed:              {InConsultation, Cancelled},
		InConsultation:       {Fulfillable, Cancelled},
		Fulfillable:          {Paid, Cancelled},
		Paid:                 {Fulfilled, Cancelled},
		Fulfilled:            {},
		Cancelled:            {},
	}
}

// Validate checks if the Status value is a member of the closed enum.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any Status value,
// including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
// Terminal orders are retained for audit but every compare-and-swap attempt
// against them fails.
func (s Status) IsTerminal() bool {
	return s == Fulfilled || s == Cancelled
}

// CanTransitionTo reports whether the state machine permits moving from the
// current status to next. Both statuses must be valid enum members.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition, returning the new status.
//
// Returns:
//   - (next, nil) when the transition table permits current -> next
//   - (0, InvalidStateError) otherwise
//
// This is the single place transition legality is decided; aggregate methods
// and the compare-and-swap callers all go through it.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(next) {
		return 0, errs.NewInvalidStateError(fmt.Sprintf("transition to %s", next), s.String())
	}
	return next, nil
}

// IsClaimedOrLater reports whether the status sits at or past the Claimed
// stage of the lifecycle. Used to enforce that claimed_by is set exactly for
// such orders.
func (s Status) IsClaimedOrLater() bool {
	switch s {
	case Claimed, InConsultation, Fulfillable, Paid, Fulfilled:
		return true
	default:
		return false
	}
}

// ValidateCanHaveClaimant validates the consistency between order status and
// pharmacist assignment.
//
// Business Rules:
//   - Statuses before Claimed must not have a claiming pharmacist
//   - Claimed and later statuses must have one
//   - Cancelled orders may carry either (a claim survives cancellation for audit)
func (s Status) ValidateCanHaveClaimant(claimed bool) error {
	if s == Cancelled {
		return nil
	}
	if claimed && !s.IsClaimedOrLater() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a claimant", s.String()),
		)
	}
	if !claimed && s.IsClaimedOrLater() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no claimant", s.String()),
		)
	}
	return nil
}
