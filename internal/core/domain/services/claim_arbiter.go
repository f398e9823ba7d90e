package services

import (
	"mediflow/internal/core/domain/model/order"
)

// ClaimResult is the outcome of a pharmacist's attempt to claim a queued
// order. Losing a claim race is an ordinary, designed-for outcome: results
// are plain values, never errors.
type ClaimResult int

const (
	// ClaimResultUnknown represents an undefined result value.
	ClaimResultUnknown ClaimResult = iota

	// ClaimResultClaimed means this caller won the claim: the order moved
	// Queued -> Claimed and claimedBy was set to the caller.
	ClaimResultClaimed

	// ClaimResultAlreadyClaimed means another pharmacist holds the claim.
	ClaimResultAlreadyClaimed

	// ClaimResultNotQueued means the order is not eligible for claiming:
	// it was never queued, or its lifecycle has moved past the queue without
	// a claim (e.g. cancelled while waiting).
	ClaimResultNotQueued
)

// String returns the human-readable name of the result.
func (r ClaimResult) String() string {
	switch r {
	case ClaimResultClaimed:
		return "Claimed"
	case ClaimResultAlreadyClaimed:
		return "AlreadyClaimed"
	case ClaimResultNotQueued:
		return "NotQueued"
	default:
		return "Unknown"
	}
}

// ClaimArbiter resolves claim races over a single order.
//
// The winning path is decided by the store's atomic conditional transition
// (Queued -> Claimed with claimedBy unset); the arbiter's job is to classify
// every losing path from a fresh read of the order. Exactly one caller ever
// observes ClaimResultClaimed for a given order, no matter how many claim
// attempts race.
type ClaimArbiter struct{}

// NewClaimArbiter creates a new ClaimArbiter instance.
func NewClaimArbiter() ClaimArbiter {
	return ClaimArbiter{}
}

// ClassifyLoss maps an order snapshot, re-read after a failed conditional
// claim, to the result the losing caller should receive.
//
// Classification:
//   - claimedBy set (any status from Claimed onward, or a cancelled order
//     that had been claimed) -> AlreadyClaimed
//   - otherwise (never queued, still awaiting prescription, cancelled before
//     any claim) -> NotQueued
//
// A snapshot still showing Queued means the winner's transition landed after
// this read; the caller lost the race all the same, so it is reported as
// AlreadyClaimed.
func (ClaimArbiter) ClassifyLoss(o *order.Order) ClaimResult {
	if o.ClaimedBy() != nil {
		return ClaimResultAlreadyClaimed
	}
	if o.Status() == order.Queued {
		return ClaimResultAlreadyClaimed
	}
	return ClaimResultNotQueued
}
