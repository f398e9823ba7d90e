package order

import (
	"errors"
	"fmt"
	"time"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method or RestoreOrder. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyClaimed is returned when a claim is attempted on an order that
	// already carries a claiming pharmacist. At-most-one-claim is the central
	// invariant of the queue engine; this error is an expected outcome of
	// concurrent claim attempts, not a fault.
	ErrAlreadyClaimed = errors.New("order is already claimed by another pharmacist")

	// ErrNotClaimant is returned when a pharmacist other than the claimant
	// attempts a claimant-only operation such as starting the consultation.
	ErrNotClaimant = errors.New("caller is not the claiming pharmacist")

	// ErrItemsRequired is returned when finalization is attempted with an
	// empty item list. Entry into Fulfillable requires a non-empty, priced
	// item list.
	ErrItemsRequired = errors.New("finalized item list must not be empty")
)

// Order represents a pharmacy order in the system. It is the aggregate root
// that tracks the order from creation through prescription attachment,
// pharmacist claim and consultation, payment, and fulfillment.
//
// Order maintains these invariants:
//   - Must have valid unique identifiers for the order and the owning customer
//   - Status transitions follow the closed table in Status
//   - claimedBy is set exactly once, by the winning claim, and never overwritten
//   - prescriptionAttached is monotonic: once true, it stays true
//   - A PAID payment status is only consistent with Fulfillable-or-later states
//
// The aggregate validates every transition in memory; the durable transition
// itself is applied through the store's compare-and-swap primitive, so a
// concurrent writer can never make two conflicting transitions stick.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the owning customer (lookup only)
	customerID kernel.UUID

	// orderType routes the order through or around the prescription gate
	orderType Type

	// items is the ordered line item list; empty until finalization for
	// prescription orders
	items []Item

	// status is the current lifecycle state
	status Status

	// prescriptionAttached records that a prescription artifact exists;
	// it never reverts to false
	prescriptionAttached bool

	// prescriptionRef is the opaque storage reference of the latest artifact
	prescriptionRef string

	// claimedBy is the claiming pharmacist's ID (nil while unclaimed)
	claimedBy *kernel.UUID

	// paymentStatus tracks the settlement outcome
	paymentStatus PaymentStatus

	// createdAt and stateChangedAt support auditing and timeout policies
	createdAt      time.Time
	stateChangedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order with validation. This is the only way to
// create a valid fresh Order; persistence reconstructs via RestoreOrder.
//
// The order starts in Created status with an UNPAID payment status, no
// claimant, and no prescription attached. Routing by type (into
// AwaitingPrescription, Queued, or Fulfillable) is the lifecycle
// controller's job, applied through the store's compare-and-swap.
func NewOrder(id, customerID kernel.UUID, orderType Type) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:         Created,
		paymentStatus:  PaymentUnpaid,
		createdAt:      now,
		stateChangedAt: now,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setType(orderType),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, validating the
// cross-field consistency rules (claimant presence vs. status, payment
// status vs. status) so that corrupt rows are rejected at the boundary.
func RestoreOrder(
	id, customerID kernel.UUID,
	orderType Type,
	items []Item,
	status Status,
	prescriptionAttached bool,
	prescriptionRef string,
	claimedBy *kernel.UUID,
	paymentStatus PaymentStatus,
	createdAt, stateChangedAt time.Time,
) (*Order, error) {
	o := &Order{
		items:                append([]Item(nil), items...),
		prescriptionAttached: prescriptionAttached,
		prescriptionRef:      prescriptionRef,
		createdAt:            createdAt,
		stateChangedAt:       stateChangedAt,
		isConstructed:        true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setType(orderType),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := paymentStatus.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveClaimant(claimedBy != nil); err != nil {
		return nil, err
	}
	if paymentStatus == PaymentPaid && !statusReachedFulfillable(status) {
		return nil, errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("PAID is not consistent with state %s", status))
	}
	if claimedBy != nil {
		if err := claimedBy.Validate(); err != nil {
			return nil, err
		}
		claimant := *claimedBy
		o.claimedBy = &claimant
	}

	o.status = status
	o.paymentStatus = paymentStatus
	return o, nil
}

// statusReachedFulfillable reports whether the status is consistent with a
// completed payment. Cancelled is included: an order may be cancelled after
// payment and keeps its payment status for audit.
func statusReachedFulfillable(s Status) bool {
	switch s {
	case Fulfillable, Paid, Fulfilled, Cancelled:
		return true
	default:
		return false
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Type returns the order type.
func (o *Order) Type() Type {
	return o.orderType
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PrescriptionAttached reports whether a prescription artifact has been
// attached. Monotonic: once true, always true.
func (o *Order) PrescriptionAttached() bool {
	return o.prescriptionAttached
}

// PrescriptionRef returns the opaque storage reference of the latest
// attached artifact, or the empty string when none is attached.
func (o *Order) PrescriptionRef() string {
	return o.prescriptionRef
}

// ClaimedBy returns the claiming pharmacist's ID, or nil while unclaimed.
func (o *Order) ClaimedBy() *kernel.UUID {
	if o.claimedBy == nil {
		return nil
	}
	claimant := *o.claimedBy
	return &claimant
}

// PaymentStatus returns the settlement outcome tracker.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StateChangedAt returns the timestamp of the last status transition.
func (o *Order) StateChangedAt() time.Time {
	return o.stateChangedAt
}

// Amount returns the settlement amount: the sum of all line item totals.
func (o *Order) Amount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Total())
	}
	return total
}

// AwaitPrescription routes a freshly created prescription order to the
// prescription gate.
//
// Business rules:
//   - Only prescription orders pass through the gate
//   - The order must be in Created status
func (o *Order) AwaitPrescription() error {
	if o.orderType != TypePrescription {
		return errs.NewInvalidStateError("await prescription", o.orderType.String())
	}
	return o.transition(AwaitingPrescription)
}

// AttachPrescription records the prescription artifact reference and marks
// the order as having a prescription.
//
// Idempotent on the artifact reference: attaching again overwrites the
// reference but the attached flag never reverts. Valid while the order is
// Created, AwaitingPrescription, or already Queued (overwrite only).
func (o *Order) AttachPrescription(artifactRef string) error {
	if artifactRef == "" {
		return errs.NewValueIsRequiredError("artifactRef")
	}
	if o.orderType != TypePrescription {
		return errs.NewInvalidStateError("attach prescription", o.orderType.String())
	}
	switch o.status {
	case Created, AwaitingPrescription, Queued:
		o.prescriptionAttached = true
		o.prescriptionRef = artifactRef
		return nil
	default:
		return errs.NewInvalidStateError("attach prescription", o.status.String())
	}
}

// Enqueue moves the order into the shared pharmacist queue.
//
// Business rules:
//   - Prescription orders require an attached prescription
//   - Valid from Created (OTC review path) and AwaitingPrescription
func (o *Order) Enqueue() error {
	if o.orderType == TypePrescription && !o.prescriptionAttached {
		return errs.NewInvalidStateError("enqueue without prescription", o.status.String())
	}
	return o.transition(Queued)
}

// SkipReview moves an OTC order that needs no pharmacist review straight to
// Fulfillable.
func (o *Order) SkipReview() error {
	if o.orderType != TypeOTC {
		return errs.NewInvalidStateError("skip review", o.orderType.String())
	}
	if o.status != Created {
		return errs.NewInvalidStateError("skip review", o.status.String())
	}
	return o.transition(Fulfillable)
}

// Claim assigns the order to a pharmacist and moves it to Claimed.
//
// claimedBy is set exactly once: a second claim attempt returns
// ErrAlreadyClaimed even if the status were somehow still Queued. The
// durable equivalent of this method is the store's conditional claim;
// this in-memory form backs it and the domain tests.
func (o *Order) Claim(pharmacistID kernel.UUID) error {
	if err := pharmacistID.Validate(); err != nil {
		return err
	}
	if o.claimedBy != nil {
		return ErrAlreadyClaimed
	}
	if err := o.transition(Claimed); err != nil {
		return err
	}
	o.claimedBy = &pharmacistID
	return nil
}

// StartConsultation moves a claimed order into live consultation.
// Only the claiming pharmacist may start it.
func (o *Order) StartConsultation(pharmacistID kernel.UUID) error {
	if err := pharmacistID.Validate(); err != nil {
		return err
	}
	if o.claimedBy == nil || !o.claimedBy.IsEqual(pharmacistID) {
		return ErrNotClaimant
	}
	return o.transition(InConsultation)
}

// Finalize fixes the item list and pricing agreed during consultation and
// moves the order to Fulfillable. The list must be non-empty and is final
// from this point on. Only the claiming pharmacist may finalize.
func (o *Order) Finalize(pharmacistID kernel.UUID, items []Item) error {
	if err := pharmacistID.Validate(); err != nil {
		return err
	}
	if o.claimedBy == nil || !o.claimedBy.IsEqual(pharmacistID) {
		return ErrNotClaimant
	}
	if len(items) == 0 {
		return ErrItemsRequired
	}
	if err := o.transition(Fulfillable); err != nil {
		return err
	}
	o.items = append([]Item(nil), items...)
	return nil
}

// MarkPaid records a successful settlement and moves the order to Paid.
func (o *Order) MarkPaid() error {
	if err := o.transition(Paid); err != nil {
		return err
	}
	o.paymentStatus = PaymentPaid
	return nil
}

// MarkPaymentFailed records a failed settlement attempt. The lifecycle
// status does not change: the order remains Fulfillable and retryable.
func (o *Order) MarkPaymentFailed() error {
	if o.status != Fulfillable {
		return errs.NewInvalidStateError("mark payment failed", o.status.String())
	}
	o.paymentStatus = PaymentFailed
	return nil
}

// Fulfill records the fulfillment confirmation from the dispatch
// collaborator and moves the order to its terminal Fulfilled state.
func (o *Order) Fulfill() error {
	return o.transition(Fulfilled)
}

// Cancel moves the order to Cancelled from any non-terminal state.
// Once cancelled, every further transition attempt fails.
func (o *Order) Cancel() error {
	return o.transition(Cancelled)
}

// transition applies a validated status change and stamps stateChangedAt.
func (o *Order) transition(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.stateChangedAt = time.Now().UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}
