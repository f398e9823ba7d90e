package order

import (
	"fmt"

	"mediflow/internal/pkg/errs"
)

// PaymentStatus tracks the settlement outcome for an order, independently of
// the lifecycle status: a failed settlement leaves the order Fulfillable and
// retryable.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentUnpaid is the initial payment status of every order.
	PaymentUnpaid

	// PaymentPaid indicates the settlement collaborator confirmed the charge.
	PaymentPaid

	// PaymentFailed indicates the most recent settlement attempt failed.
	// The order stays payable; a later attempt may still succeed.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnpaid: "UNPAID",
		PaymentPaid:   "PAID",
		PaymentFailed: "FAILED",
	}
}

// Validate checks if the PaymentStatus value is a member of the closed enum.
func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the wire representation of the payment status.
// It implements fmt.Stringer.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
