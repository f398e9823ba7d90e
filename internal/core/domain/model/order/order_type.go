package order

import (
	"fmt"

	"mediflow/internal/pkg/errs"
)

// Type distinguishes how an order enters the lifecycle.
// Prescription orders must have a prescription artifact attached before they
// become eligible for the pharmacist queue; over-the-counter orders skip the
// prescription gate entirely.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// TypePrescription marks an order that requires a prescription artifact
	// and pharmacist review.
	TypePrescription

	// TypeOTC marks an over-the-counter order with no prescription required.
	TypeOTC
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypePrescription: "PRESCRIPTION",
		TypeOTC:          "OTC",
	}
}

// TypeFromString parses the wire representation of an order type
// ("PRESCRIPTION" or "OTC").
func TypeFromString(s string) (Type, error) {
	for t, str := range getTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("order type is invalid",
		fmt.Errorf("%q is not a valid order type", s))
}

// Validate checks if the Type value is a member of the closed enum.
func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order type is invalid",
			fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the wire representation of the order type.
// It implements fmt.Stringer.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
