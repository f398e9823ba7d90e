package commands

import (
	"mediflow/internal/core/ports"
)

// RoutingPolicy controls where freshly created OTC orders go. The observed
// surface does not pin this down, so it is configuration rather than a
// hard-coded rule.
type RoutingPolicy struct {
	// OTCRequiresReview routes OTC orders through the pharmacist queue when
	// true; when false they go straight to Fulfillable.
	OTCRequiresReview bool
}

// CancellationPolicy controls which roles may cancel an order. Like OTC
// routing, the observed surface leaves this open, so it is configurable.
type CancellationPolicy struct {
	Customer   bool
	Pharmacist bool
}

// Allows reports whether the given role may cancel orders under this policy.
func (p CancellationPolicy) Allows(role ports.Role) bool {
	switch role {
	case ports.RoleCustomer:
		return p.Customer
	case ports.RolePharmacist:
		return p.Pharmacist
	default:
		return false
	}
}
