package ports

import (
	"context"

	"mediflow/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Role identifies the kind of principal a verified token belongs to.
type Role string

const (
	// RoleCustomer marks a registered customer.
	RoleCustomer Role = "customer"

	// RolePharmacist marks an authenticated pharmacist.
	RolePharmacist Role = "pharmacist"
)

// Principal is the trusted identity the auth collaborator yields for a
// bearer token. The core trusts SubjectID as customer or pharmacist id on
// all operations.
type Principal struct {
	SubjectID kernel.UUID
	Role      Role
	Name      string
	Email     string
}

// AuthProvider is the credential-verification collaborator. Token issuance
// lives behind the same boundary; the core only ever verifies.
type AuthProvider interface {
	// VerifyToken resolves a bearer token to its principal. Returns an
	// errs.UnauthorizedError for missing, unknown, or expired tokens.
	VerifyToken(ctx context.Context, token string) (Principal, error)
}

// Medicine is a catalog entry. Prices are captured onto order items at
// finalization time, so later catalog changes never reprice an order.
type Medicine struct {
	ID                   kernel.UUID
	Name                 string
	Category             string
	Price                decimal.Decimal
	RequiresPrescription bool
}

// Catalog is the read-only medicine lookup collaborator, consulted when the
// claiming pharmacist finalizes the item list.
type Catalog interface {
	// GetMedicine resolves an item id to its catalog entry. Returns an
	// errs.ObjectNotFoundError for unknown ids.
	GetMedicine(ctx context.Context, id kernel.UUID) (Medicine, error)

	// ListMedicines returns the full catalog.
	ListMedicines(ctx context.Context) ([]Medicine, error)

	// ListCategories returns the distinct category names.
	ListCategories(ctx context.Context) ([]string, error)
}

// ArtifactStorage accepts binary prescription artifacts and returns opaque
// references consumed by the prescription gate.
type ArtifactStorage interface {
	Store(ctx context.Context, orderID kernel.UUID, filename string, data []byte) (string, error)
}

// SettlementGateway is the external payment settlement collaborator.
// It is invoked exactly once per successful payment processing call; the
// AlreadyPaid guard runs before any contact with the gateway.
type SettlementGateway interface {
	// Settle charges the given amount for the order. Returns the gateway's
	// transaction reference on success; any error is surfaced to the caller
	// as a retryable ExternalFailureError.
	Settle(ctx context.Context, orderID kernel.UUID, amount decimal.Decimal, method string) (string, error)
}
