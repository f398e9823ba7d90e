package ports

import (
	"context"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/pharmacist"
)

// PharmacistRepository defines the persistence contract for pharmacist
// aggregates. Pharmacists authenticate separately from customers and are
// looked up by email at login time.
type PharmacistRepository interface {
	// Add persists a new pharmacist aggregate. The email must be unique.
	Add(ctx context.Context, aggregate *pharmacist.Pharmacist) error

	// Get retrieves a pharmacist by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pharmacist.Pharmacist, error)

	// GetByEmail retrieves a pharmacist by login email. Returns an
	// errs.ObjectNotFoundError when the email is unknown.
	GetByEmail(ctx context.Context, email string) (*pharmacist.Pharmacist, error)
}
