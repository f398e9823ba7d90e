package pharmacistrepo

import (
	"context"
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/pharmacist"
	"mediflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPharmacistRepository implements PharmacistRepository using GORM.
type GormPharmacistRepository struct {
	db *gorm.DB
}

// NewGormPharmacistRepository creates a new GORM pharmacist repository.
func NewGormPharmacistRepository(db *gorm.DB) *GormPharmacistRepository {
	return &GormPharmacistRepository{db: db}
}

// Add saves a new pharmacist to the database.
func (r *GormPharmacistRepository) Add(ctx context.Context, aggregate *pharmacist.Pharmacist) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a pharmacist by ID.
func (r *GormPharmacistRepository) Get(ctx context.Context, id kernel.UUID) (*pharmacist.Pharmacist, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PharmacistDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pharmacist", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByEmail retrieves a pharmacist by login email.
func (r *GormPharmacistRepository) GetByEmail(ctx context.Context, email string) (*pharmacist.Pharmacist, error) {
	var dto PharmacistDTO
	if err := r.db.WithContext(ctx).First(&dto, "lower(email) = lower(?)", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pharmacist", email)
		}
		return nil, err
	}

	return toDomain(dto)
}
