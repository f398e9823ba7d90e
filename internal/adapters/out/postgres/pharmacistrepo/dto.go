// Package pharmacistrepo provides data transfer objects and mapping functions
// for pharmacist persistence.
package pharmacistrepo

import (
	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/pharmacist"

	"github.com/google/uuid"
)

// PharmacistDTO represents the database structure for persisting pharmacists.
type PharmacistDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Active       bool
}

// TableName overrides GORM's default naming convention to use "pharmacists".
func (PharmacistDTO) TableName() string {
	return "pharmacists"
}

func fromDomain(aggregate *pharmacist.Pharmacist) PharmacistDTO {
	return PharmacistDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Email:        aggregate.Email(),
		PasswordHash: aggregate.PasswordHash(),
		Active:       aggregate.Active(),
	}
}

func toDomain(dto PharmacistDTO) (*pharmacist.Pharmacist, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return pharmacist.RestorePharmacist(id, dto.Name, dto.Email, dto.PasswordHash, dto.Active)
}
