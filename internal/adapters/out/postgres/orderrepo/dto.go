// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, including the conditional state transitions that make the
// database the arbiter of the claim race.
package orderrepo

import (
	"time"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items travel inside the row as a JSON column: items are only ever
// replaced wholesale, never queried individually.
type OrderDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID           uuid.UUID  `gorm:"type:uuid;index"`
	OrderType            int        `gorm:"column:order_type"`
	Status               int        `gorm:"index"`
	PrescriptionAttached bool       `gorm:"column:prescription_attached"`
	PrescriptionRef      string     `gorm:"column:prescription_ref"`
	ClaimedBy            *uuid.UUID `gorm:"type:uuid;index"`
	PaymentStatus        int        `gorm:"column:payment_status"`
	Items                []ItemDTO  `gorm:"serializer:json;type:jsonb"`
	CreatedAt            time.Time
	StateChangedAt       time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one line item inside the JSON items column.
type ItemDTO struct {
	MedicineID uuid.UUID       `json:"medicine_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var claimedBy *uuid.UUID
	if id := aggregate.ClaimedBy(); id != nil {
		raw := id.Bytes()
		claimedBy = &raw
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		CustomerID:           aggregate.CustomerID().Bytes(),
		OrderType:            int(aggregate.Type()),
		Status:               int(aggregate.Status()),
		PrescriptionAttached: aggregate.PrescriptionAttached(),
		PrescriptionRef:      aggregate.PrescriptionRef(),
		ClaimedBy:            claimedBy,
		PaymentStatus:        int(aggregate.PaymentStatus()),
		Items:                itemsFromDomain(aggregate.Items()),
		CreatedAt:            aggregate.CreatedAt(),
		StateChangedAt:       aggregate.StateChangedAt(),
	}
}

// toDomain converts a database row to an order aggregate using RestoreOrder,
// which re-validates the cross-field consistency rules.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var claimedBy *kernel.UUID
	if dto.ClaimedBy != nil {
		claimant, claimErr := kernel.UUIDFromBytes((*dto.ClaimedBy)[:])
		if claimErr != nil {
			return nil, claimErr
		}
		claimedBy = &claimant
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		order.Type(dto.OrderType),
		items,
		order.Status(dto.Status),
		dto.PrescriptionAttached,
		dto.PrescriptionRef,
		claimedBy,
		order.PaymentStatus(dto.PaymentStatus),
		dto.CreatedAt,
		dto.StateChangedAt,
	)
}

func itemsFromDomain(items []order.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{
			MedicineID: item.MedicineID().Bytes(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}
	return dtos
}

func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		medicineID, err := kernel.UUIDFromBytes(dto.MedicineID[:])
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(medicineID, dto.Quantity, dto.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
