package orderrepo

import (
	"context"
	"errors"
	"time"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// The conditional transitions are single UPDATE statements whose WHERE clause
// carries the expected state. Postgres row locking makes each such statement
// atomic against every other mutator, so no application-level locking or
// transaction is needed for the claim race.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByCustomer retrieves a customer's orders, newest first.
func (r *GormOrderRepository) GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Order("created_at DESC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllInStatus retrieves all orders currently in the given status.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(status)).
		Order("id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// CompareAndSwapState atomically transitions the order's state.
// The expected state rides in the WHERE clause; zero affected rows means the
// swap lost and nothing was written.
func (r *GormOrderRepository) CompareAndSwapState(
	ctx context.Context,
	id kernel.UUID,
	expected, next order.Status,
) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(expected)).
		Updates(map[string]any{
			"status":           int(next),
			"state_changed_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	return false, r.checkExists(ctx, id)
}

// Claim atomically performs Queued -> Claimed and records the claimant.
// Both conditions and both writes live in one UPDATE, so at most one of any
// number of concurrent callers gets an affected row.
func (r *GormOrderRepository) Claim(ctx context.Context, id kernel.UUID, pharmacistID kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND claimed_by IS NULL", id.Bytes(), int(order.Queued)).
		Updates(map[string]any{
			"status":           int(order.Claimed),
			"claimed_by":       pharmacistID.Bytes(),
			"state_changed_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	return false, r.checkExists(ctx, id)
}

// SavePrescription records the artifact reference and sets the attached flag.
func (r *GormOrderRepository) SavePrescription(ctx context.Context, id kernel.UUID, artifactRef string) error {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"prescription_attached": true,
			"prescription_ref":      artifactRef,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// SaveItems replaces the order's line item list.
func (r *GormOrderRepository) SaveItems(ctx context.Context, id kernel.UUID, items []order.Item) error {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Update("items", itemsFromDomain(items))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// SavePaymentStatus records the settlement outcome.
func (r *GormOrderRepository) SavePaymentStatus(ctx context.Context, id kernel.UUID, status order.PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Update("payment_status", int(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// checkExists distinguishes a lost conditional write from an unknown id.
func (r *GormOrderRepository) checkExists(ctx context.Context, id kernel.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
