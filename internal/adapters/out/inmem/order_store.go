// Package inmem provides process-local implementations of the outbound
// ports. The order store is the reference implementation of the conditional
// transition semantics: a single mutex per store makes every conditional
// write atomic, and every read returns an isolated snapshot.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/pkg/errs"
)

// orderRecord is the stored form of an order. Plain fields, no aggregate
// pointers, so callers can never mutate the store through a returned value.
type orderRecord struct {
	customerID           kernel.UUID
	orderType            order.Type
	items                []order.Item
	status               order.Status
	prescriptionAttached bool
	prescriptionRef      string
	claimedBy            *kernel.UUID
	paymentStatus        order.PaymentStatus
	createdAt            time.Time
	stateChangedAt       time.Time
}

// OrderStore is an in-memory OrderRepository.
type OrderStore struct {
	mu      sync.RWMutex
	records map[kernel.UUID]*orderRecord
}

// NewOrderStore creates an empty in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		records: make(map[kernel.UUID]*orderRecord),
	}
}

// Add persists a new order aggregate.
func (s *OrderStore) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[aggregate.ID()]; exists {
		return errs.NewValueIsInvalidError("order already exists")
	}

	s.records[aggregate.ID()] = recordFromAggregate(aggregate)
	return nil
}

// Get retrieves an isolated snapshot of an order.
func (s *OrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return record.toAggregate(id)
}

// GetAllByCustomer retrieves a customer's orders, newest first.
func (s *OrderStore) GetAllByCustomer(_ context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*order.Order, 0)
	for id, record := range s.records {
		if record.customerID != customerID {
			continue
		}
		aggregate, err := record.toAggregate(id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt().Equal(orders[j].CreatedAt()) {
			return orders[i].ID().String() < orders[j].ID().String()
		}
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})

	return orders, nil
}

// GetAllInStatus retrieves all orders currently in the given status.
func (s *OrderStore) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*order.Order, 0)
	for id, record := range s.records {
		if record.status != status {
			continue
		}
		aggregate, err := record.toAggregate(id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID().String() < orders[j].ID().String()
	})

	return orders, nil
}

// CompareAndSwapState atomically transitions the order's state.
func (s *OrderStore) CompareAndSwapState(
	_ context.Context,
	id kernel.UUID,
	expected, next order.Status,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[id]
	if !exists {
		return false, errs.NewObjectNotFoundError("order", id.String())
	}
	if record.status != expected {
		return false, nil
	}

	record.status = next
	record.stateChangedAt = time.Now().UTC()
	return true, nil
}

// Claim atomically performs Queued -> Claimed and records the claimant.
// At most one concurrent caller observes true for any given order.
func (s *OrderStore) Claim(_ context.Context, id kernel.UUID, pharmacistID kernel.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[id]
	if !exists {
		return false, errs.NewObjectNotFoundError("order", id.String())
	}
	if record.status != order.Queued || record.claimedBy != nil {
		return false, nil
	}

	claimant := pharmacistID
	record.claimedBy = &claimant
	record.status = order.Claimed
	record.stateChangedAt = time.Now().UTC()
	return true, nil
}

// SavePrescription records the artifact reference and the attached flag.
func (s *OrderStore) SavePrescription(_ context.Context, id kernel.UUID, artifactRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[id]
	if !exists {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	record.prescriptionAttached = true
	record.prescriptionRef = artifactRef
	return nil
}

// SaveItems replaces the order's line item list.
func (s *OrderStore) SaveItems(_ context.Context, id kernel.UUID, items []order.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[id]
	if !exists {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	record.items = append([]order.Item(nil), items...)
	return nil
}

// SavePaymentStatus records the settlement outcome.
func (s *OrderStore) SavePaymentStatus(_ context.Context, id kernel.UUID, status order.PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[id]
	if !exists {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	record.paymentStatus = status
	return nil
}

func recordFromAggregate(aggregate *order.Order) *orderRecord {
	var claimedBy *kernel.UUID
	if id := aggregate.ClaimedBy(); id != nil {
		claimant := *id
		claimedBy = &claimant
	}

	return &orderRecord{
		customerID:           aggregate.CustomerID(),
		orderType:            aggregate.Type(),
		items:                append([]order.Item(nil), aggregate.Items()...),
		status:               aggregate.Status(),
		prescriptionAttached: aggregate.PrescriptionAttached(),
		prescriptionRef:      aggregate.PrescriptionRef(),
		claimedBy:            claimedBy,
		paymentStatus:        aggregate.PaymentStatus(),
		createdAt:            aggregate.CreatedAt(),
		stateChangedAt:       aggregate.StateChangedAt(),
	}
}

func (r *orderRecord) toAggregate(id kernel.UUID) (*order.Order, error) {
	var claimedBy *kernel.UUID
	if r.claimedBy != nil {
		claimant := *r.claimedBy
		claimedBy = &claimant
	}

	return order.RestoreOrder(
		id,
		r.customerID,
		r.orderType,
		append([]order.Item(nil), r.items...),
		r.status,
		r.prescriptionAttached,
		r.prescriptionRef,
		claimedBy,
		r.paymentStatus,
		r.createdAt,
		r.stateChangedAt,
	)
}
