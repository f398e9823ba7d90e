package commands_test

import (
	"context"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CompareAndSwapState(
	ctx context.Context,
	id kernel.UUID,
	expected, next order.Status,
) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, id kernel.UUID, pharmacistID kernel.UUID) (bool, error) {
	args := m.Called(ctx, id, pharmacistID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SavePrescription(ctx context.Context, id kernel.UUID, artifactRef string) error {
	args := m.Called(ctx, id, artifactRef)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveItems(ctx context.Context, id kernel.UUID, items []order.Item) error {
	args := m.Called(ctx, id, items)
	return args.Error(0)
}

func (m *MockOrderRepository) SavePaymentStatus(ctx context.Context, id kernel.UUID, status order.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockQueue struct{ mock.Mock }

func (m *MockQueue) Enqueue(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockQueue) ListPending(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockQueue) Remove(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetMedicine(ctx context.Context, id kernel.UUID) (ports.Medicine, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Medicine), args.Error(1)
}

func (m *MockCatalog) ListMedicines(ctx context.Context) ([]ports.Medicine, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ports.Medicine), args.Error(1)
}

func (m *MockCatalog) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type MockArtifactStorage struct{ mock.Mock }

func (m *MockArtifactStorage) Store(
	ctx context.Context,
	orderID kernel.UUID,
	filename string,
	data []byte,
) (string, error) {
	args := m.Called(ctx, orderID, filename, data)
	return args.String(0), args.Error(1)
}

type MockSettlementGateway struct{ mock.Mock }

func (m *MockSettlementGateway) Settle(
	ctx context.Context,
	orderID kernel.UUID,
	amount decimal.Decimal,
	method string,
) (string, error) {
	args := m.Called(ctx, orderID, amount, method)
	return args.String(0), args.Error(1)
}
