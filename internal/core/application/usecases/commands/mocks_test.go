package commands_test

import (
	"context"

	"station/internal/core/application/usecases/commands"
	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/model/order"
	"station/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) ListIDsByStatus(ctx context.Context, status order.Status) ([]kernel.UUID, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockOrderRepository) AppendLocationUpdate(ctx context.Context, id kernel.UUID, u order.LocationUpdate) error {
	args := m.Called(ctx, id, u)
	return args.Error(0)
}

func (m *MockOrderRepository) AppendJourneyInfo(ctx context.Context, id kernel.UUID, e order.JourneyInfo) error {
	args := m.Called(ctx, id, e)
	return args.Error(0)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *fleet.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *fleet.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*fleet.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Driver), args.Error(1)
}

type MockTruckRepository struct{ mock.Mock }

func (m *MockTruckRepository) Add(ctx context.Context, t *fleet.Truck) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTruckRepository) Update(ctx context.Context, t *fleet.Truck) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTruckRepository) Get(ctx context.Context, id kernel.UUID) (*fleet.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Truck), args.Error(1)
}

// MockUoW implements every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) TruckRepository() ports.TruckRepository {
	args := m.Called()
	return args.Get(0).(ports.TruckRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockTruckUoWFactory struct{ mock.Mock }

func (m *MockTruckUoWFactory) Create() commands.TruckUoW {
	args := m.Called()
	return args.Get(0).(commands.TruckUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockTelemetryPublisher struct{ mock.Mock }

func (m *MockTelemetryPublisher) PublishLocation(ctx context.Context, s ports.LocationSample) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockTransitWaker struct{ mock.Mock }

func (m *MockTransitWaker) Wake() {
	m.Called()
}

// notification matches a notification by kind and event.
func notification(kind ports.NotificationKind, event string) any {
	return mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == kind && n.Event == event
	})
}
