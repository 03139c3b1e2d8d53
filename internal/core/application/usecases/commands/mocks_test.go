package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"takeaway/internal/core/application/usecases/commands"
	"takeaway/internal/core/domain/model/cart"
	"takeaway/internal/core/domain/model/order"
	"takeaway/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// noopNotifier satisfies the notifier port where the broadcast itself is
// not under test.
type noopNotifier struct{}

func (noopNotifier) Broadcast(context.Context, ports.Notification)      {}
func (noopNotifier) SendTo(context.Context, string, ports.Notification) {}

// restoredOrder builds a persisted-looking aggregate in the given state for
// repository mocks to hand out.
func restoredOrder(id, userID int64, status order.Status, payStatus order.PayStatus) *order.Order {
	dishID := int64(7)
	detail, err := order.NewDetail(&dishID, nil, "Kung Pao Chicken", "", "", 1, 2800)
	if err != nil {
		panic(err)
	}

	aggregate, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:            id,
		Number:        "1700000000000",
		Status:        status,
		PayStatus:     payStatus,
		UserID:        userID,
		AddressBookID: 3,
		Consignee:     "Alice",
		Phone:         "13800000000",
		Address:       "1 Main St",
		Amount:        2800,
		OrderTime:     time.Now().Add(-20 * time.Minute),
		Details:       []order.Detail{detail},
	})
	if err != nil {
		panic(err)
	}
	return aggregate
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateWithStatus(
	ctx context.Context, o *order.Order, expected order.Status,
) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GetByStatusOlderThan(
	ctx context.Context, status order.Status, cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetByUserID(ctx context.Context, userID int64) ([]cart.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Item), args.Error(1)
}

func (m *MockCartRepository) ClearByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Get(ctx context.Context, id int64) (cart.Address, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(cart.Address), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSubmitUoW struct {
	MockOrderUoW
}

func (m *MockSubmitUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockSubmitUoW) AddressRepository() ports.AddressRepository {
	args := m.Called()
	return args.Get(0).(ports.AddressRepository)
}

type MockSubmitUoWFactory struct{ mock.Mock }

func (m *MockSubmitUoWFactory) Create() commands.SubmitUoW {
	args := m.Called()
	return args.Get(0).(commands.SubmitUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Broadcast(ctx context.Context, n ports.Notification) {
	m.Called(ctx, n)
}

func (m *MockNotifier) SendTo(ctx context.Context, connectionID string, n ports.Notification) {
	m.Called(ctx, connectionID, n)
}
