package commands_test

import (
	"log/slog"
	"testing"

	"takeaway/internal/core/application/usecases/commands"
	"takeaway/internal/core/domain/model/order"
	"takeaway/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPayOrderCommandHandler_Handle_Success_BroadcastsAfterCommit(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPayOrderCommand(101, 42)
	require.NoError(t, err)

	pending := restoredOrder(101, 42, order.PendingPayment, order.Unpaid)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(101)).Return(pending, nil).Once(),
		repo.On("UpdateWithStatus", mock.Anything, pending, order.PendingPayment).
			Return(true, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("Broadcast", mock.Anything, mock.AnythingOfType("ports.Notification")).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayOrderCommandHandler(factory, notifier, slog.Default())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.ToBeConfirmed, pending.Status())
	assert.Equal(t, order.Paid, pending.PayStatus())
	assert.NotNil(t, pending.CheckoutTime())

	// Exactly one broadcast, carrying the order-arrived shape.
	notifier.AssertNumberOfCalls(t, "Broadcast", 1)
	sent := notifier.Calls[0].Arguments.Get(1).(ports.Notification)
	assert.Equal(t, ports.NotificationTypeOrderArrived, sent.Type)
	assert.Equal(t, int64(101), sent.OrderID)
	assert.Contains(t, sent.Content, pending.Number())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPayOrderCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPayOrderCommand(101, 42)
	require.NoError(t, err)

	someoneElses := restoredOrder(101, 7, order.PendingPayment, order.Unpaid)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(101)).Return(someoneElses, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayOrderCommandHandler(factory, notifier, slog.Default())
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, commands.ErrNotOrderOwner)

	// The ownership check runs before the state machine: nothing moved.
	assert.Equal(t, order.PendingPayment, someoneElses.Status())
	notifier.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateWithStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPayOrderCommandHandler_Handle_AlreadyPaid(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPayOrderCommand(101, 42)
	require.NoError(t, err)

	alreadyPaid := restoredOrder(101, 42, order.ToBeConfirmed, order.Paid)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(101)).Return(alreadyPaid, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayOrderCommandHandler(factory, notifier, slog.Default())
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, order.ErrTransitionRejected)
	notifier.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
}

func TestPayOrderCommandHandler_Handle_LostRaceEveryAttempt(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPayOrderCommand(101, 42)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)

	// Each attempt gets fresh state, decides, and loses the conditional write.
	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("OrderRepository").Return(repo).Times(3)
	// Each Get hands out a fresh aggregate; a retry must re-read, not reuse
	// the mutated instance from the lost attempt.
	for i := 0; i < 3; i++ {
		repo.On("Get", mock.Anything, int64(101)).
			Return(restoredOrder(101, 42, order.PendingPayment, order.Unpaid), nil).Once()
	}
	repo.On("UpdateWithStatus", mock.Anything, mock.Anything, order.PendingPayment).
		Return(false, nil).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	h := commands.NewPayOrderCommandHandler(factory, notifier, slog.Default())
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, commands.ErrConcurrentUpdate)

	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	factory.AssertExpectations(t)
}
