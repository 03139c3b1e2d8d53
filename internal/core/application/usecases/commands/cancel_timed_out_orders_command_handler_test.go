package commands_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"takeaway/internal/core/application/usecases/commands"
	"takeaway/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelTimedOutOrdersCommand_Cutoff(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cmd, err := commands.NewCancelTimedOutOrdersCommand(asOf)
	require.NoError(t, err)

	assert.Equal(t, asOf.Add(-commands.PaymentTimeout), cmd.Cutoff())
	assert.Equal(t, asOf, cmd.AsOf())

	_, err = commands.NewCancelTimedOutOrdersCommand(time.Time{})
	assert.Error(t, err)
}

func TestCancelTimedOutOrdersCommandHandler_Handle_CancelsBatch(t *testing.T) {
	ctx := t.Context()
	asOf := time.Now()
	cmd, err := commands.NewCancelTimedOutOrdersCommand(asOf)
	require.NoError(t, err)

	first := restoredOrder(1, 42, order.PendingPayment, order.Unpaid)
	second := restoredOrder(2, 43, order.PendingPayment, order.Unpaid)

	batchRepo := new(MockOrderRepository)
	batchRepo.On("GetByStatusOlderThan", mock.Anything, order.PendingPayment, cmd.Cutoff()).
		Return([]*order.Order{first, second}, nil).Once()
	batchUoW := new(MockOrderUoW)
	batchUoW.On("OrderRepository").Return(batchRepo).Once()

	perOrderRepo := new(MockOrderRepository)
	perOrderRepo.On("Get", mock.Anything, int64(1)).
		Return(restoredOrder(1, 42, order.PendingPayment, order.Unpaid), nil).Once()
	perOrderRepo.On("Get", mock.Anything, int64(2)).
		Return(restoredOrder(2, 43, order.PendingPayment, order.Unpaid), nil).Once()
	perOrderRepo.On("UpdateWithStatus", mock.Anything, mock.Anything, order.PendingPayment).
		Return(true, nil).Times(2)

	perOrderUoW := new(MockOrderUoW)
	perOrderUoW.On("Begin", mock.Anything).Return(nil)
	perOrderUoW.On("OrderRepository").Return(perOrderRepo)
	perOrderUoW.On("Commit", mock.Anything).Return(nil)
	perOrderUoW.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(batchUoW).Once()
	factory.On("Create").Return(perOrderUoW).Times(2)

	h := commands.NewCancelTimedOutOrdersCommandHandler(factory, slog.Default())
	require.NoError(t, h.Handle(ctx, cmd))

	// Each cancelled order got its own transaction and conditional write.
	perOrderRepo.AssertNumberOfCalls(t, "UpdateWithStatus", 2)
	for _, call := range perOrderRepo.Calls {
		if call.Method != "UpdateWithStatus" {
			continue
		}
		cancelled := call.Arguments.Get(1).(*order.Order)
		assert.Equal(t, order.Cancelled, cancelled.Status())
		assert.Equal(t, order.Unpaid, cancelled.PayStatus(), "timeout cancel never refunds")
		assert.Equal(t, order.CancelReasonTimedOut, cancelled.CancelReason())
	}
}

func TestCancelTimedOutOrdersCommandHandler_Handle_SkipsReconciledOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelTimedOutOrdersCommand(time.Now())
	require.NoError(t, err)

	stale := restoredOrder(1, 42, order.PendingPayment, order.Unpaid)

	batchRepo := new(MockOrderRepository)
	batchRepo.On("GetByStatusOlderThan", mock.Anything, order.PendingPayment, cmd.Cutoff()).
		Return([]*order.Order{stale}, nil).Once()
	batchUoW := new(MockOrderUoW)
	batchUoW.On("OrderRepository").Return(batchRepo).Once()

	// By the time the per-order transaction reloads it, the user has paid.
	perOrderRepo := new(MockOrderRepository)
	perOrderRepo.On("Get", mock.Anything, int64(1)).
		Return(restoredOrder(1, 42, order.ToBeConfirmed, order.Paid), nil).Once()
	perOrderUoW := new(MockOrderUoW)
	perOrderUoW.On("Begin", mock.Anything).Return(nil)
	perOrderUoW.On("OrderRepository").Return(perOrderRepo)
	perOrderUoW.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(batchUoW).Once()
	factory.On("Create").Return(perOrderUoW).Once()

	h := commands.NewCancelTimedOutOrdersCommandHandler(factory, slog.Default())

	// The rejection is expected and must not surface as a sweep error.
	require.NoError(t, h.Handle(ctx, cmd))
	perOrderRepo.AssertNotCalled(t, "UpdateWithStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelTimedOutOrdersCommandHandler_Handle_OneFailureDoesNotAbortBatch(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelTimedOutOrdersCommand(time.Now())
	require.NoError(t, err)

	first := restoredOrder(1, 42, order.PendingPayment, order.Unpaid)
	second := restoredOrder(2, 43, order.PendingPayment, order.Unpaid)

	batchRepo := new(MockOrderRepository)
	batchRepo.On("GetByStatusOlderThan", mock.Anything, order.PendingPayment, cmd.Cutoff()).
		Return([]*order.Order{first, second}, nil).Once()
	batchUoW := new(MockOrderUoW)
	batchUoW.On("OrderRepository").Return(batchRepo).Once()

	perOrderRepo := new(MockOrderRepository)
	perOrderRepo.On("Get", mock.Anything, int64(1)).
		Return(nil, errors.New("connection lost")).Once()
	perOrderRepo.On("Get", mock.Anything, int64(2)).
		Return(restoredOrder(2, 43, order.PendingPayment, order.Unpaid), nil).Once()
	perOrderRepo.On("UpdateWithStatus", mock.Anything, mock.Anything, order.PendingPayment).
		Return(true, nil).Once()

	perOrderUoW := new(MockOrderUoW)
	perOrderUoW.On("Begin", mock.Anything).Return(nil)
	perOrderUoW.On("OrderRepository").Return(perOrderRepo)
	perOrderUoW.On("Commit", mock.Anything).Return(nil)
	perOrderUoW.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(batchUoW).Once()
	factory.On("Create").Return(perOrderUoW).Times(2)

	h := commands.NewCancelTimedOutOrdersCommandHandler(factory, slog.Default())
	require.NoError(t, h.Handle(ctx, cmd))

	// The second order was still processed after the first one failed.
	perOrderRepo.AssertNumberOfCalls(t, "UpdateWithStatus", 1)
}

func TestCompleteStalledDeliveriesCommandHandler_Handle_ForceCompletes(t *testing.T) {
	ctx := t.Context()
	asOf := time.Now()
	cmd, err := commands.NewCompleteStalledDeliveriesCommand(asOf)
	require.NoError(t, err)

	assert.Equal(t, asOf.Add(-commands.DeliveryTimeout), cmd.Cutoff())

	stalled := restoredOrder(9, 42, order.DeliveryInProgress, order.Paid)

	batchRepo := new(MockOrderRepository)
	batchRepo.On("GetByStatusOlderThan", mock.Anything, order.DeliveryInProgress, cmd.Cutoff()).
		Return([]*order.Order{stalled}, nil).Once()
	batchUoW := new(MockOrderUoW)
	batchUoW.On("OrderRepository").Return(batchRepo).Once()

	perOrderRepo := new(MockOrderRepository)
	perOrderRepo.On("Get", mock.Anything, int64(9)).
		Return(restoredOrder(9, 42, order.DeliveryInProgress, order.Paid), nil).Once()
	perOrderRepo.On("UpdateWithStatus", mock.Anything, mock.Anything, order.DeliveryInProgress).
		Return(true, nil).Once()

	perOrderUoW := new(MockOrderUoW)
	perOrderUoW.On("Begin", mock.Anything).Return(nil)
	perOrderUoW.On("OrderRepository").Return(perOrderRepo)
	perOrderUoW.On("Commit", mock.Anything).Return(nil)
	perOrderUoW.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(batchUoW).Once()
	factory.On("Create").Return(perOrderUoW).Once()

	h := commands.NewCompleteStalledDeliveriesCommandHandler(factory, slog.Default())
	require.NoError(t, h.Handle(ctx, cmd))

	var completed *order.Order
	for _, call := range perOrderRepo.Calls {
		if call.Method == "UpdateWithStatus" {
			completed = call.Arguments.Get(1).(*order.Order)
		}
	}
	require.NotNil(t, completed)
	assert.Equal(t, order.Completed, completed.Status())
	assert.Equal(t, order.Paid, completed.PayStatus())
	assert.Nil(t, completed.DeliveryTime(), "force completion records no delivery time")
}
