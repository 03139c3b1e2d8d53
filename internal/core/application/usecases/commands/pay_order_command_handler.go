package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"takeaway/internal/core/domain/model/order"
	"takeaway/internal/core/ports"
)

// PayOrderCommandHandler handles the pay-success trigger: the order moves
// from PendingPayment to ToBeConfirmed, the payment sub-state becomes Paid,
// and operator clients are notified that a new order arrived.
type PayOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewPayOrderCommandHandler creates a handler for payment confirmations.
// The notifier receives the order-arrived broadcast after the write commits.
func NewPayOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "pay_order_handler"),
	}
}

// Handle processes the payment confirmation.
// The ownership check runs before the state machine: paying someone else's
// order is an authorization denial, not a state rejection. The broadcast is
// attempted only after the commit so a failed write never notifies, and a
// failed broadcast never fails the transition.
func (h PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if o.UserID() != cmd.UserID() {
			return ErrNotOrderOwner
		}
		return o.Pay(time.Now())
	})
	if err != nil {
		return err
	}

	h.notifier.Broadcast(ctx, ports.Notification{
		Type:    ports.NotificationTypeOrderArrived,
		OrderID: aggregate.ID(),
		Content: fmt.Sprintf("order number: %s", aggregate.Number()),
	})

	h.logger.InfoContext(ctx, "Order paid", "order_id", aggregate.ID(), "number", aggregate.Number())
	return nil
}
