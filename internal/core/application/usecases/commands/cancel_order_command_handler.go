package commands

import (
	"context"
	"time"

	"takeaway/internal/core/domain/model/order"
)

// CancelOrderCommandHandler handles the user-cancel trigger. A user may
// only cancel their own order, and only while it is PendingPayment or
// ToBeConfirmed; a payment that was already made is refunded.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for user cancellations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the user cancellation. The ownership check runs before
// the state machine, so cancelling another user's order surfaces
// ErrNotOrderOwner rather than a state rejection.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if o.UserID() != cmd.UserID() {
			return ErrNotOrderOwner
		}
		return o.CancelByUser(time.Now())
	})
	return err
}
