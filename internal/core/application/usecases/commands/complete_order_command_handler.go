package commands

import (
	"context"
	"time"

	"takeaway/internal/core/domain/model/order"
)

// CompleteOrderCommandHandler handles the deliver-complete trigger: an
// order in DeliveryInProgress moves to Completed and the delivery time is
// recorded.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompleteOrderCommandHandler creates a handler for delivery completion.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery completion.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Complete(time.Now())
	})
	return err
}
