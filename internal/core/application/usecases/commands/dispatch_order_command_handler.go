package commands

import (
	"context"

	"takeaway/internal/core/domain/model/order"
)

// DispatchOrderCommandHandler handles the dispatch trigger: a Confirmed
// order moves to DeliveryInProgress.
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch.
func NewDispatchOrderCommandHandler(uowFactory OrderUoWFactory) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Dispatch()
	})
	return err
}
