package commands

import (
	"context"

	"takeaway/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler handles the merchant-confirm trigger.
// Merchant triggers skip the ownership check but must still pass the state
// precondition: only ToBeConfirmed orders can be accepted.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmOrderCommandHandler creates a handler for merchant acceptance.
func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the merchant acceptance.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Confirm()
	})
	return err
}
