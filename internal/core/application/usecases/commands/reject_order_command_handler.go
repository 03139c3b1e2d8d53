package commands

import (
	"context"
	"time"

	"takeaway/internal/core/domain/model/order"
)

// RejectOrderCommandHandler handles the merchant-reject trigger: the order
// moves to Cancelled with the rejection reason recorded, and a payment that
// was already made is refunded.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRejectOrderCommandHandler creates a handler for merchant rejections.
func NewRejectOrderCommandHandler(uowFactory OrderUoWFactory) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the merchant rejection.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Reject(cmd.Reason(), time.Now())
	})
	return err
}
