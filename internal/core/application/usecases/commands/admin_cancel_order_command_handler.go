package commands

import (
	"context"
	"time"

	"takeaway/internal/core/domain/model/order"
)

// AdminCancelOrderCommandHandler handles the admin-cancel trigger: any
// non-terminal order moves to Cancelled with the reason recorded, and a
// payment that was already made is refunded. Admin triggers skip the
// ownership check.
type AdminCancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdminCancelOrderCommandHandler creates a handler for operator
// cancellations.
func NewAdminCancelOrderCommandHandler(uowFactory OrderUoWFactory) AdminCancelOrderCommandHandler {
	return AdminCancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the operator cancellation.
func (h AdminCancelOrderCommandHandler) Handle(ctx context.Context, cmd AdminCancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.CancelByAdmin(cmd.Reason(), time.Now())
	})
	return err
}
