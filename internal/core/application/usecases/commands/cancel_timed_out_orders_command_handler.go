package commands

import (
	"context"
	"errors"
	"log/slog"

	"takeaway/internal/core/domain/model/order"
)

// CancelTimedOutOrdersCommandHandler runs the payment-timeout sweep: every
// order still in PendingPayment past the deadline is cancelled with a
// timeout reason. No refund is issued on this path, an unpaid order carries
// no payment.
//
// Each order is processed independently: a failure on one order is logged
// and must not abort the rest of the batch. The sweep is idempotent, an
// order already reconciled simply fails the precondition and is skipped.
type CancelTimedOutOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewCancelTimedOutOrdersCommandHandler creates a handler for the
// payment-timeout sweep.
func NewCancelTimedOutOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) CancelTimedOutOrdersCommandHandler {
	return CancelTimedOutOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "cancel_timed_out_orders_handler"),
	}
}

// Handle fetches the batch of stuck orders once, then drives each through
// the timeout-cancel transition with its own conditional write. Lost races
// and failed preconditions are expected here (another actor moved the order
// first) and are skipped without error.
func (h CancelTimedOutOrdersCommandHandler) Handle(ctx context.Context, cmd CancelTimedOutOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	batch, err := h.uowFactory.Create().OrderRepository().
		GetByStatusOlderThan(ctx, order.PendingPayment, cmd.Cutoff())
	if err != nil {
		return err
	}

	for _, stuck := range batch {
		_, committed, applyErr := attemptTransition(ctx, h.uowFactory.Create(), stuck.ID(), func(o *order.Order) error {
			return o.CancelByTimeout(cmd.AsOf())
		})
		switch {
		case errors.Is(applyErr, order.ErrTransitionRejected):
			// Reconciled concurrently; nothing left to do.
		case applyErr != nil:
			h.logger.ErrorContext(ctx, "Failed to cancel timed-out order",
				"order_id", stuck.ID(), "error", applyErr)
		case !committed:
			h.logger.InfoContext(ctx, "Timed-out order changed concurrently, skipping",
				"order_id", stuck.ID())
		default:
			h.logger.InfoContext(ctx, "Timed-out order cancelled", "order_id", stuck.ID())
		}
	}

	return nil
}
