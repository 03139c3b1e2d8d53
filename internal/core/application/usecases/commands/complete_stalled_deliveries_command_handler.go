package commands

import (
	"context"
	"errors"
	"log/slog"

	"takeaway/internal/core/domain/model/order"
)

// CompleteStalledDeliveriesCommandHandler runs the stalled-delivery sweep:
// every order still in DeliveryInProgress past the deadline is
// force-completed. Processing is per-order independent and idempotent,
// mirroring the payment-timeout sweep.
type CompleteStalledDeliveriesCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewCompleteStalledDeliveriesCommandHandler creates a handler for the
// stalled-delivery sweep.
func NewCompleteStalledDeliveriesCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) CompleteStalledDeliveriesCommandHandler {
	return CompleteStalledDeliveriesCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "complete_stalled_deliveries_handler"),
	}
}

// Handle fetches the batch of stalled orders once, then drives each through
// the force-complete transition with its own conditional write.
func (h CompleteStalledDeliveriesCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteStalledDeliveriesCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	batch, err := h.uowFactory.Create().OrderRepository().
		GetByStatusOlderThan(ctx, order.DeliveryInProgress, cmd.Cutoff())
	if err != nil {
		return err
	}

	for _, stuck := range batch {
		_, committed, applyErr := attemptTransition(ctx, h.uowFactory.Create(), stuck.ID(), func(o *order.Order) error {
			return o.ForceComplete()
		})
		switch {
		case errors.Is(applyErr, order.ErrTransitionRejected):
			// Reconciled concurrently; nothing left to do.
		case applyErr != nil:
			h.logger.ErrorContext(ctx, "Failed to complete stalled delivery",
				"order_id", stuck.ID(), "error", applyErr)
		case !committed:
			h.logger.InfoContext(ctx, "Stalled delivery changed concurrently, skipping",
				"order_id", stuck.ID())
		default:
			h.logger.InfoContext(ctx, "Stalled delivery force-completed", "order_id", stuck.ID())
		}
	}

	return nil
}
