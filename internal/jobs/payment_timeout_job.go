package jobs

import (
	"context"
	"log/slog"
	"time"

	"takeaway/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentTimeoutJob manages the scheduled cancellation of orders that stayed
// unpaid past the payment deadline. Runs every minute.
type PaymentTimeoutJob struct {
	handler commands.CancelTimedOutOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPaymentTimeoutJob creates a new job for cancelling timed-out orders.
// Uses CancelTimedOutOrdersCommandHandler to sweep unpaid orders every minute.
func NewPaymentTimeoutJob(handler commands.CancelTimedOutOrdersCommandHandler, logger *slog.Logger) *PaymentTimeoutJob {
	return &PaymentTimeoutJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "payment_timeout_job"),
	}
}

// Start begins the payment timeout sweep, running at the top of every minute.
func (j *PaymentTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelTimedOutOrdersCommand(time.Now())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Payment timeout sweep failed to build command", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Payment timeout sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment timeout job started (running every minute)")
	return nil
}

// Stop stops the payment timeout job.
func (j *PaymentTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment timeout job stopped")
}
