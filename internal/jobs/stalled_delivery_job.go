package jobs

import (
	"context"
	"log/slog"
	"time"

	"takeaway/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StalledDeliveryJob manages the scheduled completion of deliveries that
// never got marked finished. Runs once a day at 01:00.
type StalledDeliveryJob struct {
	handler commands.CompleteStalledDeliveriesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStalledDeliveryJob creates a new job for closing out stalled deliveries.
// Uses CompleteStalledDeliveriesCommandHandler to sweep in-progress
// deliveries daily.
func NewStalledDeliveryJob(handler commands.CompleteStalledDeliveriesCommandHandler, logger *slog.Logger) *StalledDeliveryJob {
	return &StalledDeliveryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stalled_delivery_job"),
	}
}

// Start begins the stalled delivery sweep, running daily at 01:00.
func (j *StalledDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("0 0 1 * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCompleteStalledDeliveriesCommand(time.Now())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stalled delivery sweep failed to build command", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Stalled delivery sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled delivery job started (running daily at 01:00)")
	return nil
}

// Stop stops the stalled delivery job.
func (j *StalledDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stalled delivery job stopped")
}
