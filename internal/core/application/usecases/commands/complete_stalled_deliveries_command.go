package commands

import (
	"errors"
	"time"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var ErrCompleteStalledDeliveriesCommandIsNotConstructed = errors.New(
	"CompleteStalledDeliveriesCommand must be created via NewCompleteStalledDeliveriesCommand constructor",
)

// DeliveryTimeout is how long an order may stay in DeliveryInProgress before
// the reconciliation sweep force-completes it.
const DeliveryTimeout = 60 * time.Minute

// CompleteStalledDeliveriesCommand represents one run of the stalled-delivery
// sweep, evaluated as of a fixed point in time.
type CompleteStalledDeliveriesCommand struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewCompleteStalledDeliveriesCommand creates a sweep command evaluated as
// of the given time, usually time.Now() from the scheduler.
func NewCompleteStalledDeliveriesCommand(asOf time.Time) (CompleteStalledDeliveriesCommand, error) {
	if asOf.IsZero() {
		return CompleteStalledDeliveriesCommand{}, errs.NewValueIsRequiredError("sweep time")
	}

	return CompleteStalledDeliveriesCommand{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStalledDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStalledDeliveriesCommandIsNotConstructed)
}

// AsOf returns the point in time the sweep is evaluated against.
func (c CompleteStalledDeliveriesCommand) AsOf() time.Time {
	return c.asOf
}

// Cutoff returns the placement-time threshold: orders still in delivery and
// placed before it are force-completed.
func (c CompleteStalledDeliveriesCommand) Cutoff() time.Time {
	return c.asOf.Add(-DeliveryTimeout)
}
