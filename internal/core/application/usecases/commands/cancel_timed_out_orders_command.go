package commands

import (
	"errors"
	"time"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var ErrCancelTimedOutOrdersCommandIsNotConstructed = errors.New(
	"CancelTimedOutOrdersCommand must be created via NewCancelTimedOutOrdersCommand constructor",
)

// PaymentTimeout is how long an order may stay in PendingPayment before the
// reconciliation sweep cancels it.
const PaymentTimeout = 15 * time.Minute

// CancelTimedOutOrdersCommand represents one run of the payment-timeout
// sweep, evaluated as of a fixed point in time.
type CancelTimedOutOrdersCommand struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewCancelTimedOutOrdersCommand creates a sweep command evaluated as of
// the given time, usually time.Now() from the scheduler.
func NewCancelTimedOutOrdersCommand(asOf time.Time) (CancelTimedOutOrdersCommand, error) {
	if asOf.IsZero() {
		return CancelTimedOutOrdersCommand{}, errs.NewValueIsRequiredError("sweep time")
	}

	return CancelTimedOutOrdersCommand{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelTimedOutOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelTimedOutOrdersCommandIsNotConstructed)
}

// AsOf returns the point in time the sweep is evaluated against.
func (c CancelTimedOutOrdersCommand) AsOf() time.Time {
	return c.asOf
}

// Cutoff returns the placement-time threshold: orders still unpaid and
// placed before it are cancelled.
func (c CancelTimedOutOrdersCommand) Cutoff() time.Time {
	return c.asOf.Add(-PaymentTimeout)
}
