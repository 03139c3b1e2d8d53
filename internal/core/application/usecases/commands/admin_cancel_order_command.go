package commands

import (
	"errors"
	"fmt"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var (
	ErrAdminCancelOrderCommandIsNotConstructed = errors.New(
		"AdminCancelOrderCommand must be created via NewAdminCancelOrderCommand constructor",
	)
	ErrCancelReasonIsRequired = errors.New("cancel reason is required")
)

// AdminCancelOrderCommand represents an operator cancelling any non-terminal
// order with an explicit reason.
type AdminCancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	reason  string

	guard guard.ConstructorGuard
}

// NewAdminCancelOrderCommand creates a command cancelling the given order.
// The cancel reason must not be empty.
func NewAdminCancelOrderCommand(orderID int64, reason string) (AdminCancelOrderCommand, error) {
	cmd := AdminCancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return AdminCancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdminCancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdminCancelOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order being cancelled.
func (c AdminCancelOrderCommand) OrderID() int64 {
	return c.orderID
}

// Reason returns the operator's cancellation reason.
func (c AdminCancelOrderCommand) Reason() string {
	return c.reason
}

func (c *AdminCancelOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *AdminCancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		return ErrCancelReasonIsRequired
	}

	c.reason = reason
	return nil
}
