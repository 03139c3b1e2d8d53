package commands

import (
	"errors"
	"fmt"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents a courier finishing the delivery of an
// order.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command completing the given order.
func NewCompleteOrderCommand(orderID int64) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return CompleteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order being completed.
func (c CompleteOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c *CompleteOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}
