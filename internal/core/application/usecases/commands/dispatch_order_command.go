package commands

import (
	"errors"
	"fmt"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand represents the merchant handing a confirmed order to
// a courier.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command dispatching the given order.
func NewDispatchOrderCommand(orderID int64) (DispatchOrderCommand, error) {
	cmd := DispatchOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return DispatchOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order being dispatched.
func (c DispatchOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c *DispatchOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}
