package commands

import (
	"errors"
	"fmt"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a user cancelling their own order before
// the merchant confirms it.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	userID  int64

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command cancelling the given order on
// behalf of the given user.
func NewCancelOrderCommand(orderID, userID int64) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order being cancelled.
func (c CancelOrderCommand) OrderID() int64 {
	return c.orderID
}

// UserID returns the id of the user requesting the cancellation.
func (c CancelOrderCommand) UserID() int64 {
	return c.userID
}

func (c *CancelOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id is invalid",
			fmt.Errorf("%d is not a valid user id", userID))
	}

	c.userID = userID
	return nil
}
