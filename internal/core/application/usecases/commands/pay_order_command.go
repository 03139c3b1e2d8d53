package commands

import (
	"errors"
	"fmt"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var ErrPayOrderCommandIsNotConstructed = errors.New(
	"PayOrderCommand must be created via NewPayOrderCommand constructor",
)

// PayOrderCommand represents a successful (simulated) payment callback for
// a pending order owned by the paying user.
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	userID  int64

	guard guard.ConstructorGuard
}

// NewPayOrderCommand creates a command recording a successful payment.
func NewPayOrderCommand(orderID, userID int64) (PayOrderCommand, error) {
	cmd := PayOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
	); err != nil {
		return PayOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order being paid.
func (c PayOrderCommand) OrderID() int64 {
	return c.orderID
}

// UserID returns the paying user's id.
func (c PayOrderCommand) UserID() int64 {
	return c.userID
}

func (c *PayOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *PayOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id is invalid",
			fmt.Errorf("%d is not a valid user id", userID))
	}

	c.userID = userID
	return nil
}
