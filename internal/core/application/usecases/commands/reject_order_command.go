package commands

import (
	"errors"
	"fmt"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var (
	ErrRejectOrderCommandIsNotConstructed = errors.New(
		"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
	)
	ErrRejectionReasonIsRequired = errors.New("rejection reason is required")
)

// RejectOrderCommand represents the merchant declining a paid order,
// recording why.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	reason  string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command declining the given order.
// The rejection reason must not be empty.
func NewRejectOrderCommand(orderID int64, reason string) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return RejectOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order being declined.
func (c RejectOrderCommand) OrderID() int64 {
	return c.orderID
}

// Reason returns the merchant's rejection reason.
func (c RejectOrderCommand) Reason() string {
	return c.reason
}

func (c *RejectOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *RejectOrderCommand) setReason(reason string) error {
	if reason == "" {
		return ErrRejectionReasonIsRequired
	}

	c.reason = reason
	return nil
}
