package commands

import (
	"errors"
	"fmt"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)

	// ErrShoppingCartIsEmpty is returned when the user submits with no cart
	// lines to snapshot.
	ErrShoppingCartIsEmpty = errors.New("shopping cart is empty")
)

// SubmitOrderCommand represents a user's request to place an order from the
// current contents of their shopping cart, delivered to one of their
// address-book entries.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	userID        int64
	addressBookID int64
	remark        string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to place a new order.
// Validates that the user and address-book ids are positive.
func NewSubmitOrderCommand(userID, addressBookID int64, remark string) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setAddressBookID(addressBookID),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	cmd.remark = remark
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// UserID returns the submitting user's id.
func (c SubmitOrderCommand) UserID() int64 {
	return c.userID
}

// AddressBookID returns the id of the address-book entry to deliver to.
func (c SubmitOrderCommand) AddressBookID() int64 {
	return c.addressBookID
}

// Remark returns the free-form note attached to the order.
func (c SubmitOrderCommand) Remark() string {
	return c.remark
}

func (c *SubmitOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id is invalid",
			fmt.Errorf("%d is not a valid user id", userID))
	}

	c.userID = userID
	return nil
}

func (c *SubmitOrderCommand) setAddressBookID(addressBookID int64) error {
	if addressBookID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("address book id is invalid",
			fmt.Errorf("%d is not a valid address book id", addressBookID))
	}

	c.addressBookID = addressBookID
	return nil
}
