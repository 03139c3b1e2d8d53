package queries

import (
	"errors"
	"fmt"
	"time"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)

	// ErrNotOrderOwner is returned when a user requests the detail of an
	// order owned by a different user. Operator queries skip the check.
	ErrNotOrderOwner = errors.New("order does not belong to the current user")
)

// GetOrderQuery requests the full detail of one order. UserID restricts the
// lookup to orders owned by that user; zero means an operator lookup with
// no ownership restriction.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID int64
	userID  int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates an order detail query on behalf of a user.
func NewGetOrderQuery(orderID, userID int64) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	query.userID = userID
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the id of the requested order.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// UserID returns the requesting user's id, zero for operator lookups.
func (q GetOrderQuery) UserID() int64 {
	return q.userID
}

func (q *GetOrderQuery) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	q.orderID = orderID
	return nil
}

// OrderDetailLine is one line item of an order detail response.
type OrderDetailLine struct {
	Name   string
	Image  string
	Flavor string
	Number int
	Amount int64
}

// OrderResponse is the full order detail returned to clients.
type OrderResponse struct {
	ID              int64
	Number          string
	Status          int
	PayStatus       int
	UserID          int64
	Consignee       string
	Phone           string
	Address         string
	Amount          int64
	Remark          string
	OrderTime       time.Time
	CheckoutTime    *time.Time
	DeliveryTime    *time.Time
	CancelTime      *time.Time
	CancelReason    string
	RejectionReason string
	// Dishes summarizes the line items as "name*qty;name*qty;".
	Dishes  string
	Details []OrderDetailLine
}
