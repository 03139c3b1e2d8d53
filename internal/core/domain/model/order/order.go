package order

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderAlreadyPersisted is returned when AssignID is called on an
	// order that already carries a persistence id.
	ErrOrderAlreadyPersisted = errors.New("order id is already assigned")
)

// CancelReasonTimedOut is recorded when the payment-timeout sweep cancels
// an order that stayed unpaid past the deadline.
const CancelReasonTimedOut = "order timed out, cancelled automatically"

// CancelReasonUser is recorded when the owning user cancels their order.
const CancelReasonUser = "cancelled by user"

// Order is the aggregate root for a customer purchase request. It progresses
// through a fixed set of lifecycle states driven by user actions, merchant
// actions, and the timeout reconciliation sweeps.
//
// Order maintains these invariants:
//   - State transitions follow the table in Transition; terminal orders
//     accept no further mutation.
//   - The payment sub-state is constrained by the lifecycle state.
//   - Per-transition timestamps (checkout, delivery, cancel) are set exactly
//     once, at the transition that produces them.
//   - Cancel reason and rejection reason are mutually exclusive.
//   - The detail snapshot is created once at submission; the sum of its line
//     amounts equals the order amount.
type Order struct {
	// id is assigned by persistence; zero until the order is stored
	id int64

	// number is the human-facing order number, derived from the placement time
	number string

	status    Status
	payStatus PayStatus

	// userID is the owning user
	userID int64

	// address snapshot captured at submission time, immutable afterward
	addressBookID int64
	consignee     string
	phone         string
	address       string

	// amount is the order total in cents
	amount int64

	remark string

	orderTime    time.Time
	checkoutTime *time.Time
	deliveryTime *time.Time
	cancelTime   *time.Time

	cancelReason    string
	rejectionReason string

	details []Detail

	guard guard.ConstructorGuard
}

// NewOrder creates a new order in PendingPayment/Unpaid state from an
// address snapshot and the ordering-time detail lines. The order total is
// the sum of the line amounts, and the order number is derived from the
// placement time.
func NewOrder(
	userID int64,
	addressBookID int64,
	consignee string,
	phone string,
	address string,
	remark string,
	details []Detail,
	placedAt time.Time,
) (*Order, error) {
	if userID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("user id is invalid",
			fmt.Errorf("%d is not a valid user id", userID))
	}
	if consignee == "" {
		return nil, errs.NewValueIsRequiredError("consignee")
	}
	if address == "" {
		return nil, errs.NewValueIsRequiredError("address")
	}
	if len(details) == 0 {
		return nil, errs.NewValueIsRequiredError("order details")
	}

	var amount int64
	for _, d := range details {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		amount += d.Amount()
	}

	return &Order{
		number:        strconv.FormatInt(placedAt.UnixMilli(), 10),
		status:        PendingPayment,
		payStatus:     Unpaid,
		userID:        userID,
		addressBookID: addressBookID,
		consignee:     consignee,
		phone:         phone,
		address:       address,
		amount:        amount,
		remark:        remark,
		orderTime:     placedAt,
		details:       append([]Detail(nil), details...),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrderParams carries the persisted fields needed to rehydrate an
// order aggregate from storage.
type RestoreOrderParams struct {
	ID              int64
	Number          string
	Status          Status
	PayStatus       PayStatus
	UserID          int64
	AddressBookID   int64
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
	Details         []Detail
}

// RestoreOrder reconstructs an order aggregate from persistence. The stored
// status and payment state are validated; business preconditions beyond that
// are assumed to have held when the record was written.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	if err := params.Status.Validate(); err != nil {
		return nil, err
	}
	if err := params.PayStatus.Validate(); err != nil {
		return nil, err
	}
	if params.ID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id is invalid",
			fmt.Errorf("%d is not a valid order id", params.ID))
	}

	return &Order{
		id:              params.ID,
		number:          params.Number,
		status:          params.Status,
		payStatus:       params.PayStatus,
		userID:          params.UserID,
		addressBookID:   params.AddressBookID,
		consignee:       params.Consignee,
		phone:           params.Phone,
		address:         params.Address,
		amount:          params.Amount,
		remark:          params.Remark,
		orderTime:       params.OrderTime,
		checkoutTime:    params.CheckoutTime,
		deliveryTime:    params.DeliveryTime,
		cancelTime:      params.CancelTime,
		cancelReason:    params.CancelReason,
		rejectionReason: params.RejectionReason,
		details:         params.Details,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// AssignID attaches the persistence-assigned id to a freshly stored order.
// The id can be assigned only once.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrOrderAlreadyPersisted
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid",
			fmt.Errorf("%d is not a valid order id", id))
	}
	o.id = id
	return nil
}

// ID returns the persistence-assigned order id, zero for unsaved orders.
func (o *Order) ID() int64 { return o.id }

// Number returns the human-facing order number.
func (o *Order) Number() string { return o.number }

// Status returns the current lifecycle state.
func (o *Order) Status() Status { return o.status }

// PayStatus returns the current payment sub-state.
func (o *Order) PayStatus() PayStatus { return o.payStatus }

// UserID returns the owning user's id.
func (o *Order) UserID() int64 { return o.userID }

// AddressBookID returns the id of the address-book entry the delivery
// snapshot was captured from.
func (o *Order) AddressBookID() int64 { return o.addressBookID }

// Consignee returns the snapshotted recipient name.
func (o *Order) Consignee() string { return o.consignee }

// Phone returns the snapshotted recipient phone number.
func (o *Order) Phone() string { return o.phone }

// Address returns the snapshotted composed delivery address.
func (o *Order) Address() string { return o.address }

// Amount returns the order total in cents.
func (o *Order) Amount() int64 { return o.amount }

// Remark returns the free-form note attached at submission.
func (o *Order) Remark() string { return o.remark }

// OrderTime returns the placement time.
func (o *Order) OrderTime() time.Time { return o.orderTime }

// CheckoutTime returns the payment-confirmed time, nil while unpaid.
func (o *Order) CheckoutTime() *time.Time { return o.checkoutTime }

// DeliveryTime returns the delivery-completed time, nil until delivered.
func (o *Order) DeliveryTime() *time.Time { return o.deliveryTime }

// CancelTime returns the cancellation time, nil unless cancelled.
func (o *Order) CancelTime() *time.Time { return o.cancelTime }

// CancelReason returns the recorded cancellation reason, empty unless the
// order was cancelled by the user, an admin, or the timeout sweep.
func (o *Order) CancelReason() string { return o.cancelReason }

// RejectionReason returns the recorded merchant rejection reason.
func (o *Order) RejectionReason() string { return o.rejectionReason }

// Details returns the ordering-time line item snapshot.
func (o *Order) Details() []Detail { return o.details }

// apply runs the pure transition table for the event and, if accepted,
// advances the lifecycle and payment states.
func (o *Order) apply(event Event) error {
	next, nextPay, err := Transition(o.status, o.payStatus, event)
	if err != nil {
		return err
	}

	o.status = next
	o.payStatus = nextPay
	return nil
}

// Pay records a successful payment: the order moves to ToBeConfirmed, the
// payment sub-state becomes Paid and the checkout time is set.
func (o *Order) Pay(paidAt time.Time) error {
	if err := o.apply(EventPaySuccess); err != nil {
		return err
	}

	o.checkoutTime = &paidAt
	return nil
}

// Confirm records the merchant accepting the order.
func (o *Order) Confirm() error {
	return o.apply(EventConfirm)
}

// Reject records the merchant declining a paid order. The rejection reason
// and cancellation time are recorded, and the payment is refunded.
func (o *Order) Reject(reason string, rejectedAt time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	if err := o.apply(EventReject); err != nil {
		return err
	}

	o.rejectionReason = reason
	o.cancelTime = &rejectedAt
	return nil
}

// Dispatch records the order being handed to a courier.
func (o *Order) Dispatch() error {
	return o.apply(EventDispatch)
}

// Complete records a finished delivery and sets the delivery time.
func (o *Order) Complete(deliveredAt time.Time) error {
	if err := o.apply(EventDeliverComplete); err != nil {
		return err
	}

	o.deliveryTime = &deliveredAt
	return nil
}

// CancelByUser records the owning user cancelling their order. Allowed only
// before the merchant confirms; refunds the payment if it was already made.
func (o *Order) CancelByUser(cancelledAt time.Time) error {
	if err := o.apply(EventUserCancel); err != nil {
		return err
	}

	o.cancelReason = CancelReasonUser
	o.cancelTime = &cancelledAt
	return nil
}

// CancelByAdmin records an operator cancelling any non-terminal order with
// an explicit reason; refunds the payment if it was already made.
func (o *Order) CancelByAdmin(reason string, cancelledAt time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}
	if err := o.apply(EventAdminCancel); err != nil {
		return err
	}

	o.cancelReason = reason
	o.cancelTime = &cancelledAt
	return nil
}

// CancelByTimeout records the payment-timeout sweep cancelling an unpaid
// order. No refund is issued: an order in PendingPayment was never paid.
func (o *Order) CancelByTimeout(cancelledAt time.Time) error {
	if err := o.apply(EventTimeoutCancel); err != nil {
		return err
	}

	o.cancelReason = CancelReasonTimedOut
	o.cancelTime = &cancelledAt
	return nil
}

// ForceComplete records the stalled-delivery sweep closing an order stuck
// in delivery. Matches the reconciliation behavior of marking only the
// status; the delivery time stays unset because no delivery was observed.
func (o *Order) ForceComplete() error {
	return o.apply(EventTimeoutComplete)
}
