package order

import (
	"fmt"

	"takeaway/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PendingPayment ──> ToBeConfirmed ──> Confirmed ──> DeliveryInProgress ──> Completed
//	       │                 │
//	       └────────┬────────┘
//	                v
//	            Cancelled   (also reachable from any non-terminal state via admin cancel)
//
// The numeric values are persisted and must stay stable.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// PendingPayment is the initial status: the order is placed but unpaid.
	PendingPayment

	// ToBeConfirmed means payment succeeded and the merchant has not yet
	// accepted the order.
	ToBeConfirmed

	// Confirmed means the merchant accepted the order.
	Confirmed

	// DeliveryInProgress means the order has been handed to a courier.
	DeliveryInProgress

	// Completed means the order was delivered. Terminal.
	Completed

	// Cancelled means the order was cancelled by the user, the merchant,
	// an administrator, or the payment-timeout sweep. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:      "Unknown",
		PendingPayment:     "PendingPayment",
		ToBeConfirmed:      "ToBeConfirmed",
		Confirmed:          "Confirmed",
		DeliveryInProgress: "DeliveryInProgress",
		Completed:          "Completed",
		Cancelled:          "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingPayment:     "PendingPayment",
		ToBeConfirmed:      "ToBeConfirmed",
		Confirmed:          "Confirmed",
		DeliveryInProgress: "DeliveryInProgress",
		Completed:          "Completed",
		Cancelled:          "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Used when rehydrating orders from external sources such as the database.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
// Completed and Cancelled orders are immutable.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// PayStatus represents the payment sub-state of an order. It is tracked
// independently of Status but constrained by it: an order becomes Paid only
// while PendingPayment, and Refunded only from Paid.
type PayStatus int

const (
	// Unpaid is the initial payment state.
	Unpaid PayStatus = iota

	// Paid means the (simulated) payment succeeded.
	Paid

	// Refunded means a paid order was cancelled or rejected and the payment
	// was returned.
	Refunded
)

func getPayStatusStrings() map[PayStatus]string {
	return map[PayStatus]string{
		Unpaid:   "Unpaid",
		Paid:     "Paid",
		Refunded: "Refunded",
	}
}

// Validate checks if the PayStatus value is one of the defined payment states.
func (p PayStatus) Validate() error {
	if _, ok := getPayStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"pay status is invalid",
			fmt.Errorf("%d is not a valid pay status", p),
		)
	}
	return nil
}

// String returns the human-readable name of the payment state.
func (p PayStatus) String() string {
	if str, ok := getPayStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
