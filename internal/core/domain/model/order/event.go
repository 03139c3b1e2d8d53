package order

import (
	"errors"
	"fmt"
)

// ErrTransitionRejected is the sentinel unwrapped by TransitionRejectedError.
// It marks a requested event whose required-state precondition did not hold.
var ErrTransitionRejected = errors.New("order state transition rejected")

// Event is a named trigger that may move an order from one lifecycle state
// to another if the precondition holds.
type Event int

const (
	// EventUnknown represents an invalid or undefined event.
	EventUnknown Event = iota

	// EventPaySuccess records a successful payment of a pending order.
	EventPaySuccess

	// EventConfirm records the merchant accepting a paid order.
	EventConfirm

	// EventReject records the merchant declining a paid order.
	EventReject

	// EventDispatch records the order being handed to a courier.
	EventDispatch

	// EventDeliverComplete records a finished delivery.
	EventDeliverComplete

	// EventUserCancel records the owning user cancelling their order.
	EventUserCancel

	// EventAdminCancel records an operator cancelling any non-terminal order.
	EventAdminCancel

	// EventTimeoutCancel records the payment-timeout sweep cancelling an
	// order that stayed unpaid past the deadline.
	EventTimeoutCancel

	// EventTimeoutComplete records the stalled-delivery sweep force-completing
	// an order stuck in delivery.
	EventTimeoutComplete
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:         "unknown",
		EventPaySuccess:      "pay-success",
		EventConfirm:         "merchant-confirm",
		EventReject:          "merchant-reject",
		EventDispatch:        "dispatch",
		EventDeliverComplete: "deliver-complete",
		EventUserCancel:      "user-cancel",
		EventAdminCancel:     "admin-cancel",
		EventTimeoutCancel:   "timeout-cancel",
		EventTimeoutComplete: "timeout-force-complete",
	}
}

// String returns the wire name of the event.
func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "unknown"
}

// TransitionRejectedError reports that an event was requested while the
// order was in a state that does not allow it. It is recoverable and is
// surfaced to the caller as a user-facing rejection, never retried.
type TransitionRejectedError struct {
	Event Event
	From  Status
}

// NewTransitionRejectedError creates a rejection for the given event and
// source state.
func NewTransitionRejectedError(event Event, from Status) *TransitionRejectedError {
	return &TransitionRejectedError{Event: event, From: from}
}

func (e *TransitionRejectedError) Error() string {
	return fmt.Sprintf("%s: event %s is not allowed while order is %s",
		ErrTransitionRejected, e.Event, e.From)
}

func (e *TransitionRejectedError) Unwrap() error {
	return ErrTransitionRejected
}

// payEffect computes the payment sub-state produced by a transition.
type payEffect func(PayStatus) PayStatus

func payUnchanged(p PayStatus) PayStatus { return p }

func payCharged(PayStatus) PayStatus { return Paid }

// refundIfPaid flips Paid to Refunded; any other payment state is kept.
// The payment-timeout path deliberately never reaches this effect: an order
// cancelled for non-payment was never paid, so no refund is issued.
func refundIfPaid(p PayStatus) PayStatus {
	if p == Paid {
		return Refunded
	}
	return p
}

// transitionRule describes one row of the transition table: the states an
// event is accepted from, the state it produces, and its payment effect.
type transitionRule struct {
	from []Status
	next Status
	pay  payEffect
}

func getTransitionRules() map[Event]transitionRule {
	return map[Event]transitionRule{
		EventPaySuccess: {
			from: []Status{PendingPayment},
			next: ToBeConfirmed,
			pay:  payCharged,
		},
		EventConfirm: {
			from: []Status{ToBeConfirmed},
			next: Confirmed,
			pay:  payUnchanged,
		},
		EventReject: {
			from: []Status{ToBeConfirmed},
			next: Cancelled,
			pay:  refundIfPaid,
		},
		EventDispatch: {
			from: []Status{Confirmed},
			next: DeliveryInProgress,
			pay:  payUnchanged,
		},
		EventDeliverComplete: {
			from: []Status{DeliveryInProgress},
			next: Completed,
			pay:  payUnchanged,
		},
		EventUserCancel: {
			from: []Status{PendingPayment, ToBeConfirmed},
			next: Cancelled,
			pay:  refundIfPaid,
		},
		EventAdminCancel: {
			from: []Status{PendingPayment, ToBeConfirmed, Confirmed, DeliveryInProgress},
			next: Cancelled,
			pay:  refundIfPaid,
		},
		EventTimeoutCancel: {
			from: []Status{PendingPayment},
			next: Cancelled,
			pay:  payUnchanged,
		},
		EventTimeoutComplete: {
			from: []Status{DeliveryInProgress},
			next: Completed,
			pay:  payUnchanged,
		},
	}
}

// Transition is the pure state machine: given the current lifecycle state,
// the current payment sub-state, and a requested event, it returns the next
// lifecycle and payment states, or a TransitionRejectedError when the
// event's required-state precondition does not hold. It performs no I/O.
func Transition(current Status, currentPay PayStatus, event Event) (Status, PayStatus, error) {
	rule, ok := getTransitionRules()[event]
	if !ok {
		return StatusUnknown, currentPay, NewTransitionRejectedError(event, current)
	}

	for _, from := range rule.from {
		if current == from {
			return rule.next, rule.pay(currentPay), nil
		}
	}

	return StatusUnknown, currentPay, NewTransitionRejectedError(event, current)
}
