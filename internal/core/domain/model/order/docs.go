// Package order provides the domain model for the order lifecycle.
//
// The package includes:
//   - Order: the aggregate root carrying identity, the address and line-item
//     snapshots, payment sub-state, and per-transition timestamps
//   - Status / PayStatus: the persisted lifecycle and payment enumerations
//   - Event and Transition: the pure state machine deciding, without I/O,
//     whether a requested event is allowed from the current state
//   - Detail: the immutable ordering-time snapshot of one cart line
//
// Key business rules:
//   - Orders start in PendingPayment/Unpaid and move forward along
//     pay -> confirm -> dispatch -> complete; Cancelled absorbs orders from
//     PendingPayment or ToBeConfirmed (and from any non-terminal state for
//     admin cancels)
//   - Payment becomes Paid only while PendingPayment and Refunded only from
//     Paid, when a paid order is rejected or cancelled
//   - Completed and Cancelled orders accept no further mutation
//   - The timeout-cancel path never refunds: unpaid orders carry no payment
package order
