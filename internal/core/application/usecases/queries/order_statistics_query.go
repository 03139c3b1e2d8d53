// Package queries contains read-only operations over the order store.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing the
// domain aggregates.
package queries

import (
	"errors"

	"takeaway/internal/pkg/guard"
)

var ErrOrderStatisticsQueryIsNotConstructed = errors.New(
	"OrderStatisticsQuery must be created via NewOrderStatisticsQuery constructor",
)

// OrderStatisticsQuery requests the per-status order counts shown on the
// operator dashboard.
type OrderStatisticsQuery struct {
	guard guard.ConstructorGuard
}

// NewOrderStatisticsQuery creates a statistics query.
func NewOrderStatisticsQuery() OrderStatisticsQuery {
	return OrderStatisticsQuery{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q OrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrOrderStatisticsQueryIsNotConstructed)
}

// OrderStatisticsResponse carries the number of orders awaiting merchant
// confirmation, confirmed, and out for delivery. Terminal orders are not
// counted.
type OrderStatisticsResponse struct {
	ToBeConfirmed      int
	Confirmed          int
	DeliveryInProgress int
}
