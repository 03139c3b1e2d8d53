package ports

import (
	"context"
	"time"

	"takeaway/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All order state mutation flows through it; UpdateWithStatus is the
// conditional write the workflow relies on to detect lost races.
type OrderRepository interface {
	// Add persists a new order aggregate and its detail snapshot, and
	// assigns the generated id to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its id, including details.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// UpdateWithStatus persists the aggregate's state only if the stored
	// status still equals expected. Returns false without error when the
	// conditional write matched no row, meaning a concurrent transition
	// landed first and the caller must re-read and re-decide.
	UpdateWithStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)

	// GetByStatusOlderThan retrieves all orders in the given status placed
	// before the cutoff time. Used by the reconciliation sweeps.
	GetByStatusOlderThan(ctx context.Context, status order.Status, cutoff time.Time) ([]*order.Order, error)

	// CountByStatus returns the number of orders currently in the status.
	CountByStatus(ctx context.Context, status order.Status) (int, error)
}
