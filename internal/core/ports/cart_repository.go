package ports

import (
	"context"

	"takeaway/internal/core/domain/model/cart"
)

// CartRepository exposes the shopping-cart collaborator at the boundary the
// order workflow needs: reading a user's cart at submission time and
// clearing it once the order is placed. Cart management itself lives
// outside this core.
type CartRepository interface {
	// GetByUserID retrieves all cart lines for the user, empty when the
	// cart is empty.
	GetByUserID(ctx context.Context, userID int64) ([]cart.Item, error)

	// ClearByUserID removes all cart lines for the user.
	ClearByUserID(ctx context.Context, userID int64) error
}

// AddressRepository exposes the address-book collaborator at the boundary
// the order workflow needs: resolving the delivery address snapshot at
// submission time.
type AddressRepository interface {
	// Get retrieves an address-book entry by its id.
	// Returns errs.ObjectNotFoundError when no such entry exists.
	Get(ctx context.Context, id int64) (cart.Address, error)
}
