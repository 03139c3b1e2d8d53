// Package cart holds the data crossing the boundary from the shopping-cart
// and address-book collaborators into the order workflow. Carts and address
// books are managed elsewhere; the workflow only reads them at submission
// time to build the order snapshot.
package cart

// Item is one shopping-cart line for a user: the item reference, its
// display snapshot, the chosen flavor, quantity, and the line total.
// Lines are validated when they are snapshotted into order details, not
// here: the cart is foreign data this service does not own.
type Item struct {
	UserID    int64
	DishID    *int64
	SetmealID *int64
	Name      string
	Image     string
	Flavor    string
	Number    int
	// Amount is the line total in cents (unit price times Number).
	Amount int64
}

// Address is the address-book entry a delivery snapshot is captured from.
type Address struct {
	ID           int64
	UserID       int64
	Consignee    string
	Phone        string
	ProvinceName string
	CityName     string
	DistrictName string
	Detail       string
}

// FullAddress composes the human-readable delivery address from its parts.
func (a Address) FullAddress() string {
	return a.ProvinceName + a.CityName + a.DistrictName + a.Detail
}
