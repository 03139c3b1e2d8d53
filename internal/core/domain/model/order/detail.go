package order

import (
	"errors"

	"takeaway/internal/pkg/errs"
)

var (
	// ErrDetailIsNotConstructed is returned when a Detail instance was not
	// created through the NewDetail factory method.
	ErrDetailIsNotConstructed = errors.New("Detail must be created via NewDetail constructor")
)

// Detail is one line item of an order: an ordering-time snapshot of a cart
// line. Details are created once at submission and never mutated afterward,
// so later changes to the menu do not rewrite order history.
type Detail struct {
	// dishID or setmealID references the purchased item; exactly one is set
	dishID    *int64
	setmealID *int64

	// name and image are snapshots of the item at ordering time
	name  string
	image string

	// flavor is the chosen flavor description, may be empty
	flavor string

	// number is the purchased quantity (must be positive)
	number int

	// amount is the line total in cents
	amount int64

	isConstructed bool
}

// NewDetail creates a validated order line snapshot. Exactly one of dishID
// and setmealID must be non-nil, name must be set, number must be positive
// and amount non-negative.
func NewDetail(dishID, setmealID *int64, name, image, flavor string, number int, amount int64) (Detail, error) {
	if (dishID == nil) == (setmealID == nil) {
		return Detail{}, errs.NewValueIsInvalidError("detail must reference exactly one dish or set meal")
	}
	if name == "" {
		return Detail{}, errs.NewValueIsRequiredError("detail name")
	}
	if number <= 0 {
		return Detail{}, errs.NewValueIsOutOfRangeError("detail number", number, 1, nil)
	}
	if amount < 0 {
		return Detail{}, errs.NewValueIsOutOfRangeError("detail amount", amount, 0, nil)
	}

	return Detail{
		dishID:        dishID,
		setmealID:     setmealID,
		name:          name,
		image:         image,
		flavor:        flavor,
		number:        number,
		amount:        amount,
		isConstructed: true,
	}, nil
}

// Validate ensures the Detail instance was properly constructed.
func (d Detail) Validate() error {
	if !d.isConstructed {
		return ErrDetailIsNotConstructed
	}
	return nil
}

// DishID returns the referenced dish id, nil for set meal lines.
func (d Detail) DishID() *int64 {
	return d.dishID
}

// SetmealID returns the referenced set meal id, nil for dish lines.
func (d Detail) SetmealID() *int64 {
	return d.setmealID
}

// Name returns the snapshotted item name.
func (d Detail) Name() string {
	return d.name
}

// Image returns the snapshotted item image reference.
func (d Detail) Image() string {
	return d.image
}

// Flavor returns the chosen flavor description.
func (d Detail) Flavor() string {
	return d.flavor
}

// Number returns the purchased quantity.
func (d Detail) Number() int {
	return d.number
}

// Amount returns the line total in cents.
func (d Detail) Amount() int64 {
	return d.amount
}
