package addressrepo

import (
	"context"
	"errors"

	"takeaway/internal/core/domain/model/cart"
	"takeaway/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// Get retrieves an address-book entry by ID.
func (r *GormAddressRepository) Get(ctx context.Context, id int64) (cart.Address, error) {
	var dto AddressDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.Address{}, errs.NewObjectNotFoundError("address book entry", id)
		}
		return cart.Address{}, err
	}

	return toDomain(dto), nil
}
