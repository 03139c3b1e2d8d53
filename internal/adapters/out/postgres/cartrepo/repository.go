package cartrepo

import (
	"context"

	"takeaway/internal/core/domain/model/cart"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetByUserID retrieves all cart lines for the user. An empty cart yields
// an empty slice, not an error.
func (r *GormCartRepository) GetByUserID(ctx context.Context, userID int64) ([]cart.Item, error) {
	var dtos []CartItemDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, toDomain(dto))
	}

	return items, nil
}

// ClearByUserID removes all cart lines for the user.
func (r *GormCartRepository) ClearByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&CartItemDTO{}).Error
}
