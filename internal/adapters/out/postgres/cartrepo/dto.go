// Package cartrepo provides the GORM-backed view of the shopping-cart table
// the order workflow reads at submission time. The cart is owned by the
// shopping-cart service; this repository only reads and clears it.
package cartrepo

import (
	"takeaway/internal/core/domain/model/cart"
)

// CartItemDTO represents one persisted shopping-cart line.
type CartItemDTO struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"index"`
	DishID    *int64
	SetmealID *int64
	Name      string
	Image     string
	Flavor    string
	Number    int
	Amount    int64
}

// TableName specifies the database table name for shopping-cart lines.
func (CartItemDTO) TableName() string {
	return "shopping_carts"
}

func toDomain(dto CartItemDTO) cart.Item {
	return cart.Item{
		UserID:    dto.UserID,
		DishID:    dto.DishID,
		SetmealID: dto.SetmealID,
		Name:      dto.Name,
		Image:     dto.Image,
		Flavor:    dto.Flavor,
		Number:    dto.Number,
		Amount:    dto.Amount,
	}
}
