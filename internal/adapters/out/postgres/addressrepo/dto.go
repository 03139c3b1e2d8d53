// Package addressrepo provides the GORM-backed view of the address-book
// table the order workflow reads when capturing a delivery snapshot.
package addressrepo

import (
	"takeaway/internal/core/domain/model/cart"
)

// AddressDTO represents one persisted address-book entry.
type AddressDTO struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	UserID       int64 `gorm:"index"`
	Consignee    string
	Phone        string
	ProvinceName string
	CityName     string
	DistrictName string
	Detail       string
}

// TableName specifies the database table name for address-book entries.
func (AddressDTO) TableName() string {
	return "address_books"
}

func toDomain(dto AddressDTO) cart.Address {
	return cart.Address{
		ID:           dto.ID,
		UserID:       dto.UserID,
		Consignee:    dto.Consignee,
		Phone:        dto.Phone,
		ProvinceName: dto.ProvinceName,
		CityName:     dto.CityName,
		DistrictName: dto.DistrictName,
		Detail:       dto.Detail,
	}
}
