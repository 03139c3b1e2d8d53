// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"database/sql"
	"time"

	"takeaway/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexing for
// the status/order_time scans the reconciliation sweeps run.
type OrderDTO struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Number        string `gorm:"index"`
	Status        int    `gorm:"index:idx_orders_status_order_time"`
	PayStatus     int
	UserID        int64 `gorm:"index"`
	AddressBookID int64
	Consignee     string
	Phone         string
	Address       string
	Amount        int64
	Remark        string
	OrderTime     time.Time `gorm:"index:idx_orders_status_order_time"`
	CheckoutTime  sql.NullTime
	DeliveryTime  sql.NullTime
	CancelTime    sql.NullTime

	CancelReason    string
	RejectionReason string

	Details []DetailDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// DetailDTO represents one persisted order line item. Rows are written once
// at submission and never updated.
type DetailDTO struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	OrderID   int64 `gorm:"index"`
	DishID    *int64
	SetmealID *int64
	Name      string
	Image     string
	Flavor    string
	Number    int
	Amount    int64
}

// TableName specifies the database table name for order line items.
func (DetailDTO) TableName() string {
	return "order_details"
}

// fromDomain converts an order domain aggregate to its database
// representation, including the detail snapshot.
func fromDomain(aggregate *order.Order) OrderDTO {
	details := make([]DetailDTO, 0, len(aggregate.Details()))
	for _, d := range aggregate.Details() {
		details = append(details, DetailDTO{
			OrderID:   aggregate.ID(),
			DishID:    d.DishID(),
			SetmealID: d.SetmealID(),
			Name:      d.Name(),
			Image:     d.Image(),
			Flavor:    d.Flavor(),
			Number:    d.Number(),
			Amount:    d.Amount(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID(),
		Number:          aggregate.Number(),
		Status:          int(aggregate.Status()),
		PayStatus:       int(aggregate.PayStatus()),
		UserID:          aggregate.UserID(),
		AddressBookID:   aggregate.AddressBookID(),
		Consignee:       aggregate.Consignee(),
		Phone:           aggregate.Phone(),
		Address:         aggregate.Address(),
		Amount:          aggregate.Amount(),
		Remark:          aggregate.Remark(),
		OrderTime:       aggregate.OrderTime(),
		CheckoutTime:    nullTime(aggregate.CheckoutTime()),
		DeliveryTime:    nullTime(aggregate.DeliveryTime()),
		CancelTime:      nullTime(aggregate.CancelTime()),
		CancelReason:    aggregate.CancelReason(),
		RejectionReason: aggregate.RejectionReason(),
		Details:         details,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the detail snapshot using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	details := make([]order.Detail, 0, len(dto.Details))
	for _, d := range dto.Details {
		detail, err := order.NewDetail(d.DishID, d.SetmealID, d.Name, d.Image, d.Flavor, d.Number, d.Amount)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:              dto.ID,
		Number:          dto.Number,
		Status:          order.Status(dto.Status),
		PayStatus:       order.PayStatus(dto.PayStatus),
		UserID:          dto.UserID,
		AddressBookID:   dto.AddressBookID,
		Consignee:       dto.Consignee,
		Phone:           dto.Phone,
		Address:         dto.Address,
		Amount:          dto.Amount,
		Remark:          dto.Remark,
		OrderTime:       dto.OrderTime,
		CheckoutTime:    timePtr(dto.CheckoutTime),
		DeliveryTime:    timePtr(dto.DeliveryTime),
		CancelTime:      timePtr(dto.CancelTime),
		CancelReason:    dto.CancelReason,
		RejectionReason: dto.RejectionReason,
		Details:         details,
	})
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
