package queries

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"takeaway/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves the full detail of one order, including
// its ordering-time line item snapshot.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the detail query. Returns an ObjectNotFoundError when the
// order does not exist and ErrNotOrderOwner when a user queries an order
// they do not own.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var resp OrderResponse
	var checkoutTime, deliveryTime, cancelTime sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			pay_status,
			user_id,
			consignee,
			phone,
			address,
			amount,
			remark,
			order_time,
			checkout_time,
			delivery_time,
			cancel_time,
			cancel_reason,
			rejection_reason
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Row()

	err := row.Scan(
		&resp.ID,
		&resp.Number,
		&resp.Status,
		&resp.PayStatus,
		&resp.UserID,
		&resp.Consignee,
		&resp.Phone,
		&resp.Address,
		&resp.Amount,
		&resp.Remark,
		&resp.OrderTime,
		&checkoutTime,
		&deliveryTime,
		&cancelTime,
		&resp.CancelReason,
		&resp.RejectionReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return OrderResponse{}, err
	}

	if query.UserID() != 0 && resp.UserID != query.UserID() {
		return OrderResponse{}, ErrNotOrderOwner
	}

	if checkoutTime.Valid {
		resp.CheckoutTime = &checkoutTime.Time
	}
	if deliveryTime.Valid {
		resp.DeliveryTime = &deliveryTime.Time
	}
	if cancelTime.Valid {
		resp.CancelTime = &cancelTime.Time
	}

	details, dishes, err := h.loadDetails(ctx, resp.ID)
	if err != nil {
		return OrderResponse{}, err
	}
	resp.Details = details
	resp.Dishes = dishes

	return resp, nil
}

// loadDetails fetches the line items for one order and the "name*qty;"
// summary string shown in list views.
func (h GetOrderQueryHandler) loadDetails(ctx context.Context, orderID int64) ([]OrderDetailLine, string, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			image,
			flavor,
			number,
			amount
		FROM order_details
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	details := make([]OrderDetailLine, 0)
	var dishes strings.Builder
	for rows.Next() {
		var line OrderDetailLine
		if err = rows.Scan(&line.Name, &line.Image, &line.Flavor, &line.Number, &line.Amount); err != nil {
			return nil, "", err
		}

		fmtDishSummary(&dishes, line)
		details = append(details, line)
	}

	if err = rows.Err(); err != nil {
		return nil, "", err
	}

	return details, dishes.String(), nil
}

func fmtDishSummary(b *strings.Builder, line OrderDetailLine) {
	b.WriteString(line.Name)
	b.WriteByte('*')
	b.WriteString(strconv.Itoa(line.Number))
	b.WriteByte(';')
}
