package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// ListUserOrdersQueryHandler pages through one user's order history,
// newest first, with the line items of each order attached.
type ListUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListUserOrdersQueryHandler creates a handler for history queries.
func NewListUserOrdersQueryHandler(db *gorm.DB) ListUserOrdersQueryHandler {
	return ListUserOrdersQueryHandler{db: db}
}

// Handle executes the history query. An empty page is a valid result,
// not an error.
func (h ListUserOrdersQueryHandler) Handle(ctx context.Context, query ListUserOrdersQuery) (OrderPageResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderPageResponse{}, err
	}

	var resp OrderPageResponse

	countSQL := `SELECT COUNT(*) FROM orders WHERE user_id = ?`
	countArgs := []any{query.UserID()}
	if query.Status() != 0 {
		countSQL += ` AND status = ?`
		countArgs = append(countArgs, query.Status())
	}

	if err := h.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&resp.Total).Error; err != nil {
		return OrderPageResponse{}, err
	}

	pageSQL := `
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
		WHERE user_id = ?
	`
	pageArgs := []any{query.UserID()}
	if query.Status() != 0 {
		pageSQL += ` AND status = ?`
		pageArgs = append(pageArgs, query.Status())
	}
	pageSQL += ` ORDER BY order_time DESC LIMIT ? OFFSET ?`
	pageArgs = append(pageArgs, query.PageSize(), (query.Page()-1)*query.PageSize())

	rows, err := h.db.WithContext(ctx).Raw(pageSQL, pageArgs...).Rows()
	if err != nil {
		return OrderPageResponse{}, err
	}
	defer rows.Close()

	resp.Records = make([]OrderResponse, 0)
	for rows.Next() {
		var record OrderResponse
		var checkoutTime, deliveryTime, cancelTime sql.NullTime

		err = rows.Scan(
			&record.ID,
			&record.Number,
			&record.Status,
			&record.PayStatus,
			&record.UserID,
			&record.Consignee,
			&record.Phone,
			&record.Address,
			&record.Amount,
			&record.Remark,
			&record.OrderTime,
			&checkoutTime,
			&deliveryTime,
			&cancelTime,
			&record.CancelReason,
			&record.RejectionReason,
		)
		if err != nil {
			return OrderPageResponse{}, err
		}

		if checkoutTime.Valid {
			record.CheckoutTime = &checkoutTime.Time
		}
		if deliveryTime.Valid {
			record.DeliveryTime = &deliveryTime.Time
		}
		if cancelTime.Valid {
			record.CancelTime = &cancelTime.Time
		}

		resp.Records = append(resp.Records, record)
	}

	if err = rows.Err(); err != nil {
		return OrderPageResponse{}, err
	}

	detailLoader := NewGetOrderQueryHandler(h.db)
	for i := range resp.Records {
		details, dishes, err := detailLoader.loadDetails(ctx, resp.Records[i].ID)
		if err != nil {
			return OrderPageResponse{}, err
		}
		resp.Records[i].Details = details
		resp.Records[i].Dishes = dishes
	}

	return resp, nil
}
