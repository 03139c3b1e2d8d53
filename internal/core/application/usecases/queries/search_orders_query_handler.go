package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// SearchOrdersQueryHandler pages through orders across all users for the
// operator workbench, newest first, with the line items and the dishes
// summary of each order attached.
type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

// NewSearchOrdersQueryHandler creates a handler for workbench searches.
func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

// Handle executes the search. An empty page is a valid result, not an error.
func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) (OrderPageResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderPageResponse{}, err
	}

	var resp OrderPageResponse

	where, args := searchFilter(query)

	if err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM orders`+where, args...).
		Scan(&resp.Total).Error; err != nil {
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
	` + where + ` ORDER BY order_time DESC LIMIT ? OFFSET ?`
	pageArgs := append(args, query.PageSize(), (query.Page()-1)*query.PageSize())

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

// searchFilter builds the WHERE clause shared by the count and page
// queries from the optional status and user filters.
func searchFilter(query SearchOrdersQuery) (string, []any) {
	where := ""
	args := make([]any, 0, 2)

	appendCond := func(cond string, arg any) {
		if where == "" {
			where = ` WHERE ` + cond
		} else {
			where += ` AND ` + cond
		}
		args = append(args, arg)
	}

	if query.Status() != 0 {
		appendCond(`status = ?`, query.Status())
	}
	if query.UserID() != 0 {
		appendCond(`user_id = ?`, query.UserID())
	}

	return where, args
}
