package queries

import (
	"context"

	"takeaway/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// OrderStatisticsQueryHandler counts active orders per lifecycle state for
// the operator dashboard. Read-only aggregate with no transition semantics.
type OrderStatisticsQueryHandler struct {
	db *gorm.DB
}

// NewOrderStatisticsQueryHandler creates a handler for order statistics.
// Requires a GORM database connection for query execution.
func NewOrderStatisticsQueryHandler(db *gorm.DB) OrderStatisticsQueryHandler {
	return OrderStatisticsQueryHandler{db: db}
}

// Handle executes the statistics query, counting orders in ToBeConfirmed,
// Confirmed, and DeliveryInProgress.
func (h OrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query OrderStatisticsQuery,
) (OrderStatisticsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderStatisticsResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		WHERE status IN (?, ?, ?)
		GROUP BY status
	`, order.ToBeConfirmed, order.Confirmed, order.DeliveryInProgress).Rows()
	if err != nil {
		return OrderStatisticsResponse{}, err
	}
	defer rows.Close()

	var response OrderStatisticsResponse
	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return OrderStatisticsResponse{}, err
		}

		switch order.Status(status) {
		case order.ToBeConfirmed:
			response.ToBeConfirmed = count
		case order.Confirmed:
			response.Confirmed = count
		case order.DeliveryInProgress:
			response.DeliveryInProgress = count
		}
	}

	if err = rows.Err(); err != nil {
		return OrderStatisticsResponse{}, err
	}

	return response, nil
}
