package orderrepo

import (
	"context"
	"errors"
	"time"

	"takeaway/internal/core/domain/model/order"
	"takeaway/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its detail snapshot to the database and assigns
// the generated id back to the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, including its detail snapshot.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Details").First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateWithStatus saves the aggregate's state only if the stored row is
// still in the expected status. Returns false without error when no row
// matched, meaning a concurrent transition won the race.
//
// Zero-valued columns must still be written (a cleared pay status, for one),
// so the update selects its columns explicitly instead of relying on
// Updates' non-zero semantics. Details are immutable and never rewritten.
func (r *GormOrderRepository) UpdateWithStatus(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select(
			"Status",
			"PayStatus",
			"CheckoutTime",
			"DeliveryTime",
			"CancelTime",
			"CancelReason",
			"RejectionReason",
		).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return true, nil
}

// GetByStatusOlderThan retrieves all orders in the given status placed
// strictly before the cutoff time, with their detail snapshots.
func (r *GormOrderRepository) GetByStatusOlderThan(
	ctx context.Context,
	status order.Status,
	cutoff time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Details").
		Find(&dtos, "status = ? AND order_time < ?", int(status), cutoff).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// CountByStatus returns the number of orders currently in the status.
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ?", int(status)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
