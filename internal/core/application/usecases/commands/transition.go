package commands

import (
	"context"
	"errors"

	"takeaway/internal/core/domain/model/order"
)

// maxTransitionAttempts bounds the read-decide-write retries when the
// conditional update loses a race.
const maxTransitionAttempts = 3

var (
	// ErrNotOrderOwner is returned when a user-triggered operation targets
	// an order owned by a different user.
	ErrNotOrderOwner = errors.New("order does not belong to the current user")

	// ErrConcurrentUpdate is returned after the conditional write lost the
	// race on every attempt. The caller may simply try again.
	ErrConcurrentUpdate = errors.New("order was modified concurrently, please try again")
)

// applyTransition is the shared read-decide-write cycle behind every state
// transition command. Each attempt loads the order, lets mutate run the
// domain transition (including any ownership check), and persists the
// result with a conditional write keyed on the status the decision was
// based on. A lost race re-reads and re-decides; rejections surface
// immediately and leave no partial writes.
func applyTransition(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID int64,
	mutate func(*order.Order) error,
) (*order.Order, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		aggregate, committed, err := attemptTransition(ctx, uowFactory.Create(), orderID, mutate)
		if err != nil {
			return nil, err
		}
		if committed {
			return aggregate, nil
		}
	}

	return nil, ErrConcurrentUpdate
}

// attemptTransition runs one cycle. The bool result reports whether the
// conditional write matched; false with a nil error means the stored status
// moved under us and the caller should retry with fresh state.
func attemptTransition(
	ctx context.Context,
	uow OrderUoW,
	orderID int64,
	mutate func(*order.Order) error,
) (*order.Order, bool, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	expected := aggregate.Status()
	if err = mutate(aggregate); err != nil {
		return nil, false, err
	}

	updated, err := repo.UpdateWithStatus(ctx, aggregate, expected)
	if err != nil {
		return nil, false, err
	}
	if !updated {
		return nil, false, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return aggregate, true, nil
}
