package commands

import (
	"context"
	"time"

	"takeaway/internal/core/domain/model/cart"
	"takeaway/internal/core/domain/model/order"
)

// SubmitOrderResult summarizes a freshly placed order for the caller.
type SubmitOrderResult struct {
	OrderID   int64
	Number    string
	Amount    int64
	OrderTime time.Time
}

// SubmitOrderCommandHandler handles the business logic for order placement.
// Resolves the delivery address, snapshots the user's cart into order
// details, and clears the cart, all within a single transaction.
type SubmitOrderCommandHandler struct {
	uowFactory SubmitUoWFactory
}

// NewSubmitOrderCommandHandler creates a handler for order placement.
// Requires a SubmitUoWFactory for transactional persistence across the
// order, cart, and address repositories.
func NewSubmitOrderCommandHandler(uowFactory SubmitUoWFactory) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
// Fails with an ObjectNotFoundError when the address-book entry is unknown
// and with ErrShoppingCartIsEmpty when there is nothing to order. The new
// order starts in PendingPayment with the payment sub-state Unpaid, and the
// detail snapshot's amounts sum to the order total.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SubmitOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	address, err := uow.AddressRepository().Get(ctx, cmd.AddressBookID())
	if err != nil {
		return SubmitOrderResult{}, err
	}

	cartRepo := uow.CartRepository()
	items, err := cartRepo.GetByUserID(ctx, cmd.UserID())
	if err != nil {
		return SubmitOrderResult{}, err
	}
	if len(items) == 0 {
		return SubmitOrderResult{}, ErrShoppingCartIsEmpty
	}

	details, err := detailsFromCart(items)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	aggregate, err := order.NewOrder(
		cmd.UserID(),
		address.ID,
		address.Consignee,
		address.Phone,
		address.FullAddress(),
		cmd.Remark(),
		details,
		time.Now(),
	)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return SubmitOrderResult{}, err
	}

	if err = cartRepo.ClearByUserID(ctx, cmd.UserID()); err != nil {
		return SubmitOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitOrderResult{}, err
	}

	return SubmitOrderResult{
		OrderID:   aggregate.ID(),
		Number:    aggregate.Number(),
		Amount:    aggregate.Amount(),
		OrderTime: aggregate.OrderTime(),
	}, nil
}

// detailsFromCart snapshots cart lines into immutable order details.
func detailsFromCart(items []cart.Item) ([]order.Detail, error) {
	details := make([]order.Detail, 0, len(items))
	for _, item := range items {
		detail, err := order.NewDetail(
			item.DishID,
			item.SetmealID,
			item.Name,
			item.Image,
			item.Flavor,
			item.Number,
			item.Amount,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, nil
}
