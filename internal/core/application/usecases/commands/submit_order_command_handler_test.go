package commands_test

import (
	"errors"
	"testing"

	"takeaway/internal/core/application/usecases/commands"
	"takeaway/internal/core/domain/model/cart"
	"takeaway/internal/core/domain/model/order"
	"takeaway/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAddress() cart.Address {
	return cart.Address{
		ID:           3,
		UserID:       42,
		Consignee:    "Alice",
		Phone:        "13800000000",
		ProvinceName: "Province",
		CityName:     "City",
		DistrictName: "District",
		Detail:       "1 Main St",
	}
}

func testCartItems() []cart.Item {
	dishID := int64(7)
	setmealID := int64(2)
	return []cart.Item{
		{UserID: 42, DishID: &dishID, Name: "Kung Pao Chicken", Flavor: "mild", Number: 2, Amount: 5600},
		{UserID: 42, SetmealID: &setmealID, Name: "Family Combo", Number: 1, Amount: 8800},
	}
}

func TestSubmitOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(42, 3, "no onions")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	addressRepo := new(MockAddressRepository)
	uow := new(MockSubmitUoW)

	var saved *order.Order
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AddressRepository").Return(addressRepo).Once(),
		addressRepo.On("Get", mock.Anything, int64(3)).Return(testAddress(), nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByUserID", mock.Anything, int64(42)).Return(testCartItems(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*order.Order)
				require.NoError(t, saved.AssignID(101))
			}).Return(nil).Once(),
		cartRepo.On("ClearByUserID", mock.Anything, int64(42)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// One detail line per cart line, total is the sum of line amounts.
	require.NotNil(t, saved)
	assert.Len(t, saved.Details(), 2)
	assert.Equal(t, order.PendingPayment, saved.Status())
	assert.Equal(t, order.Unpaid, saved.PayStatus())
	assert.Equal(t, int64(14400), saved.Amount())
	assert.Equal(t, "Alice", saved.Consignee())
	assert.Equal(t, "ProvinceCityDistrict1 Main St", saved.Address())
	assert.Equal(t, "no onions", saved.Remark())

	assert.Equal(t, int64(101), result.OrderID)
	assert.Equal(t, saved.Number(), result.Number)
	assert.Equal(t, int64(14400), result.Amount)

	orderRepo.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	addressRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_EmptyCart(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(42, 3, "")
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	addressRepo := new(MockAddressRepository)
	uow := new(MockSubmitUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AddressRepository").Return(addressRepo).Once(),
		addressRepo.On("Get", mock.Anything, int64(3)).Return(testAddress(), nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByUserID", mock.Anything, int64(42)).Return([]cart.Item{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, commands.ErrShoppingCartIsEmpty)
	uow.AssertExpectations(t)
}

// Cart lines are foreign data; a corrupt line is caught when it is
// snapshotted into an order detail and the whole submission rolls back.
func TestSubmitOrderCommandHandler_Handle_InvalidCartLine(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(42, 3, "")
	require.NoError(t, err)

	// Neither dish nor set meal referenced.
	badLine := []cart.Item{{UserID: 42, Name: "Orphan Line", Number: 1, Amount: 500}}

	cartRepo := new(MockCartRepository)
	addressRepo := new(MockAddressRepository)
	uow := new(MockSubmitUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AddressRepository").Return(addressRepo).Once(),
		addressRepo.On("Get", mock.Anything, int64(3)).Return(testAddress(), nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByUserID", mock.Anything, int64(42)).Return(badLine, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_UnknownAddress(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(42, 99, "")
	require.NoError(t, err)

	addressRepo := new(MockAddressRepository)
	uow := new(MockSubmitUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AddressRepository").Return(addressRepo).Once(),
		addressRepo.On("Get", mock.Anything, int64(99)).
			Return(cart.Address{}, errs.NewObjectNotFoundError("address book entry", int64(99))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_AddErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(42, 3, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	addressRepo := new(MockAddressRepository)
	uow := new(MockSubmitUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AddressRepository").Return(addressRepo).Once(),
		addressRepo.On("Get", mock.Anything, int64(3)).Return(testAddress(), nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByUserID", mock.Anything, int64(42)).Return(testCartItems(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockSubmitUoWFactory)
	h := commands.NewSubmitOrderCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.SubmitOrderCommand{})
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
