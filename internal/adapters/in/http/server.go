// Package http exposes the order workflow over REST. User endpoints act on
// behalf of the caller identified by the X-User-Id header; admin endpoints
// drive merchant-side transitions and have no ownership restriction.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"takeaway/internal/core/application/usecases/commands"
	"takeaway/internal/core/application/usecases/queries"
	"takeaway/internal/core/domain/model/order"
	"takeaway/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// userIDHeader carries the authenticated user's id, set by the auth gateway
// in front of this service.
const userIDHeader = "X-User-Id"

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler      commands.SubmitOrderCommandHandler
	payOrderHandler         commands.PayOrderCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	confirmOrderHandler     commands.ConfirmOrderCommandHandler
	rejectOrderHandler      commands.RejectOrderCommandHandler
	dispatchOrderHandler    commands.DispatchOrderCommandHandler
	completeOrderHandler    commands.CompleteOrderCommandHandler
	adminCancelOrderHandler commands.AdminCancelOrderCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	listUserOrdersHandler  queries.ListUserOrdersQueryHandler
	searchOrdersHandler    queries.SearchOrdersQueryHandler
	orderStatisticsHandler queries.OrderStatisticsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	payOrderHandler commands.PayOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	adminCancelOrderHandler commands.AdminCancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listUserOrdersHandler queries.ListUserOrdersQueryHandler,
	searchOrdersHandler queries.SearchOrdersQueryHandler,
	orderStatisticsHandler queries.OrderStatisticsQueryHandler,
) *Server {
	return &Server{
		submitOrderHandler:      submitOrderHandler,
		payOrderHandler:         payOrderHandler,
		cancelOrderHandler:      cancelOrderHandler,
		confirmOrderHandler:     confirmOrderHandler,
		rejectOrderHandler:      rejectOrderHandler,
		dispatchOrderHandler:    dispatchOrderHandler,
		completeOrderHandler:    completeOrderHandler,
		adminCancelOrderHandler: adminCancelOrderHandler,
		getOrderHandler:         getOrderHandler,
		listUserOrdersHandler:   listUserOrdersHandler,
		searchOrdersHandler:     searchOrdersHandler,
		orderStatisticsHandler:  orderStatisticsHandler,
	}
}

// RegisterRoutes attaches all order endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	user := e.Group("/api/user/orders")
	user.POST("", s.SubmitOrder)
	user.GET("", s.ListUserOrders)
	user.GET("/:id", s.GetUserOrder)
	user.PUT("/:id/payment", s.PayOrder)
	user.PUT("/:id/cancellation", s.CancelOrder)

	admin := e.Group("/api/admin/orders")
	admin.GET("", s.SearchOrders)
	admin.GET("/statistics", s.GetOrderStatistics)
	admin.GET("/:id", s.GetAdminOrder)
	admin.PUT("/:id/confirmation", s.ConfirmOrder)
	admin.PUT("/:id/rejection", s.RejectOrder)
	admin.PUT("/:id/delivery", s.DispatchOrder)
	admin.PUT("/:id/completion", s.CompleteOrder)
	admin.PUT("/:id/cancellation", s.AdminCancelOrder)
}

// SubmitOrderRequest is the body of POST /api/user/orders.
type SubmitOrderRequest struct {
	AddressBookID int64  `json:"addressBookId"`
	Remark        string `json:"remark"`
}

// SubmitOrderResponse is returned after a successful submission.
type SubmitOrderResponse struct {
	ID        int64  `json:"id"`
	Number    string `json:"orderNumber"`
	Amount    int64  `json:"orderAmount"`
	OrderTime string `json:"orderTime"`
}

// RejectOrderRequest is the body of PUT /api/admin/orders/:id/rejection.
type RejectOrderRequest struct {
	Reason string `json:"rejectionReason"`
}

// AdminCancelOrderRequest is the body of PUT /api/admin/orders/:id/cancellation.
type AdminCancelOrderRequest struct {
	Reason string `json:"cancelReason"`
}

// SubmitOrder handles POST /api/user/orders - places an order from the
// caller's shopping cart.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	var req SubmitOrderRequest
	if bindErr := ctx.Bind(&req); bindErr != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSubmitOrderCommand(userID, req.AddressBookID, req.Remark)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	result, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SubmitOrderResponse{
		ID:        result.OrderID,
		Number:    result.Number,
		Amount:    result.Amount,
		OrderTime: result.OrderTime.Format("2006-01-02 15:04:05"),
	})
}

// PayOrder handles PUT /api/user/orders/:id/payment - confirms payment for
// the caller's order.
func (s *Server) PayOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewPayOrderCommand(orderID, userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.payOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles PUT /api/user/orders/:id/cancellation - cancels the
// caller's own order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListUserOrders handles GET /api/user/orders - pages through the caller's
// order history, newest first.
func (s *Server) ListUserOrders(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	pageSize, _ := strconv.Atoi(ctx.QueryParam("pageSize"))
	status, _ := strconv.Atoi(ctx.QueryParam("status"))

	query, err := queries.NewListUserOrdersQuery(userID, status, page, pageSize)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.listUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetUserOrder handles GET /api/user/orders/:id - the caller's view of one
// order.
func (s *Server) GetUserOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	return s.getOrder(ctx, userID)
}

// GetAdminOrder handles GET /api/admin/orders/:id - the merchant view of one
// order, with no ownership restriction.
func (s *Server) GetAdminOrder(ctx echo.Context) error {
	return s.getOrder(ctx, 0)
}

// SearchOrders handles GET /api/admin/orders - the workbench listing of
// orders across all users, optionally filtered by status and user.
func (s *Server) SearchOrders(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	pageSize, _ := strconv.Atoi(ctx.QueryParam("pageSize"))
	status, _ := strconv.Atoi(ctx.QueryParam("status"))
	userID, _ := strconv.ParseInt(ctx.QueryParam("userId"), 10, 64)

	query, err := queries.NewSearchOrdersQuery(status, userID, page, pageSize)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to search orders")
	}

	return ctx.JSON(http.StatusOK, result)
}

func (s *Server) getOrder(ctx echo.Context, userID int64) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID, userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// ConfirmOrder handles PUT /api/admin/orders/:id/confirmation - the merchant
// accepts a paid order.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles PUT /api/admin/orders/:id/rejection - the merchant
// declines a paid order, refunding it.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return err
	}

	var req RejectOrderRequest
	if bindErr := ctx.Bind(&req); bindErr != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrder handles PUT /api/admin/orders/:id/delivery - hands the order
// to a courier.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles PUT /api/admin/orders/:id/completion - records a
// finished delivery.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdminCancelOrder handles PUT /api/admin/orders/:id/cancellation - the
// merchant cancels an order with a recorded reason.
func (s *Server) AdminCancelOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return err
	}

	var req AdminCancelOrderRequest
	if bindErr := ctx.Bind(&req); bindErr != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdminCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.adminCancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderStatistics handles GET /api/admin/orders/statistics - counts of
// orders in the merchant-actionable states.
func (s *Server) GetOrderStatistics(ctx echo.Context) error {
	result, err := s.orderStatisticsHandler.Handle(
		ctx.Request().Context(), queries.NewOrderStatisticsQuery(),
	)
	if err != nil {
		return internalError(ctx, "Failed to retrieve statistics")
	}

	return ctx.JSON(http.StatusOK, result)
}

// callerID extracts the authenticated user id from the request headers.
func callerID(ctx echo.Context) (int64, error) {
	raw := ctx.Request().Header.Get(userIDHeader)
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing or invalid " + userIDHeader + " header",
		})
	}
	return userID, nil
}

func pathOrderID(ctx echo.Context) (int64, error) {
	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		return 0, badRequest(ctx, "Invalid order id")
	}
	return orderID, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// commandError maps the use-case error taxonomy onto HTTP status codes.
func commandError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrNotOrderOwner), errors.Is(err, queries.ErrNotOrderOwner):
		status = http.StatusForbidden
	case errors.Is(err, order.ErrTransitionRejected):
		status = http.StatusConflict
	case errors.Is(err, commands.ErrConcurrentUpdate):
		status = http.StatusConflict
	case errors.Is(err, commands.ErrShoppingCartIsEmpty):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
