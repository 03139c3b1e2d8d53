package cmd

import (
	"log/slog"

	httpadapter "takeaway/internal/adapters/in/http"
	"takeaway/internal/adapters/in/ws"
	"takeaway/internal/adapters/out/postgres"
	"takeaway/internal/core/application/usecases/commands"
	"takeaway/internal/core/application/usecases/queries"
	"takeaway/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        ws.NewHub(logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateWebSocketEndpoint() *ws.Endpoint {
	return ws.NewEndpoint(c.hub, c.logger)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.SubmitUoWFactory = FuncSubmitUoWFactory(func() commands.SubmitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory(), c.hub, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdminCancelOrderCommandHandler() commands.AdminCancelOrderCommandHandler {
	return commands.NewAdminCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelTimedOutOrdersCommandHandler() commands.CancelTimedOutOrdersCommandHandler {
	return commands.NewCancelTimedOutOrdersCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCompleteStalledDeliveriesCommandHandler() commands.CompleteStalledDeliveriesCommandHandler {
	return commands.NewCompleteStalledDeliveriesCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUserOrdersQueryHandler() queries.ListUserOrdersQueryHandler {
	return queries.NewListUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderStatisticsQueryHandler() queries.OrderStatisticsQueryHandler {
	return queries.NewOrderStatisticsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreatePayOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateConfirmOrderCommandHandler(),
		c.CreateRejectOrderCommandHandler(),
		c.CreateDispatchOrderCommandHandler(),
		c.CreateCompleteOrderCommandHandler(),
		c.CreateAdminCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListUserOrdersQueryHandler(),
		c.CreateSearchOrdersQueryHandler(),
		c.CreateOrderStatisticsQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCancelTimedOutOrdersCommandHandler(),
		c.CreateCompleteStalledDeliveriesCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSubmitUoWFactory func() commands.SubmitUoW

func (f FuncSubmitUoWFactory) Create() commands.SubmitUoW {
	return f()
}
