package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "takeaway/internal/adapters/out/postgres"
	"takeaway/internal/adapters/out/postgres/addressrepo"
	"takeaway/internal/adapters/out/postgres/cartrepo"
	"takeaway/internal/adapters/out/postgres/orderrepo"
	"takeaway/internal/core/domain/model/order"
	"takeaway/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.DetailDTO{},
		&cartrepo.CartItemDTO{},
		&addressrepo.AddressDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_details, shopping_carts, address_books").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) seedCartAndAddress(userID int64) {
	dishID := int64(11)
	suite.Require().NoError(suite.db.Create(&cartrepo.CartItemDTO{
		UserID: userID,
		DishID: &dishID,
		Name:   "Mapo Tofu",
		Number: 1,
		Amount: 2800,
	}).Error)

	suite.Require().NoError(suite.db.Create(&addressrepo.AddressDTO{
		ID:           5,
		UserID:       userID,
		Consignee:    "Bob",
		Phone:        "13900000000",
		ProvinceName: "Province",
		CityName:     "City",
		DistrictName: "District",
		Detail:       "2 Side St",
	}).Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) buildOrderFromCart(
	ctx context.Context, uow ports.UnitOfWork, userID int64,
) *order.Order {
	address, err := uow.AddressRepository().Get(ctx, 5)
	suite.Require().NoError(err)

	items, err := uow.CartRepository().GetByUserID(ctx, userID)
	suite.Require().NoError(err)
	suite.Require().NotEmpty(items)

	details := make([]order.Detail, 0, len(items))
	for _, item := range items {
		detail, detailErr := order.NewDetail(
			item.DishID, item.SetmealID, item.Name, item.Image, item.Flavor, item.Number, item.Amount,
		)
		suite.Require().NoError(detailErr)
		details = append(details, detail)
	}

	aggregate, err := order.NewOrder(
		userID, address.ID, address.Consignee, address.Phone, address.FullAddress(),
		"", details, time.Now(),
	)
	suite.Require().NoError(err)
	return aggregate
}

// TestCommit_SubmitFlow_PersistsOrderAndClearsCart exercises the full
// submission sequence inside one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_SubmitFlow_PersistsOrderAndClearsCart() {
	ctx := context.Background()
	const userID = int64(42)
	suite.seedCartAndAddress(userID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.buildOrderFromCart(ctx, uow, userID)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.CartRepository().ClearByUserID(ctx, userID))
	suite.Require().NoError(uow.Commit(ctx))

	var orderCount, cartCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&cartrepo.CartItemDTO{}).Count(&cartCount).Error)
	suite.Equal(int64(1), orderCount)
	suite.Equal(int64(0), cartCount)
}

// TestRollback_SubmitFlow_LeavesNothingBehind verifies the atomicity of the
// submission sequence: rolling back restores both order and cart state.
func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_SubmitFlow_LeavesNothingBehind() {
	ctx := context.Background()
	const userID = int64(42)
	suite.seedCartAndAddress(userID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.buildOrderFromCart(ctx, uow, userID)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.CartRepository().ClearByUserID(ctx, userID))
	suite.Require().NoError(uow.Rollback(ctx))

	var orderCount, cartCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&cartrepo.CartItemDTO{}).Count(&cartCount).Error)
	suite.Equal(int64(0), orderCount)
	suite.Equal(int64(1), cartCount)
}

// TestCommit_WithoutBegin_ReturnsError verifies transaction lifecycle guards.
func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

// TestConcurrentUnits_AreIsolated verifies two units of work do not share
// transaction state.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentUnits_AreIsolated() {
	ctx := context.Background()
	const userID = int64(42)
	suite.seedCartAndAddress(userID)

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))

	aggregate := suite.buildOrderFromCart(ctx, first, userID)
	suite.Require().NoError(first.OrderRepository().Add(ctx, aggregate))

	suite.Require().NoError(second.Rollback(ctx))
	suite.Require().NoError(first.Commit(ctx))

	var orderCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Equal(int64(1), orderCount)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
