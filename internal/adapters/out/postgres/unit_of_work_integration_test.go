package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "distribops/internal/adapters/out/postgres"
	"distribops/internal/adapters/out/postgres/deliveryrepo"
	"distribops/internal/adapters/out/postgres/orderrepo"
	"distribops/internal/adapters/out/postgres/outboxrepo"
	"distribops/internal/adapters/out/postgres/returnrepo"
	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/domain/model/product"
	"distribops/internal/core/domain/model/returnorder"
	"distribops/internal/core/ports"
	"distribops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based Unit of Work and
// all four repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all
// tests. Runs database migrations to prepare the schema.
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&returnrepo.ReturnOrderDTO{}, &returnrepo.ReturnOrderItemDTO{},
		&deliveryrepo.DeliveryDTO{}, &deliveryrepo.StatusUpdateDTO{},
		&outboxrepo.MessageDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, return_orders, return_order_items, " +
			"deliveries, delivery_status_updates, outbox_messages",
	).Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.ReturnOrderRepository())
	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow1.OutboxRepository())
	suite.NotNil(uow2.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestOrderRepository_RoundTrip verifies an order with multiple line items
// survives persistence with amounts and line order intact.
func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_RoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder("SAVE10")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(testOrder.IsEqual(retrieved))
	suite.Equal(testOrder.ShopID(), retrieved.ShopID())
	suite.Equal("SAVE10", retrieved.DiscountCode())
	suite.True(testOrder.TotalAmount().IsEqual(retrieved.TotalAmount()))
	suite.True(testOrder.DiscountAmount().IsEqual(retrieved.DiscountAmount()))
	suite.True(testOrder.FinalAmount().IsEqual(retrieved.FinalAmount()))

	suite.Require().Len(retrieved.Items(), len(testOrder.Items()))
	for i, item := range testOrder.Items() {
		suite.Equal(item.SKU().ID(), retrieved.Items()[i].SKU().ID())
		suite.Equal(item.Quantity(), retrieved.Items()[i].Quantity())
	}
}

// TestOrderRepository_Update verifies the item set is replaced wholesale and
// the recomputed amounts are stored.
func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_Update() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("")

	uow := suite.factory.Create()
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	newItem := suite.createTestItem(50, 1)
	err = testOrder.Replace([]order.OrderItem{newItem}, "")
	suite.Require().NoError(err)

	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal(newItem.SKU().ID(), retrieved.Items()[0].SKU().ID())
	suite.True(testOrder.FinalAmount().IsEqual(retrieved.FinalAmount()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_Delete() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("")

	uow := suite.factory.Create()
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Delete(ctx, testOrder.ID())
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var itemCount int64
	err = suite.db.Model(&orderrepo.OrderItemDTO{}).
		Where("order_id = ?", testOrder.ID().Bytes()).
		Count(&itemCount).Error
	suite.Require().NoError(err)
	suite.Zero(itemCount, "Line items should be removed with the order")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_GetNotFound() {
	_, err := suite.factory.Create().OrderRepository().Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestReturnOrderRepository_RoundTrip verifies a return order keeps its link,
// reason, and stored total across persistence.
func (suite *UnitOfWorkIntegrationTestSuite) TestReturnOrderRepository_RoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	linked := suite.createTestOrder("")
	err := uow.OrderRepository().Add(ctx, linked)
	suite.Require().NoError(err)

	employeeID := kernel.NewUUID()
	returned, err := returnorder.NewReturnOrder(
		kernel.NewUUID(), linked.ShopID(), linked.ID(),
		[]order.OrderItem{linked.Items()[0]},
		returnorder.ReasonDamaged, "crushed boxes", &employeeID,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.ReturnOrderRepository().Add(ctx, returned)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().ReturnOrderRepository().Get(ctx, returned.ID())
	suite.Require().NoError(err)

	suite.True(returned.IsEqual(retrieved))
	suite.Equal(linked.ID(), retrieved.LinkedOrderID())
	suite.Equal(returnorder.ReasonDamaged, retrieved.Reason())
	suite.Equal("crushed boxes", retrieved.Notes())
	suite.Require().NotNil(retrieved.EmployeeID())
	suite.Equal(employeeID, *retrieved.EmployeeID())
	suite.True(returned.TotalAmount().IsEqual(retrieved.TotalAmount()))
	suite.Require().Len(retrieved.Items(), 1)
}

// TestDeliveryRepository_RoundTrip verifies a delivery with accumulated
// history survives persistence in transition order.
func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryRepository_RoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := suite.createTestDelivery()

	err := uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	err = testDelivery.Advance(delivery.StatusTransit, "left the warehouse", nil, time.Now().UTC())
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Update(ctx, testDelivery)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	suite.True(testDelivery.IsEqual(retrieved))
	suite.Equal(delivery.StatusTransit, retrieved.Status())
	suite.True(testDelivery.TrackingNumber().IsEqual(retrieved.TrackingNumber()))

	history := retrieved.StatusHistory()
	suite.Require().Len(history, 2)
	suite.Equal(delivery.StatusPackaging, history[0].Status())
	suite.Equal(delivery.StatusTransit, history[1].Status())
	suite.Equal("left the warehouse", history[1].Notes())
}

// TestDeliveryRepository_DuplicateOrderID verifies the unique index on
// order_id turns a second insert for the same order into
// errs.ErrObjectAlreadyExists.
func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryRepository_DuplicateOrderID() {
	ctx := context.Background()
	uow := suite.factory.Create()

	orderID := kernel.NewUUID()
	shopID := kernel.NewUUID()

	first, err := delivery.NewDelivery(kernel.NewUUID(), orderID, shopID, time.Now().UTC())
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, first)
	suite.Require().NoError(err)

	second, err := delivery.NewDelivery(kernel.NewUUID(), orderID, shopID, time.Now().UTC())
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryRepository_GetByOrderID() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := suite.createTestDelivery()
	err := uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	retrieved, err := uow.DeliveryRepository().GetByOrderID(ctx, testDelivery.OrderID())
	suite.Require().NoError(err)
	suite.True(testDelivery.IsEqual(retrieved))

	_, err = uow.DeliveryRepository().GetByOrderID(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestDeliveryRepository_CancellationSurvives verifies the cancellation
// record persists with the acting identity.
func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryRepository_CancellationSurvives() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := suite.createTestDelivery()
	err := uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	cancelledBy := kernel.NewUUID()
	err = testDelivery.Cancel("shop closed down", &cancelledBy, time.Now().UTC())
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Update(ctx, testDelivery)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	suite.Equal(delivery.StatusCancelled, retrieved.Status())
	suite.Require().NotNil(retrieved.CancellationReason())
	suite.Equal("shop closed down", retrieved.CancellationReason().Reason())
	suite.Require().NotNil(retrieved.CancellationReason().CancelledBy())
	suite.Equal(cancelledBy, *retrieved.CancellationReason().CancelledBy())
}

// TestOutboxRepository_Lifecycle walks a message from enqueue through failed
// and successful dispatch.
func (suite *UnitOfWorkIntegrationTestSuite) TestOutboxRepository_Lifecycle() {
	ctx := context.Background()
	outbox := suite.factory.Create().OutboxRepository()

	err := outbox.Enqueue(ctx, ports.EventOrderCreated, []byte(`{"orderId":"a"}`))
	suite.Require().NoError(err)
	err = outbox.Enqueue(ctx, ports.EventOrderCreated, []byte(`{"orderId":"b"}`))
	suite.Require().NoError(err)

	pending, err := outbox.PullPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal([]byte(`{"orderId":"a"}`), pending[0].Payload, "Oldest message should come first")
	suite.Zero(pending[0].Attempts)

	err = outbox.MarkFailed(ctx, pending[0].ID)
	suite.Require().NoError(err)

	pending, err = outbox.PullPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2, "Message below the attempt cap should stay pending")
	suite.Equal(1, pending[0].Attempts)

	err = outbox.MarkSent(ctx, pending[0].ID)
	suite.Require().NoError(err)
	err = outbox.MarkSent(ctx, pending[1].ID)
	suite.Require().NoError(err)

	pending, err = outbox.PullPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending, "Sent messages should never be pulled again")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutboxRepository_PullPendingLimit() {
	ctx := context.Background()
	outbox := suite.factory.Create().OutboxRepository()

	for range 5 {
		err := outbox.Enqueue(ctx, ports.EventOrderCreated, []byte(`{}`))
		suite.Require().NoError(err)
	}

	pending, err := outbox.PullPending(ctx, 3)
	suite.Require().NoError(err)
	suite.Len(pending, 3)
}

// TestOutboxRepository_AttemptCapParksMessage verifies a message that keeps
// failing is parked after MaxDispatchAttempts and stops being pulled, while
// other pending messages are unaffected.
func (suite *UnitOfWorkIntegrationTestSuite) TestOutboxRepository_AttemptCapParksMessage() {
	ctx := context.Background()
	outbox := suite.factory.Create().OutboxRepository()

	err := outbox.Enqueue(ctx, ports.EventOrderCreated, []byte(`{"orderId":"poison"}`))
	suite.Require().NoError(err)
	err = outbox.Enqueue(ctx, ports.EventOrderCreated, []byte(`{"orderId":"healthy"}`))
	suite.Require().NoError(err)

	pending, err := outbox.PullPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	poisonID := pending[0].ID

	for range outboxrepo.MaxDispatchAttempts {
		err = outbox.MarkFailed(ctx, poisonID)
		suite.Require().NoError(err)
	}

	pending, err = outbox.PullPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1, "Parked message should not be pulled anymore")
	suite.Equal([]byte(`{"orderId":"healthy"}`), pending[0].Payload)
}

// TestUnitOfWork_OrderAndOutboxAtomic verifies the order row and its outbox
// message commit or roll back together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderAndOutboxAtomic() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder("")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.OutboxRepository().Enqueue(ctx, ports.EventOrderCreated, []byte(`{}`))
	suite.Require().NoError(err)
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Order should not exist after rollback")

	pending, err := newUow.OutboxRepository().PullPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending, "Outbox message should not exist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := suite.createTestOrder("")
	order2 := suite.createTestOrder("")

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)
	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)
	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")
	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")
	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies repositories work without
// explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder("")

	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.IsEqual(retrieved))
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestItem(price int64, quantity int) order.OrderItem {
	sku, err := product.NewSKU(
		kernel.NewUUID(), "Earl Grey 50ct", "Loose leaf, foil wrapped",
		product.NewMoneyFromInt(price), product.NewMoneyFromInt(price*10),
	)
	suite.Require().NoError(err)

	item, err := order.NewOrderItem(sku, quantity, product.UnitTypePacket)
	suite.Require().NoError(err)
	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(discountCode string) *order.Order {
	items := []order.OrderItem{
		suite.createTestItem(10, 3),
		suite.createTestItem(25, 2),
	}
	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), nil, items, discountCode, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestDelivery() *delivery.Delivery {
	testDelivery, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testDelivery
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
