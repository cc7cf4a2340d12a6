package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	pg "foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/menurepo"
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/adapters/out/postgres/userrepo"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/menu"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type ReadModelsIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
	users     *userrepo.GormUserRepository
	menu      *menurepo.GormMenuRepository

	customer kernel.Identity
	staff    kernel.Identity
}

func (suite *ReadModelsIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(pg.Migrate(db))

	suite.orders = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.users = userrepo.NewGormUserRepository(db)
	suite.menu = menurepo.NewGormMenuRepository(db)
}

func (suite *ReadModelsIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, users, categories, menu_items").Error)

	var err error
	suite.customer, err = kernel.NewIdentity(kernel.NewUUID(), kernel.RoleUser)
	suite.Require().NoError(err)
	suite.staff, err = kernel.NewIdentity(kernel.NewUUID(), kernel.RoleManager)
	suite.Require().NoError(err)
}

func (suite *ReadModelsIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ReadModelsIntegrationTestSuite) TestActiveOrders_ExcludeCompleted() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	placed := suite.storeOrder(suite.customer.UserID, order.Placed, nil, time.Minute)
	ready := suite.storeOrder(suite.customer.UserID, order.Ready, nil, 2*time.Minute)
	suite.storeOrder(suite.customer.UserID, order.Completed, &courierID, 3*time.Minute)
	suite.Require().NoError(suite.db.Exec("UPDATE orders SET status = 'pending' WHERE id = ?", placed.ID().Bytes()).Error)

	query, err := queries.NewGetActiveOrdersQuery(suite.staff)
	suite.Require().NoError(err)

	result, err := queries.NewGetActiveOrdersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(placed.ID()), "oldest first")
	suite.Equal("placed", result[0].Status, "legacy status is reported by its canonical name")
	suite.True(result[1].ID.IsEqual(ready.ID()))
	suite.Require().Len(result[1].Items, 1)
	suite.Equal("Margherita", result[1].Items[0].Name)
	suite.Equal("32.5", result[1].Total.String())
}

func (suite *ReadModelsIntegrationTestSuite) TestCustomerOrders_OnlyOwnNewestFirst() {
	ctx := context.Background()
	older := suite.storeOrder(suite.customer.UserID, order.Placed, nil, time.Minute)
	newer := suite.storeOrder(suite.customer.UserID, order.Processing, nil, 2*time.Minute)
	suite.storeOrder(kernel.NewUUID(), order.Placed, nil, 3*time.Minute)

	query, err := queries.NewGetCustomerOrdersQuery(suite.customer)
	suite.Require().NoError(err)

	result, err := queries.NewGetCustomerOrdersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(newer.ID()))
	suite.True(result[1].ID.IsEqual(older.ID()))
}

func (suite *ReadModelsIntegrationTestSuite) TestOrderTracking() {
	ctx := context.Background()
	courier := suite.storeCourier("courier@example.com", true, nil)
	loc, _ := kernel.NewLocation(52.24, 21.02)
	reportedAt := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	suite.Require().NoError(courier.UpdateLocation(loc, reportedAt))
	suite.Require().NoError(suite.users.Update(ctx, courier))

	courierID := courier.ID()
	inTransit := suite.storeOrder(suite.customer.UserID, order.Transportation, &courierID, time.Minute)
	waiting := suite.storeOrder(suite.customer.UserID, order.Processing, nil, time.Minute)
	handler := queries.NewGetOrderTrackingQueryHandler(suite.db)

	suite.Run("in transportation shows the courier", func() {
		query, err := queries.NewGetOrderTrackingQuery(suite.customer, inTransit.ID())
		suite.Require().NoError(err)

		view, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Equal("transportation", view.Order.Status)
		suite.Equal("Test Courier", view.CourierName)
		suite.Require().NotNil(view.CourierLocation)
		suite.InDelta(52.24, view.CourierLocation.Latitude(), 1e-9)
		suite.Require().NotNil(view.CourierLocationUpdatedAt)
		suite.True(view.CourierLocationUpdatedAt.Equal(reportedAt))
	})

	suite.Run("before dispatch there is no courier", func() {
		query, _ := queries.NewGetOrderTrackingQuery(suite.customer, waiting.ID())

		view, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Nil(view.CourierLocation)
		suite.Empty(view.CourierName)
	})

	suite.Run("someone else's order", func() {
		stranger, _ := kernel.NewIdentity(kernel.NewUUID(), kernel.RoleUser)
		query, _ := queries.NewGetOrderTrackingQuery(stranger, inTransit.ID())

		_, err := handler.Handle(ctx, query)

		suite.Require().ErrorIs(err, queries.ErrNotOrderOwner)
	})

	suite.Run("unknown order", func() {
		query, _ := queries.NewGetOrderTrackingQuery(suite.customer, kernel.NewUUID())

		_, err := handler.Handle(ctx, query)

		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (suite *ReadModelsIntegrationTestSuite) TestCourierDelivery() {
	ctx := context.Background()
	handler := queries.NewGetCourierDeliveryQueryHandler(suite.db)

	idle := suite.storeCourier("idle@example.com", true, nil)
	idleIdentity, _ := kernel.NewIdentity(idle.ID(), kernel.RoleCourier)
	query, err := queries.NewGetCourierDeliveryQuery(idleIdentity)
	suite.Require().NoError(err)

	current, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Nil(current)

	orderID := kernel.NewUUID()
	busy := suite.storeCourier("busy@example.com", true, &orderID)
	busyID := busy.ID()
	carried := suite.storeOrderWithID(orderID, suite.customer.UserID, order.Transportation, &busyID, time.Minute)
	busyIdentity, _ := kernel.NewIdentity(busy.ID(), kernel.RoleCourier)
	query, _ = queries.NewGetCourierDeliveryQuery(busyIdentity)

	current, err = handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().NotNil(current)
	suite.True(current.ID.IsEqual(carried.ID()))
	suite.Equal("Ul. Testowa 1", current.Address)
}

func (suite *ReadModelsIntegrationTestSuite) TestAvailableCouriers_RankedByDistance() {
	ctx := context.Background()
	destination, _ := kernel.NewLocation(52.2297, 21.0122)
	near, _ := kernel.NewLocation(52.2300, 21.0100)
	far, _ := kernel.NewLocation(52.4000, 20.9000)

	farCourier := suite.storeCourier("far@example.com", true, nil)
	suite.Require().NoError(farCourier.UpdateLocation(far, time.Now()))
	suite.Require().NoError(suite.users.Update(ctx, farCourier))

	nearCourier := suite.storeCourier("near@example.com", true, nil)
	suite.Require().NoError(nearCourier.UpdateLocation(near, time.Now()))
	suite.Require().NoError(suite.users.Update(ctx, nearCourier))

	unknown := suite.storeCourier("unknown@example.com", true, nil)
	suite.storeCourier("offline@example.com", false, nil)
	takenID := kernel.NewUUID()
	suite.storeCourier("busy@example.com", true, &takenID)

	o := suite.storeOrderAt(destination)
	orderID := o.ID()
	handler := queries.NewGetAvailableCouriersQueryHandler(suite.db, services.NewOrderDispatcher())

	suite.Run("ranked against an order", func() {
		query, err := queries.NewGetAvailableCouriersQuery(suite.staff, &orderID)
		suite.Require().NoError(err)

		result, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Require().Len(result, 3)
		suite.True(result[0].ID.IsEqual(nearCourier.ID()))
		suite.True(result[1].ID.IsEqual(farCourier.ID()))
		suite.True(result[2].ID.IsEqual(unknown.ID()))
		suite.Require().NotNil(result[0].DistanceKm)
		suite.Less(*result[0].DistanceKm, 1.0)
		suite.Nil(result[2].DistanceKm)
	})

	suite.Run("plain list", func() {
		query, _ := queries.NewGetAvailableCouriersQuery(suite.staff, nil)

		result, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Len(result, 3)
		for _, c := range result {
			suite.Nil(c.DistanceKm)
		}
	})

	suite.Run("unknown order", func() {
		missing := kernel.NewUUID()
		query, _ := queries.NewGetAvailableCouriersQuery(suite.staff, &missing)

		_, err := handler.Handle(ctx, query)

		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (suite *ReadModelsIntegrationTestSuite) TestMenu_GroupsItemsByCategory() {
	ctx := context.Background()
	pizza, _ := menu.NewCategory(kernel.NewUUID(), "Pizza")
	drinks, _ := menu.NewCategory(kernel.NewUUID(), "drinks")
	empty, _ := menu.NewCategory(kernel.NewUUID(), "Specials")
	for _, c := range []*menu.Category{pizza, drinks, empty} {
		suite.Require().NoError(suite.menu.AddCategory(ctx, c))
	}
	for _, p := range []menu.ItemParams{
		{CategoryID: pizza.ID(), Name: "Margherita", BasePrice: decimal.NewFromInt(10),
			Sizes: []menu.Size{{Name: "Large", ExtraPrice: decimal.RequireFromString("2.5")}}},
		{CategoryID: pizza.ID(), Name: "diavola", BasePrice: decimal.NewFromInt(12)},
		{CategoryID: drinks.ID(), Name: "Lemonade", BasePrice: decimal.RequireFromString("3.2")},
	} {
		p.ID = kernel.NewUUID()
		item, err := menu.NewItem(p)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.menu.AddItem(ctx, item))
	}

	result, err := queries.NewGetMenuQueryHandler(suite.db).Handle(ctx, queries.NewGetMenuQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("drinks", result[0].Name)
	suite.Equal("Pizza", result[1].Name)
	suite.Equal("Specials", result[2].Name)
	suite.NotNil(result[2].Items)
	suite.Empty(result[2].Items)

	suite.Require().Len(result[1].Items, 2)
	suite.Equal("diavola", result[1].Items[0].Name)
	suite.Equal("Margherita", result[1].Items[1].Name)
	suite.Require().Len(result[1].Items[1].Sizes, 1)
	suite.Equal("2.5", result[1].Items[1].Sizes[0].ExtraPrice.String())
}

func (suite *ReadModelsIntegrationTestSuite) TestLoyaltyStatus_CountsCompletedOrders() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	for range 5 {
		suite.storeOrder(suite.customer.UserID, order.Completed, &courierID, time.Minute)
	}
	suite.storeOrder(suite.customer.UserID, order.Ready, nil, time.Minute)
	suite.storeOrder(kernel.NewUUID(), order.Completed, &courierID, time.Minute)

	query, err := queries.NewGetLoyaltyStatusQuery(suite.customer)
	suite.Require().NoError(err)

	status, err := queries.NewGetLoyaltyStatusQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(5, status.CompletedOrders)
	suite.Equal("Silver", status.TierName())
	suite.Equal(20, status.DiscountPercentage)
	suite.Require().NotNil(status.NextTier)
	suite.Equal("Gold", status.NextTier.Name)
	suite.Equal(5, status.OrdersToNextTier)
}

func (suite *ReadModelsIntegrationTestSuite) storeOrderAt(destination kernel.Location) *order.Order {
	return suite.store(kernel.NewUUID(), suite.customer.UserID, order.Ready, nil, time.Minute, destination)
}

func (suite *ReadModelsIntegrationTestSuite) storeOrder(
	customerID kernel.UUID, status order.Status, courierID *kernel.UUID, age time.Duration,
) *order.Order {
	return suite.storeOrderWithID(kernel.NewUUID(), customerID, status, courierID, age)
}

func (suite *ReadModelsIntegrationTestSuite) storeOrderWithID(
	id, customerID kernel.UUID, status order.Status, courierID *kernel.UUID, age time.Duration,
) *order.Order {
	destination, err := kernel.NewLocation(52.2297, 21.0122)
	suite.Require().NoError(err)
	return suite.store(id, customerID, status, courierID, age, destination)
}

// store persists an order whose created_at lies age in the future, so that
// orders stored later in a test sort as newer.
func (suite *ReadModelsIntegrationTestSuite) store(
	id, customerID kernel.UUID,
	status order.Status,
	courierID *kernel.UUID,
	age time.Duration,
	destination kernel.Location,
) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Margherita", "Large", 2, decimal.RequireFromString("12.5"))
	suite.Require().NoError(err)
	items := []order.Item{item}

	fee := delivery.CalculateFee(decimal.NewFromInt(5), delivery.NeutralReading())
	charges := order.CalculateCharges(items, decimal.RequireFromString("0.1"), fee, "", 0)

	createdAt := time.Now().UTC().Add(age)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:         id,
		CustomerID: customerID,
		Contact: order.Contact{
			Name:    "Jan Kowalski",
			Phone:   "+48 600 000 000",
			Address: "Ul. Testowa 1",
		},
		Destination: destination,
		Items:       items,
		Charges:     charges,
		Paid:        true,
		Status:      status,
		CourierID:   courierID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *ReadModelsIntegrationTestSuite) storeCourier(email string, available bool, takenOrder *kernel.UUID) *user.User {
	c, err := user.RestoreUser(user.Snapshot{
		ID:           kernel.NewUUID(),
		Name:         "Test Courier",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         kernel.RoleCourier,
		CreatedAt:    time.Now().UTC(),
		Available:    available,
		TakenOrder:   takenOrder,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.users.Add(context.Background(), c))
	return c
}

func TestReadModelsIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelsIntegrationTestSuite))
}
