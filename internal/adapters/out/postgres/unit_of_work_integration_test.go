package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolstore/internal/adapters/out/postgres"
	"schoolstore/internal/adapters/out/postgres/catalogrepo"
	"schoolstore/internal/adapters/out/postgres/conversationrepo"
	"schoolstore/internal/adapters/out/postgres/eventlogrepo"
	"schoolstore/internal/adapters/out/postgres/orderrepo"
	"schoolstore/internal/adapters/out/postgres/parcelrepo"
	"schoolstore/internal/adapters/out/postgres/settingsrepo"
	"schoolstore/internal/core/domain/model/conversation"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite verifies transaction behavior and the
// repositories behind the unit of work against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&parcelrepo.ParcelDTO{},
		&conversationrepo.ConversationDTO{},
		&eventlogrepo.PaymentEventDTO{},
		&eventlogrepo.CourierEventDTO{},
		&catalogrepo.SchoolDTO{},
		&catalogrepo.SchoolClassDTO{},
		&catalogrepo.ItemGroupDTO{},
		&catalogrepo.ItemDTO{},
		&settingsrepo.SettingDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	for _, table := range []string{
		"orders", "parcels", "conversations",
		"payment_events", "courier_events",
		"schools", "school_classes", "item_groups", "catalog_items", "settings",
	} {
		suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + table).Error)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	phone, err := kernel.NewPhone("+919876543210")
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(50000)
	suite.Require().NoError(err)
	line, err := order.NewItem(kernel.NewUUID(), "Class IV Booklist", 1, price)
	suite.Require().NoError(err)
	charge, err := kernel.NewMoney(0)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), phone, "Asha Rao", kernel.NewUUID(),
		order.DeliverySchool, "", []order.Item{line}, charge, "integration test",
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(aggregate.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConversationRepository_RoundTrip() {
	ctx := context.Background()
	phone, err := kernel.NewPhone("+919876500001")
	suite.Require().NoError(err)
	conv, err := conversation.NewConversation(phone)
	suite.Require().NoError(err)
	schoolID := kernel.NewUUID()
	classID := kernel.NewUUID()
	suite.Require().NoError(conv.ChooseSchool("1042", schoolID, []kernel.UUID{classID}))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ConversationRepository().Upsert(ctx, conv))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().ConversationRepository()
	loaded, err := repo.Get(ctx, phone)
	suite.Require().NoError(err)
	suite.Equal(conversation.StateAwaitClass, loaded.State())
	suite.Equal("1042", loaded.SchoolCode())
	suite.Require().NotNil(loaded.SchoolID())
	suite.True(loaded.SchoolID().IsEqual(schoolID))
	suite.Require().Len(loaded.PresentedClasses(), 1)

	suite.Require().NoError(repo.Delete(ctx, phone))
	_, err = repo.Get(ctx, phone)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	// Deleting an absent conversation is not an error.
	suite.Require().NoError(repo.Delete(ctx, phone))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestParcelRepository_UpsertOverwrites() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	dims, err := kernel.NewDimensions(20, 15, 2)
	suite.Require().NoError(err)

	first, err := order.NewParcel(orderID, 0, 250, 120, 500, dims)
	suite.Require().NoError(err)
	repo := parcelrepo.NewGormParcelRepository(suite.db)
	suite.Require().NoError(repo.Upsert(ctx, first))

	second, err := order.NewParcel(orderID, 0, 450, 120, 500, dims)
	suite.Require().NoError(err)
	suite.Require().NoError(second.AssignTracking("AWB999"))
	suite.Require().NoError(repo.Upsert(ctx, second))

	parcels, err := repo.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(parcels, 1)
	suite.Equal(int64(450), parcels[0].ActualWeightGrams())
	suite.Equal("AWB999", parcels[0].TrackingID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestEventLogRepository_AppendsRecords() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	paymentEvent, err := order.NewPaymentEvent(&orderID, "razorpay", "payment.completed", `{"raw":true}`)
	suite.Require().NoError(err)
	courierEvent, err := order.NewCourierEvent(nil, "delhivery", "AWB1", "In Transit", order.StatusOutForDelivery, "{}")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.EventLogRepository().AddPaymentEvent(ctx, paymentEvent))
	suite.Require().NoError(uow.EventLogRepository().AddCourierEvent(ctx, courierEvent))
	suite.Require().NoError(uow.Commit(ctx))

	var paymentCount, courierCount int64
	suite.Require().NoError(suite.db.Model(&eventlogrepo.PaymentEventDTO{}).Count(&paymentCount).Error)
	suite.Require().NoError(suite.db.Model(&eventlogrepo.CourierEventDTO{}).Count(&courierCount).Error)
	suite.Equal(int64(1), paymentCount)
	suite.Equal(int64(1), courierCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCatalogReader_ActiveFiltering() {
	ctx := context.Background()
	reader := catalogrepo.NewGormCatalogReader(suite.db)

	schoolID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.SchoolDTO{
		ID: schoolID.Bytes(), Code: "1042", Name: "Sunrise Public School",
		Address: "12 MG Road, Pune", IsActive: true,
	}).Error)
	suite.Require().NoError(suite.db.Create(&catalogrepo.SchoolDTO{
		ID: kernel.NewUUID().Bytes(), Code: "2084", Name: "Closed School",
		Address: "Old Town", IsActive: false,
	}).Error)

	school, err := reader.SchoolByCode(ctx, "1042")
	suite.Require().NoError(err)
	suite.Equal("Sunrise Public School", school.Name())

	_, err = reader.SchoolByCode(ctx, "2084")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	itemID := kernel.NewUUID()
	groupID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.ItemDTO{
		ID: itemID.Bytes(), GroupID: groupID.Bytes(), Name: "Class IV Booklist",
		PricePaise: 50000, Stock: 10, WeightGrams: 200,
		LengthCM: 20, WidthCM: 15, HeightCM: 2, IsActive: true,
	}).Error)

	items, err := reader.ItemsByIDs(ctx, []kernel.UUID{itemID, kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal("Class IV Booklist", items[0].Name())
	suite.True(items[0].GroupID().IsEqual(groupID))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSettingsReader_FallbacksAndValues() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reader := settingsrepo.NewGormSettingsReader(suite.db, logger)

	suite.Equal(int64(50), reader.PackagingWeightGrams(ctx))
	suite.InDelta(5000, reader.VolumetricDivisor(ctx), 0.01)
	suite.Equal(int64(500), reader.WeightRoundingGrams(ctx))
	suite.Equal(int64(8000), reader.DeliveryCharge(ctx, order.DeliveryHome).Paise())
	suite.Equal(int64(0), reader.DeliveryCharge(ctx, order.DeliverySchool).Paise())

	suite.Require().NoError(suite.db.Create(&settingsrepo.SettingDTO{
		Key: settingsrepo.KeyHomeDeliveryCharge, Value: "9900",
	}).Error)
	suite.Require().NoError(suite.db.Create(&settingsrepo.SettingDTO{
		Key: settingsrepo.KeyDefaultPackagingWeightGrams, Value: "75",
	}).Error)
	suite.Require().NoError(suite.db.Create(&settingsrepo.SettingDTO{
		Key: settingsrepo.KeyVolumetricDivisor, Value: "not-a-number",
	}).Error)

	suite.Equal(int64(9900), reader.DeliveryCharge(ctx, order.DeliveryHome).Paise())
	suite.Equal(int64(75), reader.PackagingWeightGrams(ctx))
	suite.InDelta(5000, reader.VolumetricDivisor(ctx), 0.01)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
