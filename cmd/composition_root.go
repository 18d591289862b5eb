package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpin "schoolstore/internal/adapters/in/http"
	"schoolstore/internal/adapters/out/courier"
	"schoolstore/internal/adapters/out/messenger"
	"schoolstore/internal/adapters/out/payment"
	"schoolstore/internal/adapters/out/postgres"
	"schoolstore/internal/adapters/out/postgres/catalogrepo"
	"schoolstore/internal/adapters/out/postgres/settingsrepo"
	"schoolstore/internal/core/application/usecases/commands"
	"schoolstore/internal/core/application/usecases/queries"
	"schoolstore/internal/core/ports"
	"schoolstore/internal/jobs"
)

// CompositionRoot wires adapters into command and query handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	catalogReader  ports.CatalogReader
	settingsReader ports.SettingsReader
	payment        ports.PaymentProvider
	courier        ports.CourierProvider
	messenger      ports.Messenger

	logger *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(gormDB),
		catalogReader:  catalogrepo.NewGormCatalogReader(gormDB),
		settingsReader: settingsrepo.NewGormSettingsReader(gormDB, logger),
		payment: payment.NewClient(configs.PaymentBaseURL, configs.PaymentKeyID,
			configs.PaymentKeySecret, configs.PaymentWebhookSecret, logger),
		courier:   courier.NewClient(configs.CourierBaseURL, configs.CourierAPIToken, logger),
		messenger: messenger.NewClient(configs.MessengerBaseURL, configs.MessengerAPIToken, logger),
		logger:    logger,
	}
}

func (c *CompositionRoot) CreateComputeWeightCommandHandler() *commands.ComputeWeightCommandHandler {
	return commands.NewComputeWeightCommandHandler(
		postgres.NewShippingUoWFactory(c.uowFactory),
		c.catalogReader,
		c.settingsReader,
	)
}

func (c *CompositionRoot) CreateDispatchShipmentCommandHandler() *commands.DispatchShipmentCommandHandler {
	return commands.NewDispatchShipmentCommandHandler(
		postgres.NewShippingUoWFactory(c.uowFactory),
		c.catalogReader,
		c.courier,
		c.CreateComputeWeightCommandHandler(),
	)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() *commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(
		postgres.NewOrderUoWFactory(c.uowFactory),
		c.catalogReader,
		c.settingsReader,
		c.payment,
		c.CreateComputeWeightCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateProcessInboundMessageCommandHandler() *commands.ProcessInboundMessageCommandHandler {
	return commands.NewProcessInboundMessageCommandHandler(
		postgres.NewConversationUoWFactory(c.uowFactory),
		c.catalogReader,
		c.settingsReader,
		c.messenger,
		c.CreateSubmitOrderCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() *commands.ReconcilePaymentCommandHandler {
	return commands.NewReconcilePaymentCommandHandler(
		postgres.NewWebhookUoWFactory(c.uowFactory),
		c.payment,
		c.messenger,
		c.CreateComputeWeightCommandHandler(),
		c.CreateDispatchShipmentCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateApplyCourierEventCommandHandler() *commands.ApplyCourierEventCommandHandler {
	return commands.NewApplyCourierEventCommandHandler(
		postgres.NewWebhookUoWFactory(c.uowFactory),
		c.messenger,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateProcessInboundMessageCommandHandler(),
		c.CreateSubmitOrderCommandHandler(),
		c.CreateComputeWeightCommandHandler(),
		c.CreateReconcilePaymentCommandHandler(),
		c.CreateApplyCourierEventCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	recovery := jobs.NewPaymentLinkRecoveryJob(
		postgres.NewOrderUoWFactory(c.uowFactory),
		c.payment,
		c.messenger,
		c.logger,
	)
	backfill := jobs.NewWeightBackfillJob(
		postgres.NewOrderUoWFactory(c.uowFactory),
		c.CreateComputeWeightCommandHandler(),
		c.logger,
	)
	return jobs.NewJobManager(recovery, backfill)
}
