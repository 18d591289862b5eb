// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. The unit of work maintains the database transaction for one
// business operation and hands out repositories bound to that transaction.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns one transaction; concurrent operations must
// each create their own instance through the factory.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"schoolstore/internal/adapters/out/postgres/conversationrepo"
	"schoolstore/internal/adapters/out/postgres/eventlogrepo"
	"schoolstore/internal/adapters/out/postgres/orderrepo"
	"schoolstore/internal/adapters/out/postgres/parcelrepo"
	"schoolstore/internal/core/application/usecases/commands"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/ports"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// database connection. Each Create() call returns a fresh instance with its
// own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates modified within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates the database transaction. Calling Begin again on the same
// instance is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}
	return nil
}

// Commit finalizes all changes made within the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction. After
// a successful Commit the rollback is a no-op error, which deferred cleanup
// callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// ConversationRepository returns a conversation repository bound to the
// current transaction.
func (uow *GormUnitOfWork) ConversationRepository() ports.ConversationRepository {
	return conversationrepo.NewGormConversationRepository(uow.conn())
}

// ParcelRepository returns a parcel repository bound to the current
// transaction.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn())
}

// EventLogRepository returns an event log repository bound to the current
// transaction.
func (uow *GormUnitOfWork) EventLogRepository() ports.EventLogRepository {
	return eventlogrepo.NewGormEventLogRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repository implementations call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// Narrowing factories adapt the full unit of work to the role-specific
// bundles the command handlers depend on.
type (
	// ConversationUoWFactory narrows UnitOfWork to ConversationUoW.
	ConversationUoWFactory struct{ factory *GormUnitOfWorkFactory }

	// OrderUoWFactory narrows UnitOfWork to OrderUoW.
	OrderUoWFactory struct{ factory *GormUnitOfWorkFactory }

	// ShippingUoWFactory narrows UnitOfWork to ShippingUoW.
	ShippingUoWFactory struct{ factory *GormUnitOfWorkFactory }

	// WebhookUoWFactory narrows UnitOfWork to WebhookUoW.
	WebhookUoWFactory struct{ factory *GormUnitOfWorkFactory }
)

// NewConversationUoWFactory creates the conversation-scoped factory.
func NewConversationUoWFactory(factory *GormUnitOfWorkFactory) *ConversationUoWFactory {
	return &ConversationUoWFactory{factory: factory}
}

// Create returns a fresh conversation unit of work.
func (f *ConversationUoWFactory) Create() commands.ConversationUoW {
	return f.factory.Create()
}

// NewOrderUoWFactory creates the order-scoped factory.
func NewOrderUoWFactory(factory *GormUnitOfWorkFactory) *OrderUoWFactory {
	return &OrderUoWFactory{factory: factory}
}

// Create returns a fresh order unit of work.
func (f *OrderUoWFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

// NewShippingUoWFactory creates the shipping-scoped factory.
func NewShippingUoWFactory(factory *GormUnitOfWorkFactory) *ShippingUoWFactory {
	return &ShippingUoWFactory{factory: factory}
}

// Create returns a fresh shipping unit of work.
func (f *ShippingUoWFactory) Create() commands.ShippingUoW {
	return f.factory.Create()
}

// NewWebhookUoWFactory creates the webhook-scoped factory.
func NewWebhookUoWFactory(factory *GormUnitOfWorkFactory) *WebhookUoWFactory {
	return &WebhookUoWFactory{factory: factory}
}

// Create returns a fresh webhook unit of work.
func (f *WebhookUoWFactory) Create() commands.WebhookUoW {
	return f.factory.Create()
}
