package ports

import (
	"context"
	"time"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Lookups by payment reference and tracking id serve webhook reconciliation,
// where the inbound event carries an external key instead of the order id.
type OrderRepository interface {
	// Add persists a new order aggregate and its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns errs.ErrObjectNotFound when no order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByPaymentRef retrieves the order holding the given external payment
	// reference. Returns errs.ErrObjectNotFound when none does.
	GetByPaymentRef(ctx context.Context, paymentRef string) (*order.Order, error)

	// GetByTrackingID retrieves the order holding the given courier tracking
	// id. Returns errs.ErrObjectNotFound when none does.
	GetByTrackingID(ctx context.Context, trackingID string) (*order.Order, error)

	// GetAllActive retrieves orders not yet in a terminal state, newest first.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllMissingPaymentLink retrieves pending orders that never received a
	// payment link, oldest first. Used by the recovery job to retry issuance.
	GetAllMissingPaymentLink(ctx context.Context) ([]*order.Order, error)

	// ConfirmPaymentOnce atomically settles payment on an order: a single
	// conditional update that succeeds only while payment status is still
	// pending. Returns true when this call performed the transition and false
	// when a concurrent or earlier delivery already did. The chained side
	// effects (weight, dispatch, notification) must run only on true.
	ConfirmPaymentOnce(ctx context.Context, id kernel.UUID, paidAt time.Time) (bool, error)
}
