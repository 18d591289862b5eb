package ports

import (
	"context"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// ParcelRepository defines persistence for parcel records. Parcels are keyed
// by (order id, index); the current flow only ever writes index 0.
type ParcelRepository interface {
	// Upsert creates or replaces the parcel record for its (order, index) key.
	// Re-running the weight calculator overwrites the previous record.
	Upsert(ctx context.Context, parcel *order.Parcel) error

	// GetByOrder retrieves an order's parcels ordered by index. An order
	// whose weight was never computed has none.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Parcel, error)
}
