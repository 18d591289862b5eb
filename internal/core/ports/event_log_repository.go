package ports

import (
	"context"

	"schoolstore/internal/core/domain/model/order"
)

// EventLogRepository defines the append-only audit log of inbound webhook
// deliveries. Records are never updated or deleted.
type EventLogRepository interface {
	// AddPaymentEvent appends a payment webhook audit record.
	AddPaymentEvent(ctx context.Context, event *order.PaymentEvent) error

	// AddCourierEvent appends a courier webhook audit record.
	AddCourierEvent(ctx context.Context, event *order.CourierEvent) error
}
