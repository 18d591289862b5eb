package order

import (
	"time"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

// PaymentEvent is an append-only audit record of one inbound payment webhook
// delivery. Every delivery is recorded, including duplicates and events that
// resolve to no order; the records support idempotency diagnostics and are
// never mutated.
type PaymentEvent struct {
	id         kernel.UUID
	orderID    *kernel.UUID
	provider   string
	eventType  string
	payload    string
	occurredAt time.Time
}

// NewPaymentEvent creates an audit record for a payment webhook delivery.
// orderID is nil when the event's payment reference resolved to no order.
func NewPaymentEvent(orderID *kernel.UUID, provider, eventType, payload string) (*PaymentEvent, error) {
	if provider == "" {
		return nil, errs.NewValueIsRequiredError("provider")
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("event type")
	}

	return &PaymentEvent{
		id:         kernel.NewUUID(),
		orderID:    orderID,
		provider:   provider,
		eventType:  eventType,
		payload:    payload,
		occurredAt: time.Now().UTC(),
	}, nil
}

// ID returns the audit record's identifier.
func (e *PaymentEvent) ID() kernel.UUID { return e.id }

// OrderID returns the linked order id, nil when unresolvable.
func (e *PaymentEvent) OrderID() *kernel.UUID { return e.orderID }

// Provider returns the payment provider's name.
func (e *PaymentEvent) Provider() string { return e.provider }

// EventType returns the normalized event type, e.g. "payment.completed".
func (e *PaymentEvent) EventType() string { return e.eventType }

// Payload returns the raw webhook body.
func (e *PaymentEvent) Payload() string { return e.payload }

// OccurredAt returns the time the delivery was recorded.
func (e *PaymentEvent) OccurredAt() time.Time { return e.occurredAt }

// CourierEvent is an append-only audit record of one inbound courier webhook
// delivery, kept regardless of whether the event changed the order's status.
type CourierEvent struct {
	id         kernel.UUID
	orderID    *kernel.UUID
	carrier    string
	trackingID string
	statusText string
	mapped     Status
	payload    string
	occurredAt time.Time
}

// NewCourierEvent creates an audit record for a courier webhook delivery.
// orderID is nil when the tracking id resolved to no order; mapped is
// StatusUnknown when the status text matched no rule.
func NewCourierEvent(
	orderID *kernel.UUID,
	carrier, trackingID, statusText string,
	mapped Status,
	payload string,
) (*CourierEvent, error) {
	if trackingID == "" {
		return nil, errs.NewValueIsRequiredError("tracking id")
	}

	return &CourierEvent{
		id:         kernel.NewUUID(),
		orderID:    orderID,
		carrier:    carrier,
		trackingID: trackingID,
		statusText: statusText,
		mapped:     mapped,
		payload:    payload,
		occurredAt: time.Now().UTC(),
	}, nil
}

// ID returns the audit record's identifier.
func (e *CourierEvent) ID() kernel.UUID { return e.id }

// OrderID returns the linked order id, nil when unresolvable.
func (e *CourierEvent) OrderID() *kernel.UUID { return e.orderID }

// Carrier returns the courier provider's name.
func (e *CourierEvent) Carrier() string { return e.carrier }

// TrackingID returns the tracking id the event was keyed by.
func (e *CourierEvent) TrackingID() string { return e.trackingID }

// StatusText returns the provider's free-text status.
func (e *CourierEvent) StatusText() string { return e.statusText }

// MappedStatus returns the canonical status the text normalized to, or
// StatusUnknown for unmatched text.
func (e *CourierEvent) MappedStatus() Status { return e.mapped }

// Payload returns the raw webhook body.
func (e *CourierEvent) Payload() string { return e.payload }

// OccurredAt returns the time the delivery was recorded.
func (e *CourierEvent) OccurredAt() time.Time { return e.occurredAt }
