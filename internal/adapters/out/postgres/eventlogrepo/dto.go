// Package eventlogrepo persists the append-only audit log of inbound webhook
// deliveries.
package eventlogrepo

import (
	"time"

	"github.com/google/uuid"

	"schoolstore/internal/core/domain/model/order"
)

// PaymentEventDTO represents one recorded payment webhook delivery. OrderID
// is null when the delivery resolved to no order.
type PaymentEventDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	Provider   string
	EventType  string
	Payload    string
	OccurredAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for payment event records.
func (PaymentEventDTO) TableName() string {
	return "payment_events"
}

// CourierEventDTO represents one recorded courier webhook delivery.
type CourierEventDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      *uuid.UUID `gorm:"type:uuid;index"`
	Carrier      string
	TrackingID   string `gorm:"index"`
	StatusText   string
	MappedStatus string
	Payload      string
	OccurredAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for courier event records.
func (CourierEventDTO) TableName() string {
	return "courier_events"
}

func fromPaymentEvent(event *order.PaymentEvent) PaymentEventDTO {
	var orderID *uuid.UUID
	if id := event.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}
	return PaymentEventDTO{
		ID:         event.ID().Bytes(),
		OrderID:    orderID,
		Provider:   event.Provider(),
		EventType:  event.EventType(),
		Payload:    event.Payload(),
		OccurredAt: event.OccurredAt(),
	}
}

func fromCourierEvent(event *order.CourierEvent) CourierEventDTO {
	var orderID *uuid.UUID
	if id := event.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}
	return CourierEventDTO{
		ID:           event.ID().Bytes(),
		OrderID:      orderID,
		Carrier:      event.Carrier(),
		TrackingID:   event.TrackingID(),
		StatusText:   event.StatusText(),
		MappedStatus: event.MappedStatus().String(),
		Payload:      event.Payload(),
		OccurredAt:   event.OccurredAt(),
	}
}
