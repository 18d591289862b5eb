package eventlogrepo

import (
	"context"

	"gorm.io/gorm"

	"schoolstore/internal/core/domain/model/order"
)

// GormEventLogRepository implements EventLogRepository using GORM. Records
// are only ever inserted.
type GormEventLogRepository struct {
	db *gorm.DB
}

// NewGormEventLogRepository creates a new GORM event log repository.
func NewGormEventLogRepository(db *gorm.DB) *GormEventLogRepository {
	return &GormEventLogRepository{db: db}
}

// AddPaymentEvent appends a payment webhook audit record.
func (r *GormEventLogRepository) AddPaymentEvent(ctx context.Context, event *order.PaymentEvent) error {
	dto := fromPaymentEvent(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddCourierEvent appends a courier webhook audit record.
func (r *GormEventLogRepository) AddCourierEvent(ctx context.Context, event *order.CourierEvent) error {
	dto := fromCourierEvent(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}
