package orderrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
	"schoolstore/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByPaymentRef retrieves the order holding the given payment reference.
func (r *GormOrderRepository) GetByPaymentRef(ctx context.Context, paymentRef string) (*order.Order, error) {
	if paymentRef == "" {
		return nil, errs.NewValueIsRequiredError("paymentRef")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "payment_ref = ?", paymentRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("paymentRef", paymentRef)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves the order holding the given tracking id.
func (r *GormOrderRepository) GetByTrackingID(ctx context.Context, trackingID string) (*order.Order, error) {
	if trackingID == "" {
		return nil, errs.NewValueIsRequiredError("trackingID")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_id = ?", trackingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingID", trackingID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves orders not yet in a terminal state, newest first.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []string{
			order.StatusDelivered.String(),
			order.StatusCancelled.String(),
			order.StatusPaymentFailed.String(),
		}).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllMissingPaymentLink retrieves pending orders without a payment link,
// oldest first.
func (r *GormOrderRepository) GetAllMissingPaymentLink(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("payment_link = ? AND payment_status = ?",
			"", order.PaymentStatusPending.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ConfirmPaymentOnce settles payment with a single conditional update gated
// on the payment still being pending. The row's delivery status moves to
// confirmed only if it has not already progressed further.
func (r *GormOrderRepository) ConfirmPaymentOnce(ctx context.Context, id kernel.UUID, paidAt time.Time) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND payment_status = ?", id.Bytes(), order.PaymentStatusPending.String()).
		Updates(map[string]any{
			"payment_status": order.PaymentStatusPaid.String(),
			"paid_at":        paidAt,
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				order.StatusPending.String(), order.StatusConfirmed.String()),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
