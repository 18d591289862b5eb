package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// GetActiveOrdersQueryHandler reads active orders straight from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns every order whose status is not
// terminal, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			buyer_phone,
			school_id,
			delivery_type,
			status,
			payment_status,
			total_paise,
			tracking_id,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?, ?)
		ORDER BY created_at
	`, order.StatusDelivered.String(), order.StatusCancelled.String(), order.StatusPaymentFailed.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id, schoolID uuid.UUID

		if err = rows.Scan(
			&id,
			&resp.BuyerPhone,
			&schoolID,
			&resp.DeliveryType,
			&resp.Status,
			&resp.PaymentStatus,
			&resp.TotalPaise,
			&resp.TrackingID,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.SchoolID, err = kernel.UUIDFromBytes(schoolID[:]); err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
