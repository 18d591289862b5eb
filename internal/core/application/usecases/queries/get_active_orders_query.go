// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders that have not reached a terminal
// status. Used by the operations dashboard to see the current workload.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve all active orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is the read model for one active order.
type GetActiveOrdersQueryResponse struct {
	ID            kernel.UUID
	BuyerPhone    string
	SchoolID      kernel.UUID
	DeliveryType  string
	Status        string
	PaymentStatus string
	TotalPaise    int64
	TrackingID    string
	CreatedAt     time.Time
}
