// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"schoolstore/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ConversationRepoFactory provides access to the conversation repository within a transaction.
	ConversationRepoFactory interface {
		ConversationRepository() ports.ConversationRepository
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// EventLogRepoFactory provides access to the webhook audit log within a transaction.
	EventLogRepoFactory interface {
		EventLogRepository() ports.EventLogRepository
	}

	// ConversationUoW manages transactions for conversation-only operations.
	ConversationUoW interface {
		TxManager
		ConversationRepoFactory
	}

	// ConversationUoWFactory creates new conversation unit of work instances.
	ConversationUoWFactory interface {
		Create() ConversationUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ShippingUoW manages transactions touching the order and its parcel,
	// used by weight computation and shipment dispatch.
	ShippingUoW interface {
		TxManager
		OrderRepoFactory
		ParcelRepoFactory
	}

	// ShippingUoWFactory creates new shipping unit of work instances.
	ShippingUoWFactory interface {
		Create() ShippingUoW
	}

	// WebhookUoW manages transactions for webhook reconciliation: the order
	// plus the append-only audit log.
	WebhookUoW interface {
		TxManager
		OrderRepoFactory
		EventLogRepoFactory
	}

	// WebhookUoWFactory creates new webhook unit of work instances.
	WebhookUoWFactory interface {
		Create() WebhookUoW
	}
)
