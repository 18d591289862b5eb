package ports

import (
	"context"

	"schoolstore/internal/core/domain/model/conversation"
	"schoolstore/internal/core/domain/model/kernel"
)

// ConversationRepository defines the persistence contract for conversation
// aggregates, keyed by the sender's phone number. Absence of a record means
// the sender has no conversation in progress.
type ConversationRepository interface {
	// Get retrieves the conversation for a sender.
	// Returns errs.ErrObjectNotFound when the sender has none.
	Get(ctx context.Context, phone kernel.Phone) (*conversation.Conversation, error)

	// Upsert creates or replaces the sender's conversation record.
	Upsert(ctx context.Context, aggregate *conversation.Conversation) error

	// Delete removes the sender's conversation. Deleting an absent record is
	// not an error; the next inbound message starts fresh either way.
	Delete(ctx context.Context, phone kernel.Phone) error
}
