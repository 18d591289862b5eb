package conversationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolstore/internal/core/domain/model/conversation"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

// GormConversationRepository implements ConversationRepository using GORM.
type GormConversationRepository struct {
	db *gorm.DB
}

// NewGormConversationRepository creates a new GORM conversation repository.
func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

// Get retrieves the conversation for a sender.
func (r *GormConversationRepository) Get(ctx context.Context, phone kernel.Phone) (*conversation.Conversation, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	var dto ConversationDTO
	if err := r.db.WithContext(ctx).First(&dto, "phone = ?", phone.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("conversation", phone.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Upsert creates or replaces the sender's conversation record.
func (r *GormConversationRepository) Upsert(ctx context.Context, aggregate *conversation.Conversation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// Delete removes the sender's conversation. Absence is not an error.
func (r *GormConversationRepository) Delete(ctx context.Context, phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Delete(&ConversationDTO{}, "phone = ?", phone.String()).Error
}
