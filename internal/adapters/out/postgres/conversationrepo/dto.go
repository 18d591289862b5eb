// Package conversationrepo persists conversation state keyed by the sender's
// phone number.
package conversationrepo

import (
	"time"

	"github.com/google/uuid"

	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/conversation"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/core/domain/model/order"
)

// ConversationDTO represents the database structure for persisting
// conversations. Fields the machine has not reached yet stay at their zero
// values; uuid lists are serialized as jsonb.
type ConversationDTO struct {
	Phone string `gorm:"primaryKey"`
	State string

	SchoolCode       string
	SchoolID         *uuid.UUID  `gorm:"type:uuid"`
	PresentedClasses []uuid.UUID `gorm:"serializer:json;type:jsonb"`
	ClassID          *uuid.UUID  `gorm:"type:uuid"`
	GroupType        int
	CandidateItems   []uuid.UUID `gorm:"serializer:json;type:jsonb"`
	DeliveryType     int
	Address          string

	LastActivityAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for conversation entities.
func (ConversationDTO) TableName() string {
	return "conversations"
}

func fromDomain(conv *conversation.Conversation) ConversationDTO {
	return ConversationDTO{
		Phone:            conv.Phone().String(),
		State:            conv.State().String(),
		SchoolCode:       conv.SchoolCode(),
		SchoolID:         uuidPtr(conv.SchoolID()),
		PresentedClasses: uuidSlice(conv.PresentedClasses()),
		ClassID:          uuidPtr(conv.ClassID()),
		GroupType:        int(conv.GroupType()),
		CandidateItems:   uuidSlice(conv.CandidateItems()),
		DeliveryType:     int(conv.DeliveryType()),
		Address:          conv.Address(),
		LastActivityAt:   conv.LastActivityAt(),
	}
}

func toDomain(dto ConversationDTO) (*conversation.Conversation, error) {
	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}
	state, err := conversation.StateFromString(dto.State)
	if err != nil {
		return nil, err
	}
	schoolID, err := kernelUUIDPtr(dto.SchoolID)
	if err != nil {
		return nil, err
	}
	classID, err := kernelUUIDPtr(dto.ClassID)
	if err != nil {
		return nil, err
	}
	presented, err := kernelUUIDSlice(dto.PresentedClasses)
	if err != nil {
		return nil, err
	}
	candidates, err := kernelUUIDSlice(dto.CandidateItems)
	if err != nil {
		return nil, err
	}

	return conversation.RestoreConversation(
		phone,
		state,
		dto.SchoolCode,
		schoolID,
		presented,
		classID,
		catalog.GroupType(dto.GroupType),
		candidates,
		order.DeliveryType(dto.DeliveryType),
		dto.Address,
		dto.LastActivityAt,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func uuidSlice(ids []kernel.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}

func kernelUUIDPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func kernelUUIDSlice(raw []uuid.UUID) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
