package dto

import (
	"time"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// PostMessageRequest targets an existing conversation or a set of recipients, never both.
type PostMessageRequest struct {
	ConversationID string   `json:"conversationId"`
	Participants   []string `json:"participants"`
	Body           string   `json:"body" binding:"required,nonblank"`
}

type MessageDTO struct {
	ID             string `json:"id"`
	AuthorID       string `json:"author"`
	ConversationID string `json:"conversation"`
	Body           string `json:"body"`
	CreatedAt      string `json:"created_at"`
}

func ToMessageDTO(m entity.Message) MessageDTO {
	return MessageDTO{
		ID:             m.ID,
		AuthorID:       m.AuthorID,
		ConversationID: m.ConversationID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339Nano),
	}
}

type ConversationDTO struct {
	ID           string   `json:"id"`
	Participants []string `json:"participants"`
	MessageCount int      `json:"messageCount"`
	UpdatedAt    string   `json:"updated_at"`
}

func ToConversationDTO(c entity.Conversation) ConversationDTO {
	participants := c.Participants
	if participants == nil {
		participants = []string{}
	}
	return ConversationDTO{
		ID:           c.ID,
		Participants: participants,
		MessageCount: len(c.Messages),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}

type ConversationsResponse struct {
	Conversations []ConversationDTO `json:"conversations"`
}

type ThreadResponse struct {
	Conversation ConversationDTO `json:"conversation"`
	Messages     []MessageDTO    `json:"messages"`
}

func ToThreadResponse(c entity.Conversation, msgs []*entity.Message) ThreadResponse {
	out := make([]MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ToMessageDTO(*m))
	}
	return ThreadResponse{Conversation: ToConversationDTO(c), Messages: out}
}
