package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// PostMessageInput targets either an existing conversation or a participant set.
type PostMessageInput struct {
	AuthorID       string
	ConversationID string
	Participants   []string
	Body           string
}

type IConversationUseCase interface {
	PostMessage(ctx context.Context, in PostMessageInput) (*entity.Message, error)
	GetThread(ctx context.Context, conversationID string) ([]*entity.Message, error)
	// GetThreadForParticipant fails with entity.ErrNotParticipant when userID is not in the conversation.
	GetThreadForParticipant(ctx context.Context, conversationID, userID string) (*entity.Conversation, []*entity.Message, error)
	GetConversation(ctx context.Context, conversationID string) (*entity.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error)
}
