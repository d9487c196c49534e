package contract

import (
	"context"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// IConversationRepository persists conversations and the messages they own.
type IConversationRepository interface {
	GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error)
	// FindOrCreateByParticipants resolves the conversation for an exact participant set,
	// creating it when none exists. Repeated calls with the same set return the same id.
	FindOrCreateByParticipants(ctx context.Context, participants []string) (*entity.Conversation, error)
	// AppendMessage inserts msg and pushes its id onto the conversation's message list
	// as one unit.
	AppendMessage(ctx context.Context, msg *entity.Message) error
	// GetMessagesByIDs returns the messages with the given ids, in the order of ids.
	// Ids with no stored message are skipped.
	GetMessagesByIDs(ctx context.Context, ids []string) ([]*entity.Message, error)
	GetConversationsByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error)
}
