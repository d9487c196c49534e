package mocks

import (
	"context"
	"time"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

type MockConversationUsecase struct {
	PostErr            error
	GetThreadErr       error
	GetConversationErr error
	ListErr            error

	MockConversation entity.Conversation
	MockMessages     []*entity.Message

	LastPost usecasecontract.PostMessageInput
}

var _ usecasecontract.IConversationUseCase = (*MockConversationUsecase)(nil)

func NewMockConversationUsecase() *MockConversationUsecase {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &MockConversationUsecase{
		MockConversation: entity.Conversation{
			ID:             "conv-1",
			Participants:   []string{"user-a", "user-b"},
			ParticipantKey: "user-a:user-b",
			Messages:       []string{"msg-1"},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		MockMessages: []*entity.Message{
			{ID: "msg-1", AuthorID: "user-a", ConversationID: "conv-1", Body: "hello", CreatedAt: now},
		},
	}
}

func (m *MockConversationUsecase) PostMessage(ctx context.Context, in usecasecontract.PostMessageInput) (*entity.Message, error) {
	m.LastPost = in
	if m.PostErr != nil {
		return nil, m.PostErr
	}
	convID := in.ConversationID
	if convID == "" {
		convID = m.MockConversation.ID
	}
	return &entity.Message{ID: "msg-new", AuthorID: in.AuthorID, ConversationID: convID, Body: in.Body, CreatedAt: time.Now()}, nil
}

func (m *MockConversationUsecase) GetThread(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	if m.GetThreadErr != nil {
		return nil, m.GetThreadErr
	}
	return m.MockMessages, nil
}

func (m *MockConversationUsecase) GetConversation(ctx context.Context, conversationID string) (*entity.Conversation, error) {
	if m.GetConversationErr != nil {
		return nil, m.GetConversationErr
	}
	conv := m.MockConversation
	return &conv, nil
}

func (m *MockConversationUsecase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	conv := m.MockConversation
	return []*entity.Conversation{&conv}, nil
}

func (m *MockConversationUsecase) GetThreadForParticipant(ctx context.Context, conversationID, userID string) (*entity.Conversation, []*entity.Message, error) {
	if m.GetConversationErr != nil {
		return nil, nil, m.GetConversationErr
	}
	conv := m.MockConversation
	if !conv.HasParticipant(userID) {
		return nil, nil, entity.ErrNotParticipant
	}
	if m.GetThreadErr != nil {
		return nil, nil, m.GetThreadErr
	}
	return &conv, m.MockMessages, nil
}
