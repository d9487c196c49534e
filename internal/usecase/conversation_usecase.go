package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Convene/internal/domain/contract"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// ConversationUsecase posts messages and reads conversation threads.
type ConversationUsecase struct {
	conversationRepo contract.IConversationRepository
	userRepo         contract.IUserRepository
	uuidGenerator    contract.IUUIDGenerator
	logger           usecasecontract.IAppLogger
	metrics          usecasecontract.IMetrics
}

var _ usecasecontract.IConversationUseCase = (*ConversationUsecase)(nil)

func NewConversationUsecase(
	conversationRepo contract.IConversationRepository,
	userRepo contract.IUserRepository,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	metrics usecasecontract.IMetrics,
) *ConversationUsecase {
	return &ConversationUsecase{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		uuidGenerator:    uuidGenerator,
		logger:           logger,
		metrics:          metrics,
	}
}

// PostMessage appends a message to an existing conversation, or to the
// conversation of the given participant set, creating it on first contact.
func (uc *ConversationUsecase) PostMessage(ctx context.Context, in usecasecontract.PostMessageInput) (*entity.Message, error) {
	if in.AuthorID == "" {
		return nil, fmt.Errorf("%w: author is required", entity.ErrValidation)
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, fmt.Errorf("%w: message body is required", entity.ErrValidation)
	}
	hasConversation := in.ConversationID != ""
	hasParticipants := len(in.Participants) > 0
	if hasConversation == hasParticipants {
		return nil, fmt.Errorf("%w: provide either a conversation id or participants", entity.ErrValidation)
	}

	var conv *entity.Conversation
	var err error
	if hasConversation {
		conv, err = uc.loadConversation(ctx, in.ConversationID)
		if err != nil {
			return nil, err
		}
		if !conv.HasParticipant(in.AuthorID) {
			return nil, entity.ErrNotParticipant
		}
	} else {
		conv, err = uc.resolveConversation(ctx, in.AuthorID, in.Participants)
		if err != nil {
			return nil, err
		}
	}

	msg := &entity.Message{
		ID:             uc.uuidGenerator.NewUUID(),
		AuthorID:       in.AuthorID,
		ConversationID: conv.ID,
		Body:           in.Body,
		CreatedAt:      time.Now(),
	}
	if err := uc.conversationRepo.AppendMessage(ctx, msg); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to append message to conversation %s: %v", conv.ID, err)
		return nil, fmt.Errorf("%w: failed to post message", entity.ErrStorageFailure)
	}

	uc.metrics.RecordMessagePosted()
	return msg, nil
}

// resolveConversation finds or creates the conversation for participants plus the author.
// Every participant must be an existing user.
func (uc *ConversationUsecase) resolveConversation(ctx context.Context, authorID string, participants []string) (*entity.Conversation, error) {
	members := entity.NormalizeParticipants(append([]string{authorID}, participants...))
	if len(members) < 2 {
		return nil, fmt.Errorf("%w: a conversation needs at least one other participant", entity.ErrValidation)
	}

	for _, id := range members {
		if _, err := uc.userRepo.GetUserByID(ctx, id); err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, fmt.Errorf("%w: participant %s not found", entity.ErrNotFound, id)
			}
			uc.logger.Errorf("failed to look up participant %s: %v", id, err)
			return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
		}
	}

	conv, err := uc.conversationRepo.FindOrCreateByParticipants(ctx, members)
	if err != nil {
		uc.logger.Errorf("failed to resolve conversation for %v: %v", members, err)
		return nil, fmt.Errorf("%w: failed to resolve conversation", entity.ErrStorageFailure)
	}
	return conv, nil
}

func (uc *ConversationUsecase) loadConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	conv, err := uc.conversationRepo.GetConversationByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to load conversation %s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return conv, nil
}

// GetThread returns the messages of a conversation in append order.
func (uc *ConversationUsecase) GetThread(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	conv, err := uc.loadConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return uc.messagesOf(ctx, conv)
}

// GetThreadForParticipant loads the conversation once, checks that userID
// takes part in it, and returns it with its messages in append order.
func (uc *ConversationUsecase) GetThreadForParticipant(ctx context.Context, conversationID, userID string) (*entity.Conversation, []*entity.Message, error) {
	conv, err := uc.loadConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, nil, entity.ErrNotParticipant
	}
	msgs, err := uc.messagesOf(ctx, conv)
	if err != nil {
		return nil, nil, err
	}
	return conv, msgs, nil
}

func (uc *ConversationUsecase) messagesOf(ctx context.Context, conv *entity.Conversation) ([]*entity.Message, error) {
	msgs, err := uc.conversationRepo.GetMessagesByIDs(ctx, conv.Messages)
	if err != nil {
		uc.logger.Errorf("failed to load messages of conversation %s: %v", conv.ID, err)
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return msgs, nil
}

func (uc *ConversationUsecase) GetConversation(ctx context.Context, conversationID string) (*entity.Conversation, error) {
	return uc.loadConversation(ctx, conversationID)
}

// ListConversations returns the conversations userID takes part in.
func (uc *ConversationUsecase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	convs, err := uc.conversationRepo.GetConversationsByParticipant(ctx, userID)
	if err != nil {
		uc.logger.Errorf("failed to list conversations of user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return convs, nil
}
