package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/Convene/internal/domain/contract"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository stores conversations and their messages in two
// collections. A conversation's messages field lists message ids in append order.
type ConversationRepository struct {
	client        *mongo.Client
	conversations *mongo.Collection
	messages      *mongo.Collection
	uuidGenerator contract.IUUIDGenerator
}

var _ contract.IConversationRepository = (*ConversationRepository)(nil)

func NewConversationRepository(db *mongo.Database, uuidGenerator contract.IUUIDGenerator) *ConversationRepository {
	return &ConversationRepository{
		client:        db.Client(),
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
		uuidGenerator: uuidGenerator,
	}
}

func (r *ConversationRepository) GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error) {
	return r.findConversation(ctx, bson.M{"_id": id})
}

func (r *ConversationRepository) findConversation(ctx context.Context, filter bson.M) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := r.conversations.FindOne(ctx, filter).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("conversation %w", entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

// FindOrCreateByParticipants upserts on the unique participant_key. Two
// concurrent upserts can both miss and race on insert; the loser gets a
// duplicate-key error and reads the winner's document.
func (r *ConversationRepository) FindOrCreateByParticipants(ctx context.Context, participants []string) (*entity.Conversation, error) {
	members := entity.NormalizeParticipants(participants)
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: empty participant set", entity.ErrValidation)
	}
	key := entity.ParticipantKey(members)
	now := time.Now()

	update := bson.M{"$setOnInsert": bson.M{
		"_id":             r.uuidGenerator.NewUUID(),
		"participants":    members,
		"participant_key": key,
		"messages":        []string{},
		"created_at":      now,
		"updated_at":      now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var conv entity.Conversation
	err := r.conversations.FindOneAndUpdate(ctx, bson.M{"participant_key": key}, update, opts).Decode(&conv)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.findConversation(ctx, bson.M{"participant_key": key})
		}
		return nil, fmt.Errorf("failed to upsert conversation: %w", err)
	}
	return &conv, nil
}

// AppendMessage inserts msg and pushes its id in a single transaction, so a
// message never exists without being listed by its conversation.
func (r *ConversationRepository) AppendMessage(ctx context.Context, msg *entity.Message) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, r.appendInSession(sessCtx, msg)
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func (r *ConversationRepository) appendInSession(ctx context.Context, msg *entity.Message) error {
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return err
	}
	update := bson.M{
		"$push": bson.M{"messages": msg.ID},
		"$set":  bson.M{"updated_at": msg.CreatedAt},
	}
	result, err := r.conversations.UpdateOne(ctx, bson.M{"_id": msg.ConversationID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("conversation %w", entity.ErrNotFound)
	}
	return nil
}

// GetMessagesByIDs loads messages by id. Callers pass a conversation's
// messages field, so the result is in append order.
func (r *ConversationRepository) GetMessagesByIDs(ctx context.Context, ids []string) ([]*entity.Message, error) {
	if len(ids) == 0 {
		return []*entity.Message{}, nil
	}

	cursor, err := r.messages.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var found []*entity.Message
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return orderByIDs(found, ids), nil
}

func orderByIDs(msgs []*entity.Message, ids []string) []*entity.Message {
	byID := make(map[string]*entity.Message, len(msgs))
	for _, m := range msgs {
		byID[m.ID] = m
	}
	out := make([]*entity.Message, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// GetConversationsByParticipant lists conversations with the most recent activity first.
func (r *ConversationRepository) GetConversationsByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.conversations.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	convs := []*entity.Conversation{}
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return convs, nil
}
