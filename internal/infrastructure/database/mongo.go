package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection         = "users"
	ConversationsCollection = "conversations"
	MessagesCollection      = "messages"
)

// MongoDBClient wraps the driver client together with the application database.
type MongoDBClient struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongoDBClient connects and pings the deployment. Message appends run in
// transactions, so the deployment must be a replica set or sharded cluster.
func NewMongoDBClient(ctx context.Context, uri, dbName string) (*MongoDBClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &MongoDBClient{Client: client, DB: client.Database(dbName)}, nil
}

func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// indexPlan lists the indexes each collection needs. The unique indexes back
// email uniqueness and conversation find-or-create.
func indexPlan() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("status")},
		},
		ConversationsCollection: {
			{Keys: bson.D{{Key: "participant_key", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_participant_key")},
			{Keys: bson.D{{Key: "participants", Value: 1}}, Options: options.Index().SetName("participants")},
		},
		MessagesCollection: {
			{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}}, Options: options.Index().SetName("conversation_created")},
		},
	}
}

// EnsureIndexes creates missing indexes; existing ones are left untouched.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexPlan() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
