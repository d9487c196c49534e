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

// updatableProfileFields are the only keys UpdateProfileFields will $set.
var updatableProfileFields = map[string]struct{}{
	"name":       {},
	"phone":      {},
	"address":    {},
	"gender":     {},
	"skills":     {},
	"biography":  {},
	"socials":    {},
	"locations":  {},
	"updated_at": {},
}

type MongoUserRepository struct {
	collection *mongo.Collection
}

var _ contract.IUserRepository = (*MongoUserRepository)(nil)

func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %w", entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) GetUsersByStatus(ctx context.Context, status entity.UserStatus) ([]*entity.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) ApproveUser(ctx context.Context, id string, role entity.UserRole) (*entity.User, error) {
	update := bson.M{"$set": bson.M{
		"status":     entity.UserStatusApproved,
		"role":       role,
		"updated_at": time.Now(),
	}}
	return r.findOneAndSet(ctx, id, update)
}

func (r *MongoUserRepository) UpdateProfileFields(ctx context.Context, id string, fields map[string]interface{}) (*entity.User, error) {
	set := bson.M{}
	for k, v := range fields {
		if _, ok := updatableProfileFields[k]; !ok {
			return nil, fmt.Errorf("field %q is not updatable", k)
		}
		set[k] = v
	}
	if len(set) == 0 {
		return r.GetUserByID(ctx, id)
	}
	return r.findOneAndSet(ctx, id, bson.M{"$set": set})
}

func (r *MongoUserRepository) findOneAndSet(ctx context.Context, id string, update bson.M) (*entity.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user entity.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %w", entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) UpdateProfilePicture(ctx context.Context, id string, picture entity.ProfilePicture) error {
	update := bson.M{"$set": bson.M{
		"profile_picture": picture,
		"updated_at":      time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %w", entity.ErrNotFound)
	}
	return nil
}
