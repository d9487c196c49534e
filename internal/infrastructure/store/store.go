package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mikiasgoitom/Convene/internal/domain/contract"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// UserCacheStore caches user documents in Redis, encoded as BSON so the
// cached value matches the stored record field for field.
type UserCacheStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.IUserCache = (*UserCacheStore)(nil)

func NewUserCacheStore(rdb *redis.Client, ttl time.Duration) *UserCacheStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &UserCacheStore{rdb: rdb, ttl: ttl}
}

func userKey(id string) string { return fmt.Sprintf("user:id:%s", id) }

func (c *UserCacheStore) GetUser(ctx context.Context, id string) (*entity.User, bool, error) {
	b, err := c.rdb.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var user entity.User
	if err := bson.Unmarshal(b, &user); err != nil {
		// a corrupt entry counts as a miss
		return nil, false, nil
	}
	return &user, true, nil
}

func (c *UserCacheStore) SetUser(ctx context.Context, user *entity.User) error {
	data, err := encodeUser(user)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, userKey(user.ID), data, c.ttl).Err()
}

func (c *UserCacheStore) InvalidateUser(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, userKey(id)).Err()
}

func encodeUser(user *entity.User) ([]byte, error) {
	if user == nil || user.ID == "" {
		return nil, errors.New("cannot cache user without id")
	}
	return bson.Marshal(user)
}
