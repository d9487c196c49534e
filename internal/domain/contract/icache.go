package contract

import (
	"context"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// IUserCache defines caching operations for user profiles.
type IUserCache interface {
	// GetUser reports a hit through the bool; a miss is not an error.
	GetUser(ctx context.Context, id string) (*entity.User, bool, error)
	SetUser(ctx context.Context, user *entity.User) error
	InvalidateUser(ctx context.Context, id string) error
}
