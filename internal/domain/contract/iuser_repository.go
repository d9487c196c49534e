package contract

import (
	"context"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// IUserRepository persists users. Lookups that find nothing return an error
// wrapping entity.ErrNotFound.
type IUserRepository interface {
	// CreateUser inserts a user. A violated email uniqueness constraint
	// is reported as entity.ErrDuplicateEmail.
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByEmail retrieves a user by exact email match.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetUsersByStatus lists users in storage order.
	GetUsersByStatus(ctx context.Context, status entity.UserStatus) ([]*entity.User, error)
	// ApproveUser sets status=approved and the given role, returning the updated user.
	ApproveUser(ctx context.Context, id string, role entity.UserRole) (*entity.User, error)
	// UpdateProfileFields applies a $set of allow-listed profile fields.
	UpdateProfileFields(ctx context.Context, id string, fields map[string]interface{}) (*entity.User, error)
	// UpdateProfilePicture replaces the picture pointer of a single user.
	UpdateProfilePicture(ctx context.Context, id string, picture entity.ProfilePicture) error
}
