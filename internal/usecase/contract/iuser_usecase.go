package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// RegisterInput carries the registration form. Only Email and Password are required.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	Address   string
	Gender    string
	Skills    []string
	Biography string
	Socials   map[string]string
	Locations []string
}

// ProfileUpdate lists the fields a profile update may touch. Nil means unchanged.
type ProfileUpdate struct {
	Name      *string
	Phone     *string
	Address   *string
	Gender    *string
	Skills    []string
	Biography *string
	Socials   map[string]string
	Locations []string
}

// IUserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	LoginWithOAuth(ctx context.Context, name, email string) (*entity.User, string, error)
	Approve(ctx context.Context, userID string, role entity.UserRole) (*entity.User, error)
	ListPending(ctx context.Context) ([]*entity.User, error)
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*entity.User, error)
}
