package usecase

import (
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// JWTService defines the interface for JWT operations.
type JWTService interface {
	GenerateAccessToken(userID string, role entity.UserRole) (string, error)
	// ParseAccessToken fails with an error wrapping entity.ErrInvalidToken.
	ParseAccessToken(token string) (*entity.Claims, error)
}
