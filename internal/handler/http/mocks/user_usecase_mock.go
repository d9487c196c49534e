package mocks

import (
	"context"
	"strings"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior: a non-nil error is returned as-is.
	RegisterErr       error
	LoginErr          error
	LoginWithOAuthErr error
	ApproveErr        error
	ListPendingErr    error
	GetByIDErr        error
	UpdateProfileErr  error

	// Return values
	MockUser        entity.User
	MockPending     []*entity.User
	MockAccessToken string

	// Recorded inputs
	LastRegister     usecasecontract.RegisterInput
	LastUpdate       usecasecontract.ProfileUpdate
	LastApprovedRole entity.UserRole
	LastUserID       string
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:             "mock-user-id",
			Name:           "Test User",
			Email:          "test@example.com",
			PasswordHash:   "$2a$10$mockhash",
			Role:           entity.UserRoleUnauthorized,
			Status:         entity.UserStatusPending,
			ProfilePicture: entity.DefaultProfilePicture(),
		},
		MockAccessToken: "mock_access_token",
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, error) {
	m.LastRegister = in
	if m.RegisterErr != nil {
		return nil, m.RegisterErr
	}
	user := m.MockUser
	user.Email = in.Email
	return &user, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if m.LoginErr != nil {
		return nil, "", m.LoginErr
	}
	user := m.MockUser
	user.Status = entity.UserStatusApproved
	return &user, m.MockAccessToken, nil
}

func (m *MockUserUsecase) LoginWithOAuth(ctx context.Context, name, email string) (*entity.User, string, error) {
	if m.LoginWithOAuthErr != nil {
		return nil, "", m.LoginWithOAuthErr
	}
	user := m.MockUser
	user.Name, user.Email = name, strings.TrimSpace(email)
	return &user, m.MockAccessToken, nil
}

func (m *MockUserUsecase) Approve(ctx context.Context, userID string, role entity.UserRole) (*entity.User, error) {
	m.LastUserID, m.LastApprovedRole = userID, role
	if m.ApproveErr != nil {
		return nil, m.ApproveErr
	}
	user := m.MockUser
	user.ID, user.Role, user.Status = userID, role, entity.UserStatusApproved
	return &user, nil
}

func (m *MockUserUsecase) ListPending(ctx context.Context) ([]*entity.User, error) {
	if m.ListPendingErr != nil {
		return nil, m.ListPendingErr
	}
	return m.MockPending, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	m.LastUserID = userID
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	user := m.MockUser
	user.ID = userID
	return &user, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, update usecasecontract.ProfileUpdate) (*entity.User, error) {
	m.LastUserID, m.LastUpdate = userID, update
	if m.UpdateProfileErr != nil {
		return nil, m.UpdateProfileErr
	}
	user := m.MockUser
	user.ID = userID
	if update.Name != nil {
		user.Name = *update.Name
	}
	return &user, nil
}
