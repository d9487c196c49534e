package dto

import (
	"time"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// RegisterRequest is the registration form. Only email and password are required.
type RegisterRequest struct {
	Name      string            `json:"name"`
	Email     string            `json:"email" binding:"required"`
	Password  string            `json:"password" binding:"required"`
	Phone     string            `json:"phone"`
	Address   string            `json:"address"`
	Gender    string            `json:"gender"`
	Skills    []string          `json:"skills"`
	Biography string            `json:"biography"`
	Socials   map[string]string `json:"socials"`
	Locations []string          `json:"locations"`
}

func (r RegisterRequest) ToInput() usecasecontract.RegisterInput {
	return usecasecontract.RegisterInput{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		Address:   r.Address,
		Gender:    r.Gender,
		Skills:    r.Skills,
		Biography: r.Biography,
		Socials:   r.Socials,
		Locations: r.Locations,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest accepts only profile fields. Unknown keys such as
// status or role are ignored by the decoder.
type UpdateProfileRequest struct {
	Name      *string           `json:"name"`
	Phone     *string           `json:"phone"`
	Address   *string           `json:"address"`
	Gender    *string           `json:"gender"`
	Skills    []string          `json:"skills"`
	Biography *string           `json:"biography"`
	Socials   map[string]string `json:"socials"`
	Locations []string          `json:"locations"`
}

func (r UpdateProfileRequest) ToUpdate() usecasecontract.ProfileUpdate {
	return usecasecontract.ProfileUpdate{
		Name:      r.Name,
		Phone:     r.Phone,
		Address:   r.Address,
		Gender:    r.Gender,
		Skills:    r.Skills,
		Biography: r.Biography,
		Socials:   r.Socials,
		Locations: r.Locations,
	}
}

type ApproveRequest struct {
	Role string `json:"role" binding:"required,rolename"`
}

// UserResponse is the public profile; the password hash is never included.
type UserResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone,omitempty"`
	Address        string                `json:"address,omitempty"`
	Gender         string                `json:"gender,omitempty"`
	Skills         []string              `json:"skills,omitempty"`
	Biography      string                `json:"biography,omitempty"`
	Socials        map[string]string     `json:"socials,omitempty"`
	Locations      []string              `json:"locations,omitempty"`
	Role           string                `json:"role"`
	Status         string                `json:"status"`
	ProfilePicture entity.ProfilePicture `json:"profilePicture"`
	CreatedAt      string                `json:"created_at"`
}

// converts an entity.User to a UserResponse DTO.
func ToUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Phone:          user.Phone,
		Address:        user.Address,
		Gender:         user.Gender,
		Skills:         user.Skills,
		Biography:      user.Biography,
		Socials:        user.Socials,
		Locations:      user.Locations,
		Role:           string(user.Role),
		Status:         string(user.Status),
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
	}
}

func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(*u))
	}
	return out
}

type UserEnvelope struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type UsersEnvelope struct {
	Message string         `json:"message"`
	Users   []UserResponse `json:"users"`
}

// LoginResponse is the DTO for a successful login.
type LoginResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    entity.UserSummary `json:"user"`
}

type ProfilePictureResponse struct {
	Message        string                `json:"message"`
	ProfilePicture entity.ProfilePicture `json:"profilePicture"`
}
