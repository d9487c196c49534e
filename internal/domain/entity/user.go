package entity

import (
	"time"
)

// DefaultProfilePictureURL is shown for users who never uploaded a picture.
const DefaultProfilePictureURL = "https://i.ibb.co/4pDNDk1/avatar.png"

// User represents a registered user in the system
type User struct {
	ID             string            `bson:"_id,omitempty" json:"id"`
	Name           string            `bson:"name" json:"name"`
	Email          string            `bson:"email" json:"email"`
	PasswordHash   string            `bson:"password_hash" json:"-"`
	Phone          string            `bson:"phone,omitempty" json:"phone,omitempty"`
	Address        string            `bson:"address,omitempty" json:"address,omitempty"`
	Gender         string            `bson:"gender,omitempty" json:"gender,omitempty"`
	Skills         []string          `bson:"skills,omitempty" json:"skills,omitempty"`
	Biography      string            `bson:"biography,omitempty" json:"biography,omitempty"`
	Socials        map[string]string `bson:"socials,omitempty" json:"socials,omitempty"`
	Locations      []string          `bson:"locations,omitempty" json:"locations,omitempty"`
	Role           UserRole          `bson:"role" json:"role"`
	Status         UserStatus        `bson:"status" json:"status"`
	ProfilePicture ProfilePicture    `bson:"profile_picture" json:"profilePicture"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `bson:"updated_at" json:"updated_at"`
}

// ProfilePicture points at an object in the external asset store.
// An empty PublicID means the placeholder image is in use.
type ProfilePicture struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url" json:"url"`
}

// DefaultProfilePicture returns the placeholder picture assigned at registration.
func DefaultProfilePicture() ProfilePicture {
	return ProfilePicture{PublicID: "", URL: DefaultProfilePictureURL}
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleUnauthorized UserRole = "unauthorized_user"
	UserRoleAdmin        UserRole = "admin"
	UserRoleMember       UserRole = "member"
)

func DefaultRole() UserRole {
	return UserRoleUnauthorized
}

// UserStatus is the admission state of an account.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
)

// IsApproved reports whether the account has passed the approval gate.
func (u *User) IsApproved() bool {
	return u.Status == UserStatusApproved
}

// UserSummary is the redacted view returned on login.
type UserSummary struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// Summary returns the redacted public view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
