package entity

import "github.com/golang-jwt/jwt/v5"

// Claims is the identity carried by an access token.
type Claims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
