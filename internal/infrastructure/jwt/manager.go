package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const typeAccess = "access"

// CustomClaims is the signed payload of an access token.
type CustomClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	TokenType string `json:"typ"`
}

// JWTManager signs and verifies HS256 access tokens.
type JWTManager struct {
	secretKey string
	accessTTL time.Duration
	issuer    string
	now       func() time.Time
}

func NewJWTManager(secretKey string, accessTTL time.Duration, issuer string) (*JWTManager, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if accessTTL <= 0 {
		return nil, fmt.Errorf("invalid access token ttl %s", accessTTL)
	}
	return &JWTManager{secretKey: secretKey, accessTTL: accessTTL, issuer: issuer, now: time.Now}, nil
}

// GenerateAccessToken issues a token whose subject is userID.
func (m *JWTManager) GenerateAccessToken(userID, role string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		Role:      role,
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature, expiry and token type.
func (m *JWTManager) VerifyToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("access token is invalid")
	}
	if claims.TokenType != typeAccess {
		return nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.Subject == "" {
		return nil, errors.New("access token has no subject")
	}
	return claims, nil
}
