package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	"github.com/mikiasgoitom/Convene/internal/handler/http/dto"
	"github.com/mikiasgoitom/Convene/internal/usecase"
)

// Context keys set by AuthMiddleWare.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleWare verifies the bearer token and stores the caller's id and role
// in the gin context. The role comes from the token, not from storage, so it
// reflects the user's role at issue time until the token expires.
func AuthMiddleWare(jwtService usecase.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		scheme, tokenStr, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := jwtService.ParseAccessToken(strings.TrimSpace(tokenStr))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRoles must run after AuthMiddleWare.
func RequireRoles(roles ...entity.UserRole) gin.HandlerFunc {
	allowed := make(map[entity.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role, ok := RoleFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthenticated"})
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "insufficient role"})
			return
		}
		c.Next()
	}
}

// UserIDFrom returns the authenticated caller's id.
func UserIDFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func RoleFrom(c *gin.Context) (entity.UserRole, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := v.(entity.UserRole)
	return role, ok
}
