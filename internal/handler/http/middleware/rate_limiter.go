package middleware

import (
	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Convene/internal/handler/http/dto"
)

// RateLimiter rejects requests over lmt's per-client budget with lmt's status and message.
func RateLimiter(lmt *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpErr := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpErr != nil {
			c.Header("Content-Type", "application/json")
			c.AbortWithStatusJSON(httpErr.StatusCode, dto.ErrorResponse{Error: httpErr.Message})
			return
		}
		c.Next()
	}
}
