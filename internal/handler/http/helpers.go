package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	"github.com/mikiasgoitom/Convene/internal/handler/http/dto"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{entity.ErrValidation, http.StatusBadRequest},
	{entity.ErrNotFound, http.StatusNotFound},
	{entity.ErrDuplicateEmail, http.StatusConflict},
	{entity.ErrInvalidCredentials, http.StatusUnauthorized},
	{entity.ErrUnauthenticated, http.StatusUnauthorized},
	{entity.ErrInvalidToken, http.StatusUnauthorized},
	{entity.ErrNotApproved, http.StatusForbidden},
	{entity.ErrForbidden, http.StatusForbidden},
	{entity.ErrNotParticipant, http.StatusForbidden},
}

// statusFromError maps domain errors to HTTP status codes. Anything
// unclassified, including storage and external service failures, is a 500.
func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// RespondError writes err with its mapped status. 5xx details stay in the logs.
func RespondError(c *gin.Context, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		ErrorHandler(c, status, "internal server error")
		return
	}
	ErrorHandler(c, status, err.Error())
}
