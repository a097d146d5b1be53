package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
	"github.com/lawandcode/lawquiz-api/internal/service"
)

// respondError maps service and repository errors onto HTTP statuses with a
// stable error_type key.
func respondError(c *gin.Context, err error) {
	var lockout *service.LockoutError
	if errors.As(err, &lockout) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":        "Account temporarily locked",
			"error_type":   "account_locked",
			"wait_minutes": lockout.WaitMinutes,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password", "error_type": "invalid_credentials"})
	case errors.Is(err, service.ErrResetTokenInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset link is invalid or has expired", "error_type": "reset_token_invalid"})
	case errors.Is(err, service.ErrQuizNotPlayable):
		c.JSON(http.StatusConflict, gin.H{"error": "Quiz needs more than 3 questions to be played", "error_type": "quiz_not_playable"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "error_type": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal"})
	}
}
