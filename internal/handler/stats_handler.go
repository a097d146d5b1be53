package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawandcode/lawquiz-api/internal/middleware"
	"github.com/lawandcode/lawquiz-api/internal/service"
)

// StatsHandler serves the attempt ledger and profile statistics routes.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new statistics handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// RecordAttemptRequest books a finished quiz play.
type RecordAttemptRequest struct {
	FolderID uint  `json:"folder_id" binding:"required"`
	Asked    int64 `json:"asked" binding:"required,gt=0"`
	Correct  int64 `json:"correct" binding:"gte=0"`
}

// RecordAttempt handles POST /api/stats/attempts.
func (h *StatsHandler) RecordAttempt(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req RecordAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	counted, err := h.statsService.RecordAttempt(userID, req.FolderID, req.Asked, req.Correct)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counted": counted})
}

// GetStats handles GET /api/stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	stats, err := h.statsService.GetUserStats(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
