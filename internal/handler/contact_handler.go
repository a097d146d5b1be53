package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawandcode/lawquiz-api/internal/middleware"
	"github.com/lawandcode/lawquiz-api/internal/service"
)

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest is the public contact form. Website is a honeypot field:
// humans never see it, bots fill it.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=50"`
	Message string `json:"message" binding:"required,max=500"`
	Website string `json:"website"`
}

// Submit handles POST /api/messages.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	// A filled honeypot gets the success answer but the message is dropped.
	if req.Website != "" {
		log.Printf("[ContactHandler] honeypot triggered from IP=%s", c.ClientIP())
		c.JSON(http.StatusOK, gin.H{"message": "Message sent"})
		return
	}

	if err := h.contactService.Submit(req.Name, req.Message); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message sent"})
}

// List handles GET /api/messages (administrator only).
func (h *ContactHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	messages, err := h.contactService.ListMessages(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
