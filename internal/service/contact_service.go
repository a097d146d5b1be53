package service

import (
	"fmt"
	"strings"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

// ContactService stores contact form messages and serves them to the
// configured administrator account.
type ContactService struct {
	messageRepo repository.ContactMessageRepository
	adminUserID uint
}

// NewContactService creates a new contact service.
func NewContactService(messageRepo repository.ContactMessageRepository, adminUserID uint) (*ContactService, error) {
	if messageRepo == nil {
		return nil, fmt.Errorf("ContactMessageRepository is required for ContactService")
	}
	return &ContactService{messageRepo: messageRepo, adminUserID: adminUserID}, nil
}

// Submit stores a message from the public contact form.
func (s *ContactService) Submit(name, message string) error {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if name == "" || len(name) > entity.MaxContactNameLength {
		return fmt.Errorf("%w: name must be between 1 and %d characters",
			apperrors.ErrValidation, entity.MaxContactNameLength)
	}
	if message == "" || len(message) > entity.MaxContactMessageLength {
		return fmt.Errorf("%w: message must be between 1 and %d characters",
			apperrors.ErrValidation, entity.MaxContactMessageLength)
	}
	return s.messageRepo.Create(&entity.ContactMessage{Name: name, Message: message})
}

// ListMessages returns all messages to the administrator, newest first.
func (s *ContactService) ListMessages(requesterID uint) ([]entity.ContactMessage, error) {
	if s.adminUserID == 0 || requesterID != s.adminUserID {
		return nil, apperrors.ErrForbidden
	}
	return s.messageRepo.List()
}
