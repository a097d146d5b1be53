package repository

import (
	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// ContactMessageRepository defines persistence operations for contact form
// messages.
type ContactMessageRepository interface {
	Create(message *entity.ContactMessage) error
	List() ([]entity.ContactMessage, error)
}
