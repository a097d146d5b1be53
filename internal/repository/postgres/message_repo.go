package postgres

import (
	"gorm.io/gorm"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// MessageRepo implements repository.ContactMessageRepository.
type MessageRepo struct {
	db *gorm.DB
}

// NewMessageRepo creates a new contact message repository.
func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create stores a contact form message.
func (r *MessageRepo) Create(message *entity.ContactMessage) error {
	return r.db.Create(message).Error
}

// List returns all messages, newest first.
func (r *MessageRepo) List() ([]entity.ContactMessage, error) {
	var messages []entity.ContactMessage
	err := r.db.Order("created_at DESC").Find(&messages).Error
	return messages, err
}
