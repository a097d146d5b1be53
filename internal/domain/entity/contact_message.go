package entity

import "time"

// Contact form length limits.
const (
	MaxContactNameLength    = 50
	MaxContactMessageLength = 500
)

// ContactMessage is a message submitted through the public contact form,
// readable by the administrator.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for GORM.
func (ContactMessage) TableName() string {
	return "messages"
}
