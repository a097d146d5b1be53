package entity

import "time"

// PasswordResetTokenTTL is how long a reset token stays valid.
const PasswordResetTokenTTL = time.Hour

// PasswordResetToken is a single-use, time-bounded recovery token. At most
// one live token exists per account: issuing a new one deletes all prior
// tokens first.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for GORM.
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// IsExpired reports whether the token is past its expiry at the given
// instant.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsValid reports whether the token can still be consumed.
func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return !t.Used && !t.IsExpired(now)
}
