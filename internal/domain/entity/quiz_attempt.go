package entity

import "time"

// QuizAttempt marks that a user's play-through of a folder has been counted
// into their subject stats. Unique per (user, folder): its conflict-ignored
// insert is the gate that makes stats accrual at-most-once.
type QuizAttempt struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	FolderID  uint      `gorm:"primaryKey" json:"folder_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for GORM.
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
