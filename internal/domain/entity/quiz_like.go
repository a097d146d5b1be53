package entity

import "time"

// QuizLike marks that a user liked a public folder. Unique per (user,
// folder): the conflict-ignored insert gates the folder's like counter so a
// user can never count twice.
type QuizLike struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	FolderID  uint      `gorm:"primaryKey" json:"folder_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for GORM.
func (QuizLike) TableName() string {
	return "quiz_likes"
}
