package entity

import "time"

// Question length limits.
const (
	MaxPromptLength = 500
	MaxAnswerLength = 250
)

// Question is a prompt/answer pair belonging to exactly one folder. The
// (folder_id, prompt) pair is unique; inserts rely on the index rather than
// a lookup so concurrent duplicates cannot slip through.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FolderID  uint      `gorm:"not null;uniqueIndex:idx_questions_folder_prompt" json:"folder_id"`
	Prompt    string    `gorm:"size:500;not null;uniqueIndex:idx_questions_folder_prompt" json:"prompt"`
	Answer    string    `gorm:"size:250;not null" json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (Question) TableName() string {
	return "quiz_questions"
}
