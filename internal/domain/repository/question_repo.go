package repository

import (
	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// QuestionRepository defines persistence operations for questions inside a
// folder.
type QuestionRepository interface {
	// Create inserts the question unless the folder already holds one with
	// the same prompt, in which case ErrDuplicateQuestion is returned.
	Create(question *entity.Question) error
	// CreateBatch inserts many questions at once, silently skipping prompts
	// the folder already holds. Returns how many rows were inserted.
	CreateBatch(questions []entity.Question) (int64, error)
	GetByFolder(folderID uint) ([]entity.Question, error)
	Update(question *entity.Question) error
	Delete(questionID, folderID uint) error
}
