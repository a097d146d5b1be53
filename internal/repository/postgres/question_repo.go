package postgres

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

// QuestionRepo implements repository.QuestionRepository.
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo creates a new question repository.
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create inserts the question with ON CONFLICT DO NOTHING against the
// (folder_id, prompt) unique index, so a duplicate prompt is detected in one
// round trip instead of a racy check-then-insert.
func (r *QuestionRepo) Create(question *entity.Question) error {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(question)
	if result.Error != nil {
		return fmt.Errorf("create question failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrDuplicateQuestion
	}
	return nil
}

// CreateBatch inserts many questions at once, silently skipping prompts the
// folder already holds. Returns how many rows were actually inserted.
func (r *QuestionRepo) CreateBatch(questions []entity.Question) (int64, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&questions)
	if result.Error != nil {
		return 0, fmt.Errorf("batch create questions failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// GetByFolder returns all questions of a folder in insertion order.
func (r *QuestionRepo) GetByFolder(folderID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("folder_id = ?", folderID).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}

// Update rewrites a question's prompt and answer, scoped to its folder.
func (r *QuestionRepo) Update(question *entity.Question) error {
	result := r.db.Model(&entity.Question{}).
		Where("id = ? AND folder_id = ?", question.ID, question.FolderID).
		Updates(map[string]interface{}{
			"prompt": question.Prompt,
			"answer": question.Answer,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return repository.ErrDuplicateQuestion
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a question, scoped to its folder.
func (r *QuestionRepo) Delete(questionID, folderID uint) error {
	result := r.db.Where("id = ? AND folder_id = ?", questionID, folderID).
		Delete(&entity.Question{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
