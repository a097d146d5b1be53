package postgres

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// LikeRepo implements repository.LikeRepository.
type LikeRepo struct {
	db *gorm.DB
}

// NewLikeRepo creates a new like repository.
func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db: db}
}

// Like records the (user, folder) pair with ON CONFLICT DO NOTHING and bumps
// the folder counter only when the insert actually landed, all in one
// transaction. A repeat like is a no-op and reports false.
func (r *LikeRepo) Like(userID, folderID uint) (bool, error) {
	var counted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		like := &entity.QuizLike{UserID: userID, FolderID: folderID}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		counted = true
		return tx.Model(&entity.QuizFolder{}).
			Where("id = ?", folderID).
			Update("likes", gorm.Expr("likes + ?", 1)).
			Error
	})
	if err != nil {
		return false, fmt.Errorf("like folder #%d failed: %w", folderID, err)
	}
	return counted, nil
}
