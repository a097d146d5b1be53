package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// StatsRepo implements repository.StatsRepository.
type StatsRepo struct {
	db *gorm.DB
}

// NewStatsRepo creates a new statistics repository.
func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// RecordAttempt books a quiz attempt into the subject statistics. The
// attempt row's (user_id, folder_id) primary key makes the ledger
// at-most-once: an ON CONFLICT DO NOTHING insert that lands zero rows means
// the folder was already counted, and the stats row stays untouched. The
// insert and the stats upsert share one transaction so a crash can never
// count an attempt without its statistics or vice versa.
func (r *StatsRepo) RecordAttempt(userID, folderID uint, subject string, asked, correct int64) (bool, error) {
	var counted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		attempt := &entity.QuizAttempt{UserID: userID, FolderID: folderID}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(attempt)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		counted = true

		stats := &entity.SubjectStats{
			UserID:    userID,
			Subject:   subject,
			Asked:     asked,
			Correct:   correct,
			UpdatedAt: time.Now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "subject"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"asked":      gorm.Expr("subject_stats.asked + ?", asked),
				"correct":    gorm.Expr("subject_stats.correct + ?", correct),
				"updated_at": time.Now(),
			}),
		}).Create(stats).Error
	})
	if err != nil {
		return false, fmt.Errorf("record attempt of folder #%d failed: %w", folderID, err)
	}
	return counted, nil
}

// GetByUser returns the user's per-subject statistics, alphabetically.
func (r *StatsRepo) GetByUser(userID uint) ([]entity.SubjectStats, error) {
	var stats []entity.SubjectStats
	err := r.db.Where("user_id = ?", userID).
		Order("subject ASC").
		Find(&stats).Error
	return stats, err
}
