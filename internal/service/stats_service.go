package service

import (
	"fmt"
	"log"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

// StatsService books quiz attempts into per-subject statistics. The ledger
// is at-most-once per (user, folder): only the first attempt of a folder
// moves the counters, replays are silent no-ops.
type StatsService struct {
	statsRepo  repository.StatsRepository
	folderRepo repository.QuizFolderRepository
}

// NewStatsService creates a new statistics service.
func NewStatsService(statsRepo repository.StatsRepository, folderRepo repository.QuizFolderRepository) (*StatsService, error) {
	if statsRepo == nil {
		return nil, fmt.Errorf("StatsRepository is required for StatsService")
	}
	if folderRepo == nil {
		return nil, fmt.Errorf("QuizFolderRepository is required for StatsService")
	}
	return &StatsService{statsRepo: statsRepo, folderRepo: folderRepo}, nil
}

// RecordAttempt books a finished play of a folder. The subject comes from
// the folder itself, never from the client. Reports whether the attempt was
// counted.
func (s *StatsService) RecordAttempt(userID, folderID uint, asked, correct int64) (bool, error) {
	if asked <= 0 {
		return false, fmt.Errorf("%w: asked must be positive", apperrors.ErrValidation)
	}
	if correct < 0 || correct > asked {
		return false, fmt.Errorf("%w: correct must be between 0 and asked", apperrors.ErrValidation)
	}

	folder, err := s.folderRepo.GetByID(folderID)
	if err != nil {
		return false, err
	}
	if !entity.IsValidSubject(folder.Subject) {
		return false, fmt.Errorf("%w: folder has unknown subject %q", apperrors.ErrValidation, folder.Subject)
	}

	counted, err := s.statsRepo.RecordAttempt(userID, folderID, folder.Subject, asked, correct)
	if err != nil {
		return false, err
	}
	if !counted {
		log.Printf("[StatsService] repeat attempt of folder ID=%d by user ID=%d ignored", folderID, userID)
	}
	return counted, nil
}

// GetUserStats returns the user's per-subject counters.
func (s *StatsService) GetUserStats(userID uint) ([]entity.SubjectStats, error) {
	return s.statsRepo.GetByUser(userID)
}
