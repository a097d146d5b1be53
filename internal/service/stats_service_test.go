package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

func newStatsService(t *testing.T) (*StatsService, *MockStatsRepository, *MockFolderRepository) {
	t.Helper()
	statsRepo := new(MockStatsRepository)
	folderRepo := new(MockFolderRepository)
	s, err := NewStatsService(statsRepo, folderRepo)
	require.NoError(t, err)
	return s, statsRepo, folderRepo
}

func TestStatsService_RecordAttempt_CountsFirstPlay(t *testing.T) {
	s, statsRepo, folderRepo := newStatsService(t)
	folder := &entity.QuizFolder{ID: 5, Subject: "Droit Civil"}
	folderRepo.On("GetByID", uint(5)).Return(folder, nil)
	statsRepo.On("RecordAttempt", uint(1), uint(5), "Droit Civil", int64(10), int64(7)).Return(true, nil)

	counted, err := s.RecordAttempt(1, 5, 10, 7)

	require.NoError(t, err)
	assert.True(t, counted)
	statsRepo.AssertExpectations(t)
}

func TestStatsService_RecordAttempt_ReplayIsNoop(t *testing.T) {
	s, statsRepo, folderRepo := newStatsService(t)
	folder := &entity.QuizFolder{ID: 5, Subject: "Droit Civil"}
	folderRepo.On("GetByID", uint(5)).Return(folder, nil)
	statsRepo.On("RecordAttempt", uint(1), uint(5), "Droit Civil", int64(10), int64(7)).Return(false, nil)

	counted, err := s.RecordAttempt(1, 5, 10, 7)

	require.NoError(t, err)
	assert.False(t, counted)
}

func TestStatsService_RecordAttempt_Validation(t *testing.T) {
	s, statsRepo, _ := newStatsService(t)

	_, err := s.RecordAttempt(1, 5, 0, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "asked must be positive")

	_, err = s.RecordAttempt(1, 5, 10, 11)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "correct cannot exceed asked")

	_, err = s.RecordAttempt(1, 5, 10, -1)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "correct cannot be negative")

	statsRepo.AssertNotCalled(t, "RecordAttempt",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStatsService_RecordAttempt_UnknownFolder(t *testing.T) {
	s, _, folderRepo := newStatsService(t)
	folderRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	_, err := s.RecordAttempt(1, 99, 10, 7)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStatsService_GetUserStats(t *testing.T) {
	s, statsRepo, _ := newStatsService(t)
	statsRepo.On("GetByUser", uint(1)).Return([]entity.SubjectStats{
		{UserID: 1, Subject: "Droit Civil", Asked: 10, Correct: 7},
	}, nil)

	stats, err := s.GetUserStats(1)

	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(7), stats[0].Correct)
}
