package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
)

func newThrottle(t *testing.T, repo repository.LoginAttemptRepository) *LoginThrottleService {
	t.Helper()
	s, err := NewLoginThrottleService(repo)
	require.NoError(t, err)
	return s
}

func TestLoginThrottle_Check_AllowsWithAttemptsLeft(t *testing.T) {
	repo := new(MockLoginAttemptRepository)
	repo.On("GetByUserID", uint(1)).Return(&entity.LoginAttemptState{
		UserID:       1,
		AttemptsLeft: 3,
	}, nil)

	decision, err := newThrottle(t, repo).Check(1)

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Zero(t, decision.WaitMinutes)
	repo.AssertExpectations(t)
}

func TestLoginThrottle_Check_RejectsInsideLockoutWindow(t *testing.T) {
	lastFail := time.Now().Add(-2 * time.Minute)
	repo := new(MockLoginAttemptRepository)
	repo.On("GetByUserID", uint(1)).Return(&entity.LoginAttemptState{
		UserID:       1,
		AttemptsLeft: 0,
		BansNumber:   1,
		LastFail:     &lastFail,
	}, nil)

	decision, err := newThrottle(t, repo).Check(1)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.InDelta(t, 3.0, decision.WaitMinutes, 0.05)
	repo.AssertNotCalled(t, "RefillAttempts", mock.Anything)
}

func TestLoginThrottle_Check_SecondLockoutDoublesWindow(t *testing.T) {
	// 6 minutes into a 10 minute window: still locked with ~4 to wait.
	lastFail := time.Now().Add(-6 * time.Minute)
	repo := new(MockLoginAttemptRepository)
	repo.On("GetByUserID", uint(1)).Return(&entity.LoginAttemptState{
		UserID:       1,
		AttemptsLeft: 0,
		BansNumber:   2,
		LastFail:     &lastFail,
	}, nil)

	decision, err := newThrottle(t, repo).Check(1)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.InDelta(t, 4.0, decision.WaitMinutes, 0.05)
}

func TestLoginThrottle_Check_RefillsAfterElapsedWindow(t *testing.T) {
	lastFail := time.Now().Add(-6 * time.Minute)
	repo := new(MockLoginAttemptRepository)
	repo.On("GetByUserID", uint(1)).Return(&entity.LoginAttemptState{
		UserID:       1,
		AttemptsLeft: 0,
		BansNumber:   1,
		LastFail:     &lastFail,
	}, nil)
	repo.On("RefillAttempts", uint(1)).Return(nil)

	decision, err := newThrottle(t, repo).Check(1)

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	repo.AssertExpectations(t)
}

func TestLoginThrottle_RecordFailure_KeepsCountdown(t *testing.T) {
	repo := new(MockLoginAttemptRepository)
	repo.On("ConsumeAttempt", uint(1)).Return(2, nil)

	remaining, err := newThrottle(t, repo).RecordFailure(1)

	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
	repo.AssertNotCalled(t, "MarkLockout", mock.Anything, mock.Anything)
}

func TestLoginThrottle_RecordFailure_StampsLockoutOnZero(t *testing.T) {
	repo := new(MockLoginAttemptRepository)
	repo.On("ConsumeAttempt", uint(1)).Return(0, nil)
	repo.On("MarkLockout", uint(1), mock.AnythingOfType("time.Time")).Return(nil)

	remaining, err := newThrottle(t, repo).RecordFailure(1)

	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	repo.AssertExpectations(t)
}

func TestLoginThrottle_RecordFailure_NoAttemptsLeftIsNoop(t *testing.T) {
	repo := new(MockLoginAttemptRepository)
	repo.On("ConsumeAttempt", uint(1)).Return(0, repository.ErrNoAttemptsLeft)

	remaining, err := newThrottle(t, repo).RecordFailure(1)

	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	repo.AssertNotCalled(t, "MarkLockout", mock.Anything, mock.Anything)
}

func TestLoginThrottle_RecordSuccess(t *testing.T) {
	repo := new(MockLoginAttemptRepository)
	repo.On("ResetOnSuccess", uint(1)).Return(nil)

	require.NoError(t, newThrottle(t, repo).RecordSuccess(1))
	repo.AssertExpectations(t)
}
