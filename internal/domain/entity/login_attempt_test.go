package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginAttemptState_BanDurationDoubles(t *testing.T) {
	tests := []struct {
		bans     int
		expected float64
	}{
		{0, 5},
		{1, 5},
		{2, 10},
		{3, 20},
		{4, 40},
		{5, 80},
	}

	for _, tt := range tests {
		s := &LoginAttemptState{BansNumber: tt.bans}
		assert.Equal(t, tt.expected, s.BanDurationMinutes(), "bans=%d", tt.bans)
	}
}

func TestLoginAttemptState_IsLocked(t *testing.T) {
	now := time.Now()
	lastFail := now.Add(-2 * time.Minute)

	locked := &LoginAttemptState{AttemptsLeft: 0, BansNumber: 1, LastFail: &lastFail}
	assert.True(t, locked.IsLocked(now), "inside the 5 minute window")

	cooledFail := now.Add(-6 * time.Minute)
	cooled := &LoginAttemptState{AttemptsLeft: 0, BansNumber: 1, LastFail: &cooledFail}
	assert.False(t, cooled.IsLocked(now), "past the 5 minute window")

	open := &LoginAttemptState{AttemptsLeft: 3, BansNumber: 1, LastFail: &lastFail}
	assert.False(t, open.IsLocked(now), "attempts remaining routes to open")

	neverFailed := &LoginAttemptState{AttemptsLeft: 0}
	assert.False(t, neverFailed.IsLocked(now), "nil last_fail means never locked out")
}

func TestLoginAttemptState_RemainingWaitMinutes(t *testing.T) {
	now := time.Now()
	lastFail := now.Add(-2 * time.Minute)

	s := &LoginAttemptState{AttemptsLeft: 0, BansNumber: 1, LastFail: &lastFail}
	assert.InDelta(t, 3.0, s.RemainingWaitMinutes(now), 0.01)

	// Second consecutive lockout doubles the window to 10 minutes.
	s.BansNumber = 2
	assert.InDelta(t, 8.0, s.RemainingWaitMinutes(now), 0.01)

	open := &LoginAttemptState{AttemptsLeft: 5}
	assert.Zero(t, open.RemainingWaitMinutes(now))
}
