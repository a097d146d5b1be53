package entity

import (
	"math"
	"time"
)

// LoginMaxAttempts is how many consecutive failures an account gets before
// it is locked out.
const LoginMaxAttempts = 5

// LoginBaseBanMinutes is the first lockout window; each consecutive lockout
// doubles it (5, 10, 20, 40, ... minutes).
const LoginBaseBanMinutes = 5.0

// LoginAttemptState holds the per-account login throttle counters. One row
// per user, created in the same transaction as the account itself.
//
// LastFail stays NULL until the account's very first lockout and is never
// reset to NULL afterwards: AttemptsLeft > 0 already routes the check to the
// open state, so a stale timestamp is harmless.
type LoginAttemptState struct {
	UserID       uint       `gorm:"primaryKey" json:"user_id"`
	LastFail     *time.Time `json:"last_fail,omitempty"`
	AttemptsLeft int        `gorm:"not null;default:5" json:"attempts_left"`
	BansNumber   int        `gorm:"not null;default:0" json:"bans_number"`
}

// TableName sets the table name for GORM.
func (LoginAttemptState) TableName() string {
	return "login_attempts"
}

// BanDurationMinutes returns the lockout window for the current consecutive
// lockout count: 5 minutes doubled per lockout beyond the first.
func (s *LoginAttemptState) BanDurationMinutes() float64 {
	if s.BansNumber <= 1 {
		return LoginBaseBanMinutes
	}
	return LoginBaseBanMinutes * math.Pow(2, float64(s.BansNumber-1))
}

// IsLocked reports whether the account is inside its lockout window at the
// given instant.
func (s *LoginAttemptState) IsLocked(now time.Time) bool {
	if s.AttemptsLeft > 0 || s.LastFail == nil {
		return false
	}
	elapsed := now.Sub(*s.LastFail).Minutes()
	return elapsed <= s.BanDurationMinutes()
}

// RemainingWaitMinutes returns how long the account still has to wait,
// rounded to two decimals. Zero when the account is not locked.
func (s *LoginAttemptState) RemainingWaitMinutes(now time.Time) float64 {
	if !s.IsLocked(now) {
		return 0
	}
	remaining := s.BanDurationMinutes() - now.Sub(*s.LastFail).Minutes()
	return math.Round(remaining*100) / 100
}
