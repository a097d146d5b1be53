package repository

import (
	"time"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// LoginAttemptRepository defines persistence operations for the per-account
// login throttle counters.
type LoginAttemptRepository interface {
	GetByUserID(userID uint) (*entity.LoginAttemptState, error)
	// ConsumeAttempt atomically decrements attempts_left when it is still
	// positive and returns the new value. Returns ErrNoAttemptsLeft when the
	// counter was already at zero.
	ConsumeAttempt(userID uint) (int, error)
	// MarkLockout stamps a fresh lockout: bans_number+1 and last_fail=at.
	MarkLockout(userID uint, at time.Time) error
	// RefillAttempts restores the counter to the maximum after a lockout
	// window has elapsed. The lockout history is kept.
	RefillAttempts(userID uint) error
	// ResetOnSuccess clears the throttle after a successful login:
	// attempts_left back to the maximum and bans_number to zero.
	ResetOnSuccess(userID uint) error
}
