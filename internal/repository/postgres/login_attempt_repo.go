package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

// LoginAttemptRepo implements repository.LoginAttemptRepository.
type LoginAttemptRepo struct {
	db *gorm.DB
}

// NewLoginAttemptRepo creates a new login throttle repository.
func NewLoginAttemptRepo(db *gorm.DB) *LoginAttemptRepo {
	return &LoginAttemptRepo{db: db}
}

// GetByUserID returns the throttle state for a user.
func (r *LoginAttemptRepo) GetByUserID(userID uint) (*entity.LoginAttemptState, error) {
	var state entity.LoginAttemptState
	err := r.db.First(&state, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &state, nil
}

// ConsumeAttempt decrements attempts_left only while it is positive, in a
// single guarded UPDATE so two concurrent failures can never push the
// counter below zero. RETURNING hands back the value after the decrement.
func (r *LoginAttemptRepo) ConsumeAttempt(userID uint) (int, error) {
	var remaining int
	result := r.db.Raw(
		"UPDATE login_attempts SET attempts_left = attempts_left - 1 WHERE user_id = ? AND attempts_left > 0 RETURNING attempts_left",
		userID,
	).Scan(&remaining)

	if result.Error != nil {
		return 0, fmt.Errorf("consume login attempt for user #%d failed: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, repository.ErrNoAttemptsLeft
	}
	return remaining, nil
}

// MarkLockout stamps a fresh lockout: one more consecutive ban and the
// failure time that anchors the waiting window.
func (r *LoginAttemptRepo) MarkLockout(userID uint, at time.Time) error {
	result := r.db.Model(&entity.LoginAttemptState{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"bans_number": gorm.Expr("bans_number + 1"),
			"last_fail":   at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RefillAttempts restores the counter after an elapsed lockout window. The
// guard on attempts_left = 0 keeps a concurrent refill from double-counting;
// bans_number and last_fail are left alone so the next lockout doubles.
func (r *LoginAttemptRepo) RefillAttempts(userID uint) error {
	return r.db.Model(&entity.LoginAttemptState{}).
		Where("user_id = ? AND attempts_left = 0", userID).
		Update("attempts_left", entity.LoginMaxAttempts).
		Error
}

// ResetOnSuccess clears the throttle after a successful login. last_fail is
// deliberately left as is: a positive attempts_left already marks the
// account as open.
func (r *LoginAttemptRepo) ResetOnSuccess(userID uint) error {
	result := r.db.Model(&entity.LoginAttemptState{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"attempts_left": entity.LoginMaxAttempts,
			"bans_number":   0,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
