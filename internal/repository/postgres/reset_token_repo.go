package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

// ResetTokenRepo implements repository.PasswordResetTokenRepository.
type ResetTokenRepo struct {
	db *gorm.DB
}

// NewResetTokenRepo creates a new password reset token repository.
func NewResetTokenRepo(db *gorm.DB) *ResetTokenRepo {
	return &ResetTokenRepo{db: db}
}

// Replace wipes every token the user still has and inserts the new one, so
// at most one reset token per account is ever live.
func (r *ResetTokenRepo) Replace(token *entity.PasswordResetToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).
			Delete(&entity.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

// GetByToken returns a reset token by its opaque value.
func (r *ResetTokenRepo) GetByToken(token string) (*entity.PasswordResetToken, error) {
	var t entity.PasswordResetToken
	err := r.db.Where("token = ?", token).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// MarkUsed flips used to true only while it is still false. RowsAffected == 0
// means a concurrent request already consumed the token.
func (r *ResetTokenRepo) MarkUsed(tokenID uint) error {
	result := r.db.Model(&entity.PasswordResetToken{}).
		Where("id = ? AND used = ?", tokenID, false).
		Update("used", true)
	if result.Error != nil {
		return fmt.Errorf("mark reset token #%d used failed: %w", tokenID, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrTokenAlreadyUsed
	}
	return nil
}

// DeleteByUserID removes every reset token the user has. Called whenever the
// account's email is added, changed or removed.
func (r *ResetTokenRepo) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entity.PasswordResetToken{}).Error
}

// DeleteUsedByUserID removes the user's consumed tokens after a completed
// reset.
func (r *ResetTokenRepo) DeleteUsedByUserID(userID uint) error {
	return r.db.Where("user_id = ? AND used = ?", userID, true).
		Delete(&entity.PasswordResetToken{}).Error
}
