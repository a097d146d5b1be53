package repository

import (
	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// PasswordResetTokenRepository defines persistence operations for password
// reset tokens.
type PasswordResetTokenRepository interface {
	// Replace deletes every token the user still has and inserts the new one,
	// in a single transaction.
	Replace(token *entity.PasswordResetToken) error
	GetByToken(token string) (*entity.PasswordResetToken, error)
	// MarkUsed flips used to true only when it is still false. Returns
	// ErrTokenAlreadyUsed when another request consumed the token first.
	MarkUsed(tokenID uint) error
	DeleteByUserID(userID uint) error
	DeleteUsedByUserID(userID uint) error
}
