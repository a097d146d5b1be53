package repository

import (
	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	UpdatePassword(userID uint, hashedPassword string) error
	UpdateEmail(userID uint, email *string) error
	Delete(userID uint) error
	// CreateWithThrottleState inserts the account and its login throttle row
	// in a single transaction.
	CreateWithThrottleState(user *entity.User) error
}
