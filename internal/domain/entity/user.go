package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents an account. Email is optional: accounts without an email
// cannot use self-service password recovery. AuthToken is an opaque
// per-account token minted at registration; it authorizes profile mutations
// (email add/update/remove) on top of the session.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Email     *string   `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	AuthToken string    `gorm:"size:64;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'user'" json:"-"` // "user" or "admin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeSave hashes the password unless it already is a bcrypt hash, so a
// user loaded and re-saved is not double-hashed.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] password hashing failed for username=%s: %v", u.Username, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword reports whether the given password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// HasEmail reports whether an email is configured on the account.
func (u *User) HasEmail() bool {
	return u.Email != nil && *u.Email != ""
}

// IsAdmin reports whether the account has administrator rights.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
