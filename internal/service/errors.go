package service

import (
	"errors"
	"fmt"
)

// Flow specific errors used by handlers for stable error_type mapping.
var (
	// ErrAccountLocked means the account is inside a login lockout window.
	ErrAccountLocked = errors.New("account_locked")
	// ErrInvalidCredentials covers both unknown identity and wrong password,
	// so login responses never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid_credentials")
	// ErrResetTokenInvalid means the password reset token is unknown or
	// expired.
	ErrResetTokenInvalid = errors.New("reset_token_invalid")
	// ErrResetTokenUsed means the token was already consumed. It wraps
	// ErrResetTokenInvalid so callers matching the broad sentinel still
	// catch it; the response body stays the same either way.
	ErrResetTokenUsed = fmt.Errorf("reset_token_used: %w", ErrResetTokenInvalid)
	// ErrQuizNotPlayable means the folder holds too few questions to play.
	ErrQuizNotPlayable = errors.New("quiz_not_playable")
)

// LockoutError carries the remaining lockout wait so handlers can tell the
// user how long to come back in. errors.Is matches it against
// ErrAccountLocked.
type LockoutError struct {
	WaitMinutes float64
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("account locked, retry in %.2f minutes", e.WaitMinutes)
}

func (e *LockoutError) Is(target error) bool {
	return target == ErrAccountLocked
}
