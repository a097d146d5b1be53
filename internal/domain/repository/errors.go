package repository

import "errors"

var (
	// ErrNoAttemptsLeft means the login attempt counter was already at zero
	// when a failure tried to consume it.
	ErrNoAttemptsLeft = errors.New("no login attempts left")
	// ErrTokenAlreadyUsed means the password reset token was consumed by a
	// concurrent request.
	ErrTokenAlreadyUsed = errors.New("password reset token already used")
	// ErrDuplicateQuestion means the folder already holds a question with the
	// same prompt.
	ErrDuplicateQuestion = errors.New("question already exists in folder")
)
