package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

// PasswordResetService runs the reset token lifecycle: request a token by
// email, validate it, consume it exactly once for a password change.
type PasswordResetService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.PasswordResetTokenRepository
	emailService EmailService
	baseURL      string
}

// NewPasswordResetService creates a new password reset service.
func NewPasswordResetService(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	emailService EmailService,
	baseURL string,
) (*PasswordResetService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for PasswordResetService")
	}
	if tokenRepo == nil {
		return nil, fmt.Errorf("PasswordResetTokenRepository is required for PasswordResetService")
	}
	if emailService == nil {
		return nil, fmt.Errorf("EmailService is required for PasswordResetService")
	}
	return &PasswordResetService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		emailService: emailService,
		baseURL:      baseURL,
	}, nil
}

// RequestReset mints a fresh one hour token for the account behind the email
// and mails a reset link. The outcome is uniform whether or not the email
// matches an account, so the endpoint cannot be used to enumerate addresses.
// Any prior token the account had is invalidated by replacement.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[PasswordReset] reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}

	tokenValue, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := &entity.PasswordResetToken{
		UserID:    user.ID,
		Token:     tokenValue,
		ExpiresAt: time.Now().Add(entity.PasswordResetTokenTTL),
	}
	if err := s.tokenRepo.Replace(token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.baseURL, tokenValue)
	if err := s.emailService.SendPasswordReset(ctx, email, resetURL); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	log.Printf("[PasswordReset] reset token issued for user ID=%d", user.ID)
	return nil
}

// ValidateToken checks a token without consuming it and returns the account
// it belongs to. Unknown, consumed and expired tokens all collapse into the
// same error.
func (s *PasswordResetService) ValidateToken(tokenValue string) (*entity.User, error) {
	token, err := s.tokenRepo.GetByToken(tokenValue)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}
	if token.Used {
		return nil, ErrResetTokenUsed
	}
	if token.IsExpired(time.Now()) {
		return nil, ErrResetTokenInvalid
	}

	user, err := s.userRepo.GetByID(token.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}
	return user, nil
}

// Consume turns a valid token into a password change, exactly once. The
// guarded mark-used runs before the password update, so two concurrent
// submissions of the same token can never both change the password. If the
// password write itself fails the token stays consumed and the user has to
// request a fresh link; the old password is still in place.
func (s *PasswordResetService) Consume(tokenValue, newPassword string) error {
	token, err := s.tokenRepo.GetByToken(tokenValue)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if token.Used {
		return ErrResetTokenUsed
	}
	if token.IsExpired(time.Now()) {
		return ErrResetTokenInvalid
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	if err := s.tokenRepo.MarkUsed(token.ID); err != nil {
		if errors.Is(err, repository.ErrTokenAlreadyUsed) {
			return ErrResetTokenUsed
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	if err := s.userRepo.UpdatePassword(token.UserID, newPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokenRepo.DeleteUsedByUserID(token.UserID); err != nil {
		// The token is already consumed; a failed cleanup is not fatal.
		log.Printf("[PasswordReset] failed to clean up used tokens for user ID=%d: %v", token.UserID, err)
	}

	log.Printf("[PasswordReset] password reset completed for user ID=%d", token.UserID)
	return nil
}

// generateResetToken returns 32 random bytes in URL-safe base64.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
