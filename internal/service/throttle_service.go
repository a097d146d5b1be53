package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
)

// ThrottleDecision is the outcome of a pre-login throttle check.
type ThrottleDecision struct {
	Allowed bool
	// WaitMinutes is how long the account still has to wait when not
	// allowed, rounded to two decimals.
	WaitMinutes float64
}

// LoginThrottleService enforces the per-account login failure budget: five
// attempts, then a lockout window that doubles with every consecutive
// lockout (5, 10, 20, ... minutes).
type LoginThrottleService struct {
	attemptRepo repository.LoginAttemptRepository
}

// NewLoginThrottleService creates a new login throttle service.
func NewLoginThrottleService(attemptRepo repository.LoginAttemptRepository) (*LoginThrottleService, error) {
	if attemptRepo == nil {
		return nil, fmt.Errorf("LoginAttemptRepository is required for LoginThrottleService")
	}
	return &LoginThrottleService{attemptRepo: attemptRepo}, nil
}

// Check decides whether a login attempt may proceed. An account whose
// lockout window has elapsed gets its attempt budget refilled here, before
// the password is even looked at.
func (s *LoginThrottleService) Check(userID uint) (ThrottleDecision, error) {
	state, err := s.attemptRepo.GetByUserID(userID)
	if err != nil {
		return ThrottleDecision{}, fmt.Errorf("failed to load throttle state: %w", err)
	}

	now := time.Now()
	if state.AttemptsLeft > 0 {
		return ThrottleDecision{Allowed: true}, nil
	}

	if state.IsLocked(now) {
		return ThrottleDecision{WaitMinutes: state.RemainingWaitMinutes(now)}, nil
	}

	// Window elapsed: restore the budget but keep the lockout history so the
	// next lockout doubles.
	if err := s.attemptRepo.RefillAttempts(userID); err != nil {
		return ThrottleDecision{}, fmt.Errorf("failed to refill login attempts: %w", err)
	}
	log.Printf("[LoginThrottle] lockout window elapsed for user ID=%d, attempts refilled", userID)
	return ThrottleDecision{Allowed: true}, nil
}

// RecordFailure consumes one attempt after a failed password check and
// returns how many remain. Reaching zero stamps a fresh lockout. The
// decrement is a guarded UPDATE, so concurrent failures cannot push the
// counter below zero; a failure that finds no attempt to consume reports
// zero remaining without stamping anything.
func (s *LoginThrottleService) RecordFailure(userID uint) (int, error) {
	remaining, err := s.attemptRepo.ConsumeAttempt(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoAttemptsLeft) {
			return 0, nil
		}
		return 0, err
	}

	if remaining == 0 {
		if err := s.attemptRepo.MarkLockout(userID, time.Now()); err != nil {
			return 0, fmt.Errorf("failed to mark lockout: %w", err)
		}
		log.Printf("[LoginThrottle] user ID=%d locked out", userID)
	}
	return remaining, nil
}

// RecordSuccess clears the throttle after a successful login.
func (s *LoginThrottleService) RecordSuccess(userID uint) error {
	return s.attemptRepo.ResetOnSuccess(userID)
}

// MaxAttempts exposes the attempt budget for handler messages.
func (s *LoginThrottleService) MaxAttempts() int {
	return entity.LoginMaxAttempts
}
