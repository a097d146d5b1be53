package service

import (
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
	"github.com/lawandcode/lawquiz-api/pkg/auth"
)

// Username and password policy bounds.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
	MaxPasswordLength = 64
)

// AuthService handles registration, login and self-service account
// mutations. Login runs through the throttle service so failed passwords
// burn attempts and lockouts bite before bcrypt is even consulted.
type AuthService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.PasswordResetTokenRepository
	throttle   *LoginThrottleService
	jwtService *auth.JWTService
}

// RegisterInput carries the registration form data.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// AuthResponse is returned after a successful registration or login.
type AuthResponse struct {
	User        *entity.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	throttle *LoginThrottleService,
	jwtService *auth.JWTService,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if tokenRepo == nil {
		return nil, fmt.Errorf("PasswordResetTokenRepository is required for AuthService")
	}
	if throttle == nil {
		return nil, fmt.Errorf("LoginThrottleService is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		throttle:   throttle,
		jwtService: jwtService,
	}, nil
}

// Register creates a new account together with its login throttle row. The
// authentication token minted here authorizes later self-service email
// mutations.
func (s *AuthService) Register(input RegisterInput) (*AuthResponse, error) {
	username := normalizeUsername(input.Username)
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be between %d and %d characters",
			apperrors.ErrValidation, MinUsernameLength, MaxUsernameLength)
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	var email *string
	if strings.TrimSpace(input.Email) != "" {
		normalized := normalizeEmail(input.Email)
		if !isValidEmail(normalized) {
			return nil, fmt.Errorf("%w: invalid email address", apperrors.ErrValidation)
		}
		email = &normalized
	}

	user := &entity.User{
		Username:  username,
		Password:  input.Password,
		Email:     email,
		AuthToken: uuid.NewString(),
		Role:      "user",
	}

	// The unique indexes on username and email decide conflicts; no
	// check-then-insert race.
	if err := s.userRepo.CreateWithThrottleState(user); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	log.Printf("[AuthService] registered user ID=%d", user.ID)
	return &AuthResponse{User: user, AccessToken: token}, nil
}

// Login authenticates by username and password. Unknown username and wrong
// password are indistinguishable to the caller; a locked account answers
// with the remaining wait instead.
func (s *AuthService) Login(username, password string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(normalizeUsername(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	decision, err := s.throttle.Check(user.ID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &LockoutError{WaitMinutes: decision.WaitMinutes}
	}

	if !user.CheckPassword(password) {
		remaining, ferr := s.throttle.RecordFailure(user.ID)
		if ferr != nil {
			return nil, ferr
		}
		log.Printf("[AuthService] failed login for user ID=%d, %d attempts left", user.ID, remaining)
		return nil, ErrInvalidCredentials
	}

	if err := s.throttle.RecordSuccess(user.ID); err != nil {
		return nil, fmt.Errorf("failed to reset throttle: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &AuthResponse{User: user, AccessToken: token}, nil
}

// GetUserByID returns an account by ID.
func (s *AuthService) GetUserByID(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// SetEmail adds or changes the account's email. The caller must present the
// account's authentication token; changing an address invalidates every
// outstanding password reset token, which was mailed to the old one.
func (s *AuthService) SetEmail(userID uint, authToken, email string) error {
	user, err := s.requireAuthToken(userID, authToken)
	if err != nil {
		return err
	}

	normalized := normalizeEmail(email)
	if !isValidEmail(normalized) {
		return fmt.Errorf("%w: invalid email address", apperrors.ErrValidation)
	}

	if err := s.userRepo.UpdateEmail(userID, &normalized); err != nil {
		return err
	}

	if user.HasEmail() {
		if err := s.tokenRepo.DeleteByUserID(userID); err != nil {
			return fmt.Errorf("failed to invalidate reset tokens: %w", err)
		}
	}
	return nil
}

// RemoveEmail clears the account's email and invalidates every outstanding
// password reset token.
func (s *AuthService) RemoveEmail(userID uint, authToken string) error {
	if _, err := s.requireAuthToken(userID, authToken); err != nil {
		return err
	}
	if err := s.userRepo.UpdateEmail(userID, nil); err != nil {
		return err
	}
	return s.tokenRepo.DeleteByUserID(userID)
}

// DeleteAccount removes the account after a password confirmation. Owned
// folders, questions, tokens and statistics go away through cascades.
func (s *AuthService) DeleteAccount(userID uint, password string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(password) {
		return apperrors.ErrUnauthorized
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}
	log.Printf("[AuthService] deleted account ID=%d", userID)
	return nil
}

func (s *AuthService) requireAuthToken(userID uint, authToken string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if authToken == "" || user.AuthToken != authToken {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

// normalizeUsername trims whitespace and capitalizes the first letter, so
// "marie" and "Marie" are the same handle.
func normalizeUsername(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return username
	}
	runes := []rune(username)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" || len(email) > 100 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// validatePassword enforces the password policy: 8 to 64 characters with at
// least one upper, one lower, one digit and one special character.
func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters",
			apperrors.ErrValidation, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d characters",
			apperrors.ErrValidation, MaxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("%w: password must contain an uppercase letter, a lowercase letter, a digit and a special character",
			apperrors.ErrValidation)
	}
	return nil
}
