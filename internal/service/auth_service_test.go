package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
	"github.com/lawandcode/lawquiz-api/pkg/auth"
)

func newAuthService(t *testing.T, userRepo *MockUserRepository, tokenRepo *MockResetTokenRepository, attemptRepo *MockLoginAttemptRepository) *AuthService {
	t.Helper()
	throttle, err := NewLoginThrottleService(attemptRepo)
	require.NoError(t, err)
	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)
	s, err := NewAuthService(userRepo, tokenRepo, throttle, jwtService)
	require.NoError(t, err)
	return s
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("CreateWithThrottleState", mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.User).ID = 7
		}).
		Return(nil)

	s := newAuthService(t, userRepo, new(MockResetTokenRepository), new(MockLoginAttemptRepository))
	resp, err := s.Register(RegisterInput{
		Username: "  marie  ",
		Password: "Str0ng!pass",
		Email:    "Marie@Example.COM",
	})

	require.NoError(t, err)
	assert.Equal(t, "Marie", resp.User.Username, "username is trimmed and capitalized")
	require.NotNil(t, resp.User.Email)
	assert.Equal(t, "marie@example.com", *resp.User.Email)
	assert.NotEmpty(t, resp.User.AuthToken)
	assert.NotEmpty(t, resp.AccessToken)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_RejectsWeakPasswords(t *testing.T) {
	s := newAuthService(t, new(MockUserRepository), new(MockResetTokenRepository), new(MockLoginAttemptRepository))

	for _, password := range []string{
		"alllowercase1!", // no upper
		"ALLUPPERCASE1!", // no lower
		"NoDigitsHere!",  // no digit
		"NoSpecials123A", // no special
		"Ab1!",           // too short
	} {
		_, err := s.Register(RegisterInput{Username: "Marie", Password: password})
		assert.ErrorIs(t, err, apperrors.ErrValidation, "password %q", password)
	}
}

func TestAuthService_Register_RejectsShortUsername(t *testing.T) {
	s := newAuthService(t, new(MockUserRepository), new(MockResetTokenRepository), new(MockLoginAttemptRepository))

	_, err := s.Register(RegisterInput{Username: "ab", Password: "Str0ng!pass"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_Login_Success(t *testing.T) {
	user := &entity.User{ID: 1, Username: "Marie", Password: hashPassword(t, "Str0ng!pass")}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "Marie").Return(user, nil)

	attemptRepo := new(MockLoginAttemptRepository)
	attemptRepo.On("GetByUserID", uint(1)).Return(&entity.LoginAttemptState{UserID: 1, AttemptsLeft: 5}, nil)
	attemptRepo.On("ResetOnSuccess", uint(1)).Return(nil)

	s := newAuthService(t, userRepo, new(MockResetTokenRepository), attemptRepo)
	resp, err := s.Login("marie", "Str0ng!pass")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	attemptRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPasswordBurnsAttempt(t *testing.T) {
	user := &entity.User{ID: 1, Username: "Marie", Password: hashPassword(t, "Str0ng!pass")}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "Marie").Return(user, nil)

	attemptRepo := new(MockLoginAttemptRepository)
	attemptRepo.On("GetByUserID", uint(1)).Return(&entity.LoginAttemptState{UserID: 1, AttemptsLeft: 5}, nil)
	attemptRepo.On("ConsumeAttempt", uint(1)).Return(4, nil)

	s := newAuthService(t, userRepo, new(MockResetTokenRepository), attemptRepo)
	_, err := s.Login("Marie", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	attemptRepo.AssertExpectations(t)
	attemptRepo.AssertNotCalled(t, "ResetOnSuccess", mock.Anything)
}

func TestAuthService_Login_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "Ghost").Return(nil, apperrors.ErrNotFound)

	s := newAuthService(t, userRepo, new(MockResetTokenRepository), new(MockLoginAttemptRepository))
	_, err := s.Login("Ghost", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_LockedAccountReportsWait(t *testing.T) {
	user := &entity.User{ID: 1, Username: "Marie", Password: hashPassword(t, "Str0ng!pass")}
	lastFail := time.Now().Add(-1 * time.Minute)

	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "Marie").Return(user, nil)

	attemptRepo := new(MockLoginAttemptRepository)
	attemptRepo.On("GetByUserID", uint(1)).Return(&entity.LoginAttemptState{
		UserID:       1,
		AttemptsLeft: 0,
		BansNumber:   1,
		LastFail:     &lastFail,
	}, nil)

	s := newAuthService(t, userRepo, new(MockResetTokenRepository), attemptRepo)
	_, err := s.Login("Marie", "Str0ng!pass")

	assert.ErrorIs(t, err, ErrAccountLocked)
	var lockout *LockoutError
	require.ErrorAs(t, err, &lockout)
	assert.InDelta(t, 4.0, lockout.WaitMinutes, 0.05)
}

func TestAuthService_SetEmail_RequiresAuthToken(t *testing.T) {
	user := &entity.User{ID: 1, Username: "Marie", AuthToken: "real-token"}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", uint(1)).Return(user, nil)

	s := newAuthService(t, userRepo, new(MockResetTokenRepository), new(MockLoginAttemptRepository))
	err := s.SetEmail(1, "stolen-token", "marie@example.com")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	userRepo.AssertNotCalled(t, "UpdateEmail", mock.Anything, mock.Anything)
}

func TestAuthService_SetEmail_ChangeInvalidatesResetTokens(t *testing.T) {
	oldEmail := "old@example.com"
	user := &entity.User{ID: 1, Username: "Marie", AuthToken: "tok", Email: &oldEmail}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", uint(1)).Return(user, nil)
	userRepo.On("UpdateEmail", uint(1), mock.AnythingOfType("*string")).Return(nil)

	tokenRepo := new(MockResetTokenRepository)
	tokenRepo.On("DeleteByUserID", uint(1)).Return(nil)

	s := newAuthService(t, userRepo, tokenRepo, new(MockLoginAttemptRepository))
	require.NoError(t, s.SetEmail(1, "tok", "new@example.com"))

	tokenRepo.AssertExpectations(t)
}

func TestAuthService_RemoveEmail_InvalidatesResetTokens(t *testing.T) {
	oldEmail := "old@example.com"
	user := &entity.User{ID: 1, Username: "Marie", AuthToken: "tok", Email: &oldEmail}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", uint(1)).Return(user, nil)
	userRepo.On("UpdateEmail", uint(1), (*string)(nil)).Return(nil)

	tokenRepo := new(MockResetTokenRepository)
	tokenRepo.On("DeleteByUserID", uint(1)).Return(nil)

	s := newAuthService(t, userRepo, tokenRepo, new(MockLoginAttemptRepository))
	require.NoError(t, s.RemoveEmail(1, "tok"))

	tokenRepo.AssertExpectations(t)
}

func TestAuthService_DeleteAccount_RequiresPassword(t *testing.T) {
	user := &entity.User{ID: 1, Username: "Marie", Password: hashPassword(t, "Str0ng!pass")}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", uint(1)).Return(user, nil)

	s := newAuthService(t, userRepo, new(MockResetTokenRepository), new(MockLoginAttemptRepository))
	err := s.DeleteAccount(1, "wrong")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestAuthService_DeleteAccount_Success(t *testing.T) {
	user := &entity.User{ID: 1, Username: "Marie", Password: hashPassword(t, "Str0ng!pass")}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", uint(1)).Return(user, nil)
	userRepo.On("Delete", uint(1)).Return(nil)

	s := newAuthService(t, userRepo, new(MockResetTokenRepository), new(MockLoginAttemptRepository))
	require.NoError(t, s.DeleteAccount(1, "Str0ng!pass"))

	userRepo.AssertExpectations(t)
}
