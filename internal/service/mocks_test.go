package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
)

// MockUserRepository implements repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithThrottleState(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(userID uint, hashedPassword string) error {
	args := m.Called(userID, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateEmail(userID uint, email *string) error {
	args := m.Called(userID, email)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockLoginAttemptRepository implements repository.LoginAttemptRepository.
type MockLoginAttemptRepository struct {
	mock.Mock
}

func (m *MockLoginAttemptRepository) GetByUserID(userID uint) (*entity.LoginAttemptState, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LoginAttemptState), args.Error(1)
}

func (m *MockLoginAttemptRepository) ConsumeAttempt(userID uint) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLoginAttemptRepository) MarkLockout(userID uint, at time.Time) error {
	args := m.Called(userID, at)
	return args.Error(0)
}

func (m *MockLoginAttemptRepository) RefillAttempts(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockLoginAttemptRepository) ResetOnSuccess(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockResetTokenRepository implements repository.PasswordResetTokenRepository.
type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) Replace(token *entity.PasswordResetToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockResetTokenRepository) GetByToken(token string) (*entity.PasswordResetToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PasswordResetToken), args.Error(1)
}

func (m *MockResetTokenRepository) MarkUsed(tokenID uint) error {
	args := m.Called(tokenID)
	return args.Error(0)
}

func (m *MockResetTokenRepository) DeleteByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockResetTokenRepository) DeleteUsedByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockFolderRepository implements repository.QuizFolderRepository.
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) Create(folder *entity.QuizFolder) error {
	args := m.Called(folder)
	return args.Error(0)
}

func (m *MockFolderRepository) GetByID(id uint) (*entity.QuizFolder, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizFolder), args.Error(1)
}

func (m *MockFolderRepository) GetByTitleAndOwner(title string, userID uint) (*entity.QuizFolder, error) {
	args := m.Called(title, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizFolder), args.Error(1)
}

func (m *MockFolderRepository) Rename(folderID, userID uint, newTitle string) error {
	args := m.Called(folderID, userID, newTitle)
	return args.Error(0)
}

func (m *MockFolderRepository) UpdateVisibility(folderID, userID uint, visibility string) error {
	args := m.Called(folderID, userID, visibility)
	return args.Error(0)
}

func (m *MockFolderRepository) Delete(folderID, userID uint) error {
	args := m.Called(folderID, userID)
	return args.Error(0)
}

func (m *MockFolderRepository) ListPublic(limit, offset int) ([]repository.PublicFolder, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repository.PublicFolder), args.Get(1).(int64), args.Error(2)
}

func (m *MockFolderRepository) SearchPublic(query string, limit, offset int) ([]repository.PublicFolder, int64, error) {
	args := m.Called(query, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repository.PublicFolder), args.Get(1).(int64), args.Error(2)
}

func (m *MockFolderRepository) ListOwned(userID uint) ([]entity.QuizFolder, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizFolder), args.Error(1)
}

func (m *MockFolderRepository) SearchOwned(userID uint, query string) ([]entity.QuizFolder, error) {
	args := m.Called(userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizFolder), args.Error(1)
}

func (m *MockFolderRepository) CountQuestions(folderID uint) (int64, error) {
	args := m.Called(folderID)
	return args.Get(0).(int64), args.Error(1)
}

// MockQuestionRepository implements repository.QuestionRepository.
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(questions []entity.Question) (int64, error) {
	args := m.Called(questions)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) GetByFolder(folderID uint) ([]entity.Question, error) {
	args := m.Called(folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(questionID, folderID uint) error {
	args := m.Called(questionID, folderID)
	return args.Error(0)
}

// MockLikeRepository implements repository.LikeRepository.
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Like(userID, folderID uint) (bool, error) {
	args := m.Called(userID, folderID)
	return args.Bool(0), args.Error(1)
}

// MockStatsRepository implements repository.StatsRepository.
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) RecordAttempt(userID, folderID uint, subject string, asked, correct int64) (bool, error) {
	args := m.Called(userID, folderID, subject, asked, correct)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatsRepository) GetByUser(userID uint) ([]entity.SubjectStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SubjectStats), args.Error(1)
}

// MockMessageRepository implements repository.ContactMessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(message *entity.ContactMessage) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) List() ([]entity.ContactMessage, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ContactMessage), args.Error(1)
}

// MockCacheRepository implements repository.CacheRepository.
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) DeleteByPattern(pattern string) error {
	args := m.Called(pattern)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

// MockEmailService implements EmailService.
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPasswordReset(ctx context.Context, toEmail, resetURL string) error {
	args := m.Called(ctx, toEmail, resetURL)
	return args.Error(0)
}
