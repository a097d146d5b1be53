package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

// PublicPageSize is the fixed page size of the public listing.
const PublicPageSize = 10

// MaxTitleLength caps folder titles.
const MaxTitleLength = 100

const (
	publicListingCacheKey     = "public_quizzes:page:%d"
	publicListingCachePattern = "public_quizzes:*"
	publicListingCacheTTL     = 5 * time.Minute
)

// PublicListing is one page of publicly discoverable quizzes.
type PublicListing struct {
	Folders    []repository.PublicFolder `json:"folders"`
	Page       int                       `json:"page"`
	TotalPages int                       `json:"total_pages"`
}

// QuizService owns folder and question lifecycle, visibility, public
// discovery and likes. Every mutation resolves the folder by (title, owner),
// so a client supplied id can never reach another user's folder.
type QuizService struct {
	folderRepo   repository.QuizFolderRepository
	questionRepo repository.QuestionRepository
	likeRepo     repository.LikeRepository
	userRepo     repository.UserRepository
	cacheRepo    repository.CacheRepository
}

// NewQuizService creates a new quiz service.
func NewQuizService(
	folderRepo repository.QuizFolderRepository,
	questionRepo repository.QuestionRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
) (*QuizService, error) {
	if folderRepo == nil {
		return nil, fmt.Errorf("QuizFolderRepository is required for QuizService")
	}
	if questionRepo == nil {
		return nil, fmt.Errorf("QuestionRepository is required for QuizService")
	}
	if likeRepo == nil {
		return nil, fmt.Errorf("LikeRepository is required for QuizService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for QuizService")
	}
	// cacheRepo may be nil; the listing then always hits the database.
	return &QuizService{
		folderRepo:   folderRepo,
		questionRepo: questionRepo,
		likeRepo:     likeRepo,
		userRepo:     userRepo,
		cacheRepo:    cacheRepo,
	}, nil
}

// CreateFolder creates a private folder for the user.
func (s *QuizService) CreateFolder(userID uint, title, subject, level string) (*entity.QuizFolder, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLength {
		return nil, fmt.Errorf("%w: title must be between 1 and %d characters",
			apperrors.ErrValidation, MaxTitleLength)
	}
	if !entity.IsValidSubject(subject) {
		return nil, fmt.Errorf("%w: unknown subject %q", apperrors.ErrValidation, subject)
	}
	if !entity.IsValidLevel(level) {
		return nil, fmt.Errorf("%w: unknown level %q", apperrors.ErrValidation, level)
	}

	folder := &entity.QuizFolder{
		UserID:     userID,
		Title:      title,
		Subject:    subject,
		Level:      strings.ToUpper(level),
		Visibility: entity.VisibilityPrivate,
	}
	if err := s.folderRepo.Create(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// RenameFolder renames one of the user's folders, resolved by its current
// title.
func (s *QuizService) RenameFolder(userID uint, title, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" || len(newTitle) > MaxTitleLength {
		return fmt.Errorf("%w: title must be between 1 and %d characters",
			apperrors.ErrValidation, MaxTitleLength)
	}

	folder, err := s.folderRepo.GetByTitleAndOwner(title, userID)
	if err != nil {
		return err
	}
	if err := s.folderRepo.Rename(folder.ID, userID, newTitle); err != nil {
		return err
	}
	if folder.IsPublic() {
		s.invalidatePublicListing()
	}
	return nil
}

// SetVisibility flips one of the user's folders between private and public.
func (s *QuizService) SetVisibility(userID uint, title, visibility string) error {
	if !entity.IsValidVisibility(visibility) {
		return fmt.Errorf("%w: visibility must be %q or %q",
			apperrors.ErrValidation, entity.VisibilityPrivate, entity.VisibilityPublic)
	}

	folder, err := s.folderRepo.GetByTitleAndOwner(title, userID)
	if err != nil {
		return err
	}
	if err := s.folderRepo.UpdateVisibility(folder.ID, userID, visibility); err != nil {
		return err
	}
	s.invalidatePublicListing()
	return nil
}

// DeleteFolder removes one of the user's folders and its questions.
func (s *QuizService) DeleteFolder(userID uint, title string) error {
	folder, err := s.folderRepo.GetByTitleAndOwner(title, userID)
	if err != nil {
		return err
	}
	if err := s.folderRepo.Delete(folder.ID, userID); err != nil {
		return err
	}
	if folder.IsPublic() {
		s.invalidatePublicListing()
	}
	return nil
}

// ListFolders returns the user's own folders.
func (s *QuizService) ListFolders(userID uint) ([]entity.QuizFolder, error) {
	return s.folderRepo.ListOwned(userID)
}

// SearchFolders filters the user's own folders by title.
func (s *QuizService) SearchFolders(userID uint, query string) ([]entity.QuizFolder, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.folderRepo.ListOwned(userID)
	}
	return s.folderRepo.SearchOwned(userID, query)
}

// PublicListing returns one page of the public listing, most liked first.
// Pages are cached briefly; a cache miss or error falls through to the
// database.
func (s *QuizService) PublicListing(page int) (*PublicListing, error) {
	if page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf(publicListingCacheKey, page)
	if s.cacheRepo != nil {
		var cached PublicListing
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizService] public listing cache read failed: %v", err)
		}
	}

	folders, total, err := s.folderRepo.ListPublic(PublicPageSize, (page-1)*PublicPageSize)
	if err != nil {
		return nil, err
	}

	listing := &PublicListing{
		Folders:    folders,
		Page:       page,
		TotalPages: totalPages(total),
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, listing, publicListingCacheTTL); err != nil {
			log.Printf("[QuizService] public listing cache write failed: %v", err)
		}
	}
	return listing, nil
}

// SearchPublic filters the public listing by a case-insensitive substring
// over title, author name, subject and level. Search results bypass the
// cache.
func (s *QuizService) SearchPublic(query string, page int) (*PublicListing, error) {
	if page < 1 {
		page = 1
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return s.PublicListing(page)
	}

	folders, total, err := s.folderRepo.SearchPublic(query, PublicPageSize, (page-1)*PublicPageSize)
	if err != nil {
		return nil, err
	}
	return &PublicListing{
		Folders:    folders,
		Page:       page,
		TotalPages: totalPages(total),
	}, nil
}

// GetPlayQuestions returns a folder's questions for a play session. The
// author token from listing rows may be a numeric user id or a username.
// Someone else's folder must be public and any folder must hold at least
// four questions; a private folder of another user answers NotFound, never
// Forbidden, so its existence does not leak.
func (s *QuizService) GetPlayQuestions(requesterID uint, authorToken, title string) ([]entity.Question, error) {
	owner, err := s.resolveAuthor(authorToken)
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByTitleAndOwner(title, owner.ID)
	if err != nil {
		return nil, err
	}
	if folder.UserID != requesterID && !folder.IsPublic() {
		return nil, apperrors.ErrNotFound
	}

	count, err := s.folderRepo.CountQuestions(folder.ID)
	if err != nil {
		return nil, err
	}
	if count < entity.MinPlayableQuestions {
		return nil, ErrQuizNotPlayable
	}

	return s.questionRepo.GetByFolder(folder.ID)
}

// AddQuestion adds a question to one of the user's folders.
func (s *QuizService) AddQuestion(userID uint, folderTitle, prompt, answer string) (*entity.Question, error) {
	if err := validateQuestion(prompt, answer); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByTitleAndOwner(folderTitle, userID)
	if err != nil {
		return nil, err
	}

	question := &entity.Question{
		FolderID: folder.ID,
		Prompt:   strings.TrimSpace(prompt),
		Answer:   strings.TrimSpace(answer),
	}
	if err := s.questionRepo.Create(question); err != nil {
		if errors.Is(err, repository.ErrDuplicateQuestion) {
			return nil, fmt.Errorf("%w: question already in folder", apperrors.ErrConflict)
		}
		return nil, err
	}
	// The question count gates public eligibility, so the cached listing is
	// stale the moment it changes.
	if folder.IsPublic() {
		s.invalidatePublicListing()
	}
	return question, nil
}

// UpdateQuestion rewrites a question in one of the user's folders.
func (s *QuizService) UpdateQuestion(userID uint, folderTitle string, questionID uint, prompt, answer string) error {
	if err := validateQuestion(prompt, answer); err != nil {
		return err
	}

	folder, err := s.folderRepo.GetByTitleAndOwner(folderTitle, userID)
	if err != nil {
		return err
	}

	question := &entity.Question{
		ID:       questionID,
		FolderID: folder.ID,
		Prompt:   strings.TrimSpace(prompt),
		Answer:   strings.TrimSpace(answer),
	}
	if err := s.questionRepo.Update(question); err != nil {
		if errors.Is(err, repository.ErrDuplicateQuestion) {
			return fmt.Errorf("%w: question already in folder", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// DeleteQuestion removes a question from one of the user's folders.
func (s *QuizService) DeleteQuestion(userID uint, folderTitle string, questionID uint) error {
	folder, err := s.folderRepo.GetByTitleAndOwner(folderTitle, userID)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(questionID, folder.ID); err != nil {
		return err
	}
	// Deleting can drop a public folder below the playable floor.
	if folder.IsPublic() {
		s.invalidatePublicListing()
	}
	return nil
}

// LikeQuiz records a like of a public folder, at most once per user.
// Reports whether the like was counted; a repeat like is a silent no-op.
func (s *QuizService) LikeQuiz(userID, folderID uint) (bool, error) {
	folder, err := s.folderRepo.GetByID(folderID)
	if err != nil {
		return false, err
	}
	if !folder.IsPublic() {
		return false, apperrors.ErrNotFound
	}

	counted, err := s.likeRepo.Like(userID, folderID)
	if err != nil {
		return false, err
	}
	if counted {
		s.invalidatePublicListing()
	}
	return counted, nil
}

// ImportQuestions bulk-loads prompt/answer pairs from an .xlsx file into one
// of the user's folders: first column prompt, second column answer, one pair
// per row. Rows with a missing cell, an oversized cell or a prompt the
// folder already holds are skipped. Returns how many questions landed.
func (s *QuizService) ImportQuestions(userID uint, folderTitle string, file io.Reader) (int, error) {
	folder, err := s.folderRepo.GetByTitleAndOwner(folderTitle, userID)
	if err != nil {
		return 0, err
	}

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return 0, fmt.Errorf("%w: not a readable xlsx file", apperrors.ErrValidation)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrValidation)
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var questions []entity.Question
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		prompt := strings.TrimSpace(row[0])
		answer := strings.TrimSpace(row[1])
		if validateQuestion(prompt, answer) != nil {
			continue
		}
		questions = append(questions, entity.Question{
			FolderID: folder.ID,
			Prompt:   prompt,
			Answer:   answer,
		})
	}

	inserted, err := s.questionRepo.CreateBatch(questions)
	if err != nil {
		return 0, err
	}
	if inserted > 0 && folder.IsPublic() {
		s.invalidatePublicListing()
	}
	log.Printf("[QuizService] imported %d/%d questions into folder ID=%d", inserted, len(rows), folder.ID)
	return int(inserted), nil
}

// resolveAuthor turns an author token into an account: a numeric token is
// tried as a user id first, anything else (or a numeric miss) as a username.
func (s *QuizService) resolveAuthor(token string) (*entity.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.ErrNotFound
	}

	if id, err := strconv.ParseUint(token, 10, 64); err == nil {
		user, err := s.userRepo.GetByID(uint(id))
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return s.userRepo.GetByUsername(token)
}

func (s *QuizService) invalidatePublicListing() {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.DeleteByPattern(publicListingCachePattern); err != nil {
		log.Printf("[QuizService] public listing cache invalidation failed: %v", err)
	}
}

func validateQuestion(prompt, answer string) error {
	prompt = strings.TrimSpace(prompt)
	answer = strings.TrimSpace(answer)
	if prompt == "" || len(prompt) > entity.MaxPromptLength {
		return fmt.Errorf("%w: prompt must be between 1 and %d characters",
			apperrors.ErrValidation, entity.MaxPromptLength)
	}
	if answer == "" || len(answer) > entity.MaxAnswerLength {
		return fmt.Errorf("%w: answer must be between 1 and %d characters",
			apperrors.ErrValidation, entity.MaxAnswerLength)
	}
	return nil
}

func totalPages(total int64) int {
	return int(math.Ceil(float64(total) / float64(PublicPageSize)))
}
