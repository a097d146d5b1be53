package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	"github.com/lawandcode/lawquiz-api/internal/domain/repository"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

// FolderRepo implements repository.QuizFolderRepository.
type FolderRepo struct {
	db *gorm.DB
}

// NewFolderRepo creates a new quiz folder repository.
func NewFolderRepo(db *gorm.DB) *FolderRepo {
	return &FolderRepo{db: db}
}

// Create creates a new folder.
func (r *FolderRepo) Create(folder *entity.QuizFolder) error {
	err := r.db.Create(folder).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: folder %q already exists", apperrors.ErrConflict, folder.Title)
	}
	return err
}

// GetByID returns a folder by ID.
func (r *FolderRepo) GetByID(id uint) (*entity.QuizFolder, error) {
	var folder entity.QuizFolder
	err := r.db.First(&folder, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &folder, nil
}

// GetByTitleAndOwner resolves a folder by its owner-scoped title. Client
// supplied folder ids are treated as hints only; mutations re-resolve
// through this lookup.
func (r *FolderRepo) GetByTitleAndOwner(title string, userID uint) (*entity.QuizFolder, error) {
	var folder entity.QuizFolder
	err := r.db.Where("title = ? AND user_id = ?", title, userID).First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &folder, nil
}

// Rename changes a folder's title, owner scoped. A unique index on
// (user_id, title) rejects a title the owner already uses.
func (r *FolderRepo) Rename(folderID, userID uint, newTitle string) error {
	result := r.db.Model(&entity.QuizFolder{}).
		Where("id = ? AND user_id = ?", folderID, userID).
		Update("title", newTitle)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("%w: folder %q already exists", apperrors.ErrConflict, newTitle)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateVisibility flips a folder between private and public, owner scoped.
func (r *FolderRepo) UpdateVisibility(folderID, userID uint, visibility string) error {
	result := r.db.Model(&entity.QuizFolder{}).
		Where("id = ? AND user_id = ?", folderID, userID).
		Update("visibility", visibility)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a folder, owner scoped. Questions go away through
// ON DELETE CASCADE.
func (r *FolderRepo) Delete(folderID, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", folderID, userID).
		Delete(&entity.QuizFolder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// publicQuery builds the grouped public listing query: public folders joined
// with their author, kept only when they hold enough questions to be
// playable. A fresh query is built per call because GORM chains mutate.
func (r *FolderRepo) publicQuery(search string) *gorm.DB {
	q := r.db.Table("quiz_folders AS f").
		Select("f.id, f.title, u.username AS author, f.subject, f.level, f.likes, COUNT(q.id) AS question_count").
		Joins("JOIN users u ON u.id = f.user_id").
		Joins("JOIN quiz_questions q ON q.folder_id = f.id").
		Where("f.visibility = ?", entity.VisibilityPublic).
		Group("f.id, f.title, u.username, f.subject, f.level, f.likes").
		Having("COUNT(q.id) >= ?", entity.MinPlayableQuestions)

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			"f.title ILIKE ? OR u.username ILIKE ? OR f.subject ILIKE ? OR f.level ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	return q
}

// ListPublic returns one page of the public listing, most liked first, plus
// the total row count for pagination.
func (r *FolderRepo) ListPublic(limit, offset int) ([]repository.PublicFolder, int64, error) {
	return r.findPublic("", limit, offset)
}

// SearchPublic filters the public listing by a case-insensitive substring
// over title, author name, subject and level.
func (r *FolderRepo) SearchPublic(query string, limit, offset int) ([]repository.PublicFolder, int64, error) {
	return r.findPublic(query, limit, offset)
}

func (r *FolderRepo) findPublic(search string, limit, offset int) ([]repository.PublicFolder, int64, error) {
	var total int64
	// The HAVING clause means rows exist only after grouping, so the count
	// runs over the grouped query as a subquery.
	err := r.db.Table("(?) AS pub", r.publicQuery(search)).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count public folders failed: %w", err)
	}

	var rows []repository.PublicFolder
	err = r.publicQuery(search).
		Order("f.likes DESC, f.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list public folders failed: %w", err)
	}
	return rows, total, nil
}

// ListOwned returns every folder the user owns, newest first.
func (r *FolderRepo) ListOwned(userID uint) ([]entity.QuizFolder, error) {
	var folders []entity.QuizFolder
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&folders).Error
	return folders, err
}

// SearchOwned filters the user's own folders by a case-insensitive substring
// over the title only.
func (r *FolderRepo) SearchOwned(userID uint, query string) ([]entity.QuizFolder, error) {
	var folders []entity.QuizFolder
	err := r.db.Where("user_id = ? AND title ILIKE ?", userID, "%"+query+"%").
		Order("created_at DESC").
		Find(&folders).Error
	return folders, err
}

// CountQuestions returns how many questions a folder holds.
func (r *FolderRepo) CountQuestions(folderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error
	return count, err
}
