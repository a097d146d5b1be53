package repository

import (
	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// PublicFolder is one row of the public listing: the folder plus its
// author's username and question count.
type PublicFolder struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Subject       string `json:"subject"`
	Level         string `json:"level"`
	Likes         int64  `json:"likes"`
	QuestionCount int64  `json:"question_count"`
}

// QuizFolderRepository defines persistence operations for quiz folders.
type QuizFolderRepository interface {
	Create(folder *entity.QuizFolder) error
	GetByID(id uint) (*entity.QuizFolder, error)
	GetByTitleAndOwner(title string, userID uint) (*entity.QuizFolder, error)
	Rename(folderID, userID uint, newTitle string) error
	UpdateVisibility(folderID, userID uint, visibility string) error
	Delete(folderID, userID uint) error
	// ListPublic returns public folders holding enough questions to be
	// playable, most liked first, with the total row count.
	ListPublic(limit, offset int) ([]PublicFolder, int64, error)
	// SearchPublic filters the public listing by a case-insensitive substring
	// over title, author name, subject and level.
	SearchPublic(query string, limit, offset int) ([]PublicFolder, int64, error)
	ListOwned(userID uint) ([]entity.QuizFolder, error)
	SearchOwned(userID uint, query string) ([]entity.QuizFolder, error)
	CountQuestions(folderID uint) (int64, error)
}
