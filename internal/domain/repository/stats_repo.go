package repository

import (
	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
)

// StatsRepository defines persistence operations for the per-subject answer
// statistics ledger.
type StatsRepository interface {
	// RecordAttempt books an attempt of a folder into the user's subject
	// statistics. The first attempt of a given folder by a given user counts;
	// replays are a silent no-op and report false. Attempt row and stats
	// upsert happen in one transaction.
	RecordAttempt(userID, folderID uint, subject string, asked, correct int64) (bool, error)
	GetByUser(userID uint) ([]entity.SubjectStats, error)
}
