package entity

import (
	"strings"
	"time"
)

// Folder visibility values.
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// MinPlayableQuestions is the strict minimum of questions a folder needs to
// be playable or publicly listed (more than 3).
const MinPlayableQuestions = 4

// Subjects is the fixed list of law subjects a folder can be filed under.
var Subjects = []string{
	"Droit Civil", "Droit Pénal", "Droit Administratif", "Droit des Sociétés",
	"Droit International", "Droit Fiscal", "Droit du Travail", "Droit Constitutionnel",
	"Droit de l'Union européenne", "Propriété Intellectuelle", "Droit des Contrats",
	"Droit des Successions", "Droit des Obligations", "Droit des Biens",
	"Droit des Assurances", "Droit des Transports", "Droit de la Concurrence",
	"Droit de la Consommation", "Responsabilité Civile", "Procédure Civile",
	"Procédure Pénale", "Droit de la Protection Sociale",
	"Droit de la Protection des Données",
}

// Levels is the fixed list of study levels.
var Levels = []string{"L1", "L2", "L3", "M1", "M2"}

// QuizFolder is a named, owned collection of question/answer pairs. Title is
// unique per owner; visibility defaults to private.
type QuizFolder struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_folders_owner_title" json:"user_id"`
	Title      string     `gorm:"size:100;not null;uniqueIndex:idx_folders_owner_title" json:"title"`
	Subject    string     `gorm:"size:50;not null" json:"subject"`
	Level      string     `gorm:"size:5;not null" json:"level"`
	Visibility string     `gorm:"size:10;not null;default:'private'" json:"visibility"`
	Likes      int64      `gorm:"not null;default:0" json:"likes"`
	Questions  []Question `gorm:"foreignKey:FolderID" json:"questions,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (QuizFolder) TableName() string {
	return "quiz_folders"
}

// IsPublic reports whether the folder is publicly discoverable.
func (f *QuizFolder) IsPublic() bool {
	return f.Visibility == VisibilityPublic
}

// IsValidSubject reports whether subject is in the fixed subject list,
// case-insensitively.
func IsValidSubject(subject string) bool {
	for _, s := range Subjects {
		if strings.EqualFold(s, subject) {
			return true
		}
	}
	return false
}

// IsValidLevel reports whether level is in the fixed level list,
// case-insensitively.
func IsValidLevel(level string) bool {
	for _, l := range Levels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}

// IsValidVisibility reports whether v is a known visibility value.
func IsValidVisibility(v string) bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}
