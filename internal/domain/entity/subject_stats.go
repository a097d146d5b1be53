package entity

import "time"

// SubjectStats holds a user's running totals for one subject. Created lazily
// on the first recorded attempt in that subject, incremented afterwards via
// an atomic upsert.
type SubjectStats struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Subject   string    `gorm:"primaryKey;size:50" json:"subject"`
	Asked     int64     `gorm:"not null;default:0" json:"asked"`
	Correct   int64     `gorm:"not null;default:0" json:"correct"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (SubjectStats) TableName() string {
	return "subject_stats"
}
