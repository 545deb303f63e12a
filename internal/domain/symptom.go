package domain

import (
	"time"
)

// Symptom rows are deduplicated on (code, name); the unique index backs the
// resolver's get-or-create path.
type Symptom struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code           string    `gorm:"type:varchar(100);uniqueIndex:idx_symptom_code_name" json:"code"`
	Name           string    `gorm:"type:varchar(100);uniqueIndex:idx_symptom_code_name" json:"name"`
	Diagnostic     bool      `gorm:"not null;default:false" json:"diagnostic"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	SourceRecordID int64     `gorm:"column:source_record_id;not null" json:"source_record_id"`
}

func (Symptom) TableName() string { return "symptom" }
