package domain

import (
	"time"
)

// StagingRecord is one raw upload row. The staging layer never rejects
// content; anything the CSV carried lands here verbatim and validation is
// deferred to ingest time.
type StagingRecord struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchID    *int64     `gorm:"column:batch_id;index" json:"batch_id,omitempty"`
	LandedAt   time.Time  `gorm:"column:landed_at;not null;autoCreateTime" json:"landed_at"`
	IngestedAt *time.Time `gorm:"column:ingested_at;index" json:"ingested_at,omitempty"`
	LastError  *string    `gorm:"column:last_error;type:varchar(1000)" json:"last_error,omitempty"`

	BusinessIDRaw        string `gorm:"column:business_id_raw;type:text" json:"business_id_raw"`
	BusinessNameRaw      string `gorm:"column:business_name_raw;type:text" json:"business_name_raw"`
	SymptomCodeRaw       string `gorm:"column:symptom_code_raw;type:text" json:"symptom_code_raw"`
	SymptomNameRaw       string `gorm:"column:symptom_name_raw;type:text" json:"symptom_name_raw"`
	SymptomDiagnosticRaw string `gorm:"column:symptom_diagnostic_raw;type:text" json:"symptom_diagnostic_raw"`
}

func (StagingRecord) TableName() string { return "staging_record" }
