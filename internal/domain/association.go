package domain

import (
	"time"
)

// Association is the many-to-many crosswalk between Business and Symptom.
// At most one row exists per (business_id, symptom_id) pair.
type Association struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessID     int64     `gorm:"column:business_id;not null;uniqueIndex:idx_association_bid_sid" json:"business_id"`
	SymptomID      int64     `gorm:"column:symptom_id;not null;uniqueIndex:idx_association_bid_sid" json:"symptom_id"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	SourceRecordID int64     `gorm:"column:source_record_id;not null" json:"source_record_id"`
}

func (Association) TableName() string { return "business_symptom_association" }
