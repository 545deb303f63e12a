package domain

import (
	"time"
)

// Business identity is external: the id comes from the upload data, so the
// column is deliberately not autoincrement.
type Business struct {
	ID             int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name           string    `gorm:"type:varchar(1000);not null" json:"name"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	SourceRecordID int64     `gorm:"column:source_record_id;not null" json:"source_record_id"`
}

func (Business) TableName() string { return "business" }
