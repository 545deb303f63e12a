package domain

import (
	"time"

	"gorm.io/datatypes"
)

// UploadBatch records one accepted CSV upload for diagnostics. Staging rows
// point back at it through StagingRecord.BatchID (non-enforced).
type UploadBatch struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	FileName  string         `gorm:"column:file_name;type:varchar(500)" json:"file_name"`
	RowCount  int            `gorm:"column:row_count;not null" json:"row_count"`
	Stats     datatypes.JSON `gorm:"type:jsonb" json:"stats"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (UploadBatch) TableName() string { return "upload_batch" }
