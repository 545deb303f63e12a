package db

import (
	"gorm.io/gorm"

	types "github.com/dmelchor/symreg-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Staging
		&types.UploadBatch{},
		&types.StagingRecord{},

		// Canonical entities
		&types.Business{},
		&types.Symptom{},
		&types.Association{},
	)
}
