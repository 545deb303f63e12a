package app

import (
	"gorm.io/gorm"

	"github.com/dmelchor/symreg-backend/internal/data/repos/registry"
	"github.com/dmelchor/symreg-backend/internal/data/repos/staging"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type Repos struct {
	StagingRecords staging.StagingRecordRepo
	UploadBatches  staging.UploadBatchRepo
	Businesses     registry.BusinessRepo
	Symptoms       registry.SymptomRepo
	Associations   registry.AssociationRepo
	Projection     registry.ProjectionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		StagingRecords: staging.NewStagingRecordRepo(db, log),
		UploadBatches:  staging.NewUploadBatchRepo(db, log),
		Businesses:     registry.NewBusinessRepo(db, log),
		Symptoms:       registry.NewSymptomRepo(db, log),
		Associations:   registry.NewAssociationRepo(db, log),
		Projection:     registry.NewProjectionRepo(db, log),
	}
}
