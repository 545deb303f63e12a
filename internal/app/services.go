package app

import (
	"gorm.io/gorm"

	"github.com/dmelchor/symreg-backend/internal/data/uow"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
	"github.com/dmelchor/symreg-backend/internal/services"
)

type Services struct {
	Upload   services.UploadService
	Resolver services.ResolverService
	Ingest   services.IngestService
	Fetch    services.FetchService
}

func wireServices(db *gorm.DB, log *logger.Logger, repos Repos) Services {
	log.Info("Wiring services...")
	runner := uow.NewGormRunner(db)
	resolver := services.NewResolverService(runner, log, repos.Businesses, repos.Symptoms, repos.Associations)
	return Services{
		Upload:   services.NewUploadService(runner, log, repos.StagingRecords, repos.UploadBatches),
		Resolver: resolver,
		Ingest:   services.NewIngestService(log, repos.StagingRecords, resolver),
		Fetch:    services.NewFetchService(runner, log, repos.Projection),
	}
}
