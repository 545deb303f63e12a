package app

import (
	"github.com/dmelchor/symreg-backend/internal/http"
	httpH "github.com/dmelchor/symreg-backend/internal/http/handlers"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Upload *httpH.UploadHandler
	Ingest *httpH.IngestHandler
	Fetch  *httpH.FetchHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Upload: httpH.NewUploadHandler(log, services.Upload, cfg.UploadMaxBytes),
		Ingest: httpH.NewIngestHandler(log, services.Ingest),
		Fetch:  httpH.NewFetchHandler(log, services.Fetch),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, tracing bool) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:           log,
		ServiceName:   "symreg-backend",
		Tracing:       tracing,
		HealthHandler: handlers.Health,
		UploadHandler: handlers.Upload,
		IngestHandler: handlers.Ingest,
		FetchHandler:  handlers.Fetch,
	})
}
