package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/dmelchor/symreg-backend/internal/http/handlers"
	httpMW "github.com/dmelchor/symreg-backend/internal/http/middleware"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	Tracing     bool

	HealthHandler *httpH.HealthHandler
	UploadHandler *httpH.UploadHandler
	IngestHandler *httpH.IngestHandler
	FetchHandler  *httpH.FetchHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/status", cfg.HealthHandler.Status)
	}
	if cfg.UploadHandler != nil {
		r.POST("/upload_business_symptom", cfg.UploadHandler.UploadBusinessSymptom)
	}
	if cfg.IngestHandler != nil {
		r.POST("/do_ingest", cfg.IngestHandler.DoIngest)
	}
	if cfg.FetchHandler != nil {
		r.GET("/fetch", cfg.FetchHandler.Fetch)
	}

	return r
}
