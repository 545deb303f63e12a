package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmelchor/symreg-backend/internal/http/response"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
	"github.com/dmelchor/symreg-backend/internal/services"
)

type IngestHandler struct {
	log    *logger.Logger
	ingest services.IngestService
}

func NewIngestHandler(log *logger.Logger, ingest services.IngestService) *IngestHandler {
	return &IngestHandler{
		log:    log.With("handler", "IngestHandler"),
		ingest: ingest,
	}
}

// DoIngest runs one pass over all currently-unprocessed staging rows.
// Per-record failures are recorded on the rows, not surfaced here; only a
// store-level failure produces an error payload.
func (h *IngestHandler) DoIngest(c *gin.Context) {
	if _, err := h.ingest.RunPass(c.Request.Context()); err != nil {
		h.log.Error("ingest pass failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "ingest_failed", errors.New("ingest pass failed"))
		return
	}
	c.String(http.StatusOK, "")
}
