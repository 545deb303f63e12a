package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmelchor/symreg-backend/internal/http/response"
	"github.com/dmelchor/symreg-backend/internal/platform/apierr"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
	"github.com/dmelchor/symreg-backend/internal/services"
)

type UploadHandler struct {
	log      *logger.Logger
	upload   services.UploadService
	maxBytes int64
}

func NewUploadHandler(log *logger.Logger, upload services.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		log:      log.With("handler", "UploadHandler"),
		upload:   upload,
		maxBytes: maxBytes,
	}
}

// UploadBusinessSymptom accepts a CSV file under the multipart field "file"
// and stages it for a later ingest pass. A header or shape mismatch is a
// 422 with nothing staged.
func (h *UploadHandler) UploadBusinessSymptom(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer file.Close()

	if _, err := h.upload.Stage(c.Request.Context(), fileHeader.Filename, file); err != nil {
		if errors.Is(err, services.ErrMalformedUpload) {
			response.RespondAPIError(c, apierr.New(http.StatusUnprocessableEntity, "malformed_upload", err))
			return
		}
		h.log.Error("staging upload failed", "file", fileHeader.Filename, "error", err)
		response.RespondAPIError(c, apierr.New(http.StatusInternalServerError, "upload_failed", errors.New("could not stage upload")))
		return
	}
	c.String(http.StatusOK, "")
}
