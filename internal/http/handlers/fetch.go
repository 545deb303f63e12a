package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmelchor/symreg-backend/internal/data/repos/registry"
	"github.com/dmelchor/symreg-backend/internal/http/response"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
	"github.com/dmelchor/symreg-backend/internal/services"
)

type FetchHandler struct {
	log   *logger.Logger
	fetch services.FetchService
}

func NewFetchHandler(log *logger.Logger, fetch services.FetchService) *FetchHandler {
	return &FetchHandler{
		log:   log.With("handler", "FetchHandler"),
		fetch: fetch,
	}
}

type fetchItem struct {
	BusinessID        int64  `json:"Business ID"`
	BusinessName      string `json:"Business Name"`
	SymptomCode       string `json:"Symptom Code"`
	SymptomName       string `json:"Symptom Name"`
	SymptomDiagnostic string `json:"Symptom Diagnostic"`
}

// Fetch streams the joined business/symptom rows as a JSON array, row by
// row, forwarding from the database cursor without buffering the result
// set. Filters: bid (int) and diag (bool), both optional, ANDed.
func (h *FetchHandler) Fetch(c *gin.Context) {
	var filter registry.ProjectionFilter
	if raw := strings.TrimSpace(c.Query("bid")); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_bid", errors.New("bid must be an integer"))
			return
		}
		filter.BusinessID = &v
	}
	if raw := strings.TrimSpace(c.Query("diag")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_diag", errors.New("diag must be a boolean"))
			return
		}
		filter.Diagnostic = &v
	}

	started := false
	start := func() {
		if started {
			return
		}
		started = true
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Writer.WriteHeader(http.StatusOK)
		_, _ = c.Writer.Write([]byte("["))
	}

	first := true
	err := h.fetch.Stream(c.Request.Context(), filter, func(row *registry.ProjectionRow) error {
		start()
		b, err := json.Marshal(fetchItem{
			BusinessID:        row.BusinessID,
			BusinessName:      row.BusinessName,
			SymptomCode:       row.SymptomCode,
			SymptomName:       row.SymptomName,
			SymptomDiagnostic: strconv.FormatBool(row.Diagnostic),
		})
		if err != nil {
			return err
		}
		if !first {
			if _, err := c.Writer.Write([]byte(",")); err != nil {
				return err
			}
		}
		first = false
		if _, err := c.Writer.Write(b); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		if !started {
			h.log.Error("fetch failed", "error", err)
			response.RespondError(c, http.StatusInternalServerError, "fetch_failed", errors.New("fetch failed"))
			return
		}
		// Mid-stream failure: the array is already on the wire, nothing
		// left to do but stop.
		h.log.Error("fetch stream aborted", "error", err)
		return
	}
	start()
	_, _ = c.Writer.Write([]byte("]"))
	c.Writer.Flush()
}
