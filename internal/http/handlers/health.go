package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dmelchor/symreg-backend/internal/http/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Status(c *gin.Context) {
	response.RespondOK(c, gin.H{"status": "Health OK"})
}
