package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/hermes/internal/services"
	"github.com/Wikid82/hermes/internal/version"
)

type HealthHandler struct {
	unitService *services.UnitService
}

func NewHealthHandler(unitService *services.UnitService) *HealthHandler {
	return &HealthHandler{unitService: unitService}
}

// Check responds with basic liveness metadata. Deliberately unauthenticated
// and independent of the supervision backend.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"timestamp":      time.Now().Format(time.RFC3339),
		"services_count": h.unitService.Count(),
		"version":        version.Full(),
	})
}
