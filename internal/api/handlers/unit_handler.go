package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/hermes/internal/services"
	"github.com/Wikid82/hermes/internal/systemd"
)

type UnitHandler struct {
	unitService *services.UnitService
}

func NewUnitHandler(unitService *services.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// ServiceStatusResponse is one entry of the services listing.
type ServiceStatusResponse struct {
	Service     string            `json:"service"`
	DisplayName string            `json:"display_name"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Enabled     bool              `json:"enabled"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ServicesResponse is the body of GET /services.
type ServicesResponse struct {
	LastUpdated string                  `json:"last_updated"`
	Services    []ServiceStatusResponse `json:"services"`
}

// ControlResponse is the body of POST /service/:service/:action.
type ControlResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DisplayName string `json:"display_name"`
}

// List returns the status of every configured service.
func (h *UnitHandler) List(c *gin.Context) {
	states := h.unitService.List(c.Request.Context())

	resp := ServicesResponse{
		LastUpdated: time.Now().Format(time.RFC3339),
		Services:    make([]ServiceStatusResponse, 0, len(states)),
	}
	for _, state := range states {
		resp.Services = append(resp.Services, ServiceStatusResponse{
			Service:     state.Service,
			DisplayName: state.DisplayName,
			Description: state.Description,
			Status:      state.Status,
			Enabled:     state.Enabled,
			Metadata:    state.Metadata,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Control starts, stops, or restarts one configured service. Backend
// failures are reported in the payload, not as server errors.
func (h *UnitHandler) Control(c *gin.Context) {
	name := c.Param("service")

	action, err := systemd.ParseAction(c.Param("action"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"detail": fmt.Sprintf("action must be one of start, stop, restart, got %q", c.Param("action")),
		})
		return
	}

	result, err := h.unitService.Control(c.Request.Context(), name, action)
	if err != nil {
		if errors.Is(err, services.ErrUnitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"detail": fmt.Sprintf("Service '%s' not found in configured services", name),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to control service"})
		return
	}

	c.JSON(http.StatusOK, ControlResponse{
		Success:     result.Success,
		Message:     result.Message,
		DisplayName: result.DisplayName,
	})
}
