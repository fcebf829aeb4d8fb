package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Wikid82/hermes/internal/api/handlers"
	"github.com/Wikid82/hermes/internal/api/middleware"
	"github.com/Wikid82/hermes/internal/cerberus"
	"github.com/Wikid82/hermes/internal/config"
	"github.com/Wikid82/hermes/internal/metrics"
	"github.com/Wikid82/hermes/internal/services"
	"github.com/Wikid82/hermes/internal/systemd"
)

// Register wires up middleware and API routes. The health and metrics probes
// stay outside the admission policy; everything else goes through Cerberus.
func Register(router *gin.Engine, snap *config.Snapshot, ctrl systemd.Controller) error {
	cfg := snap.Get()

	notify, err := services.NewNotifyService(cfg.NotifyURLs)
	if err != nil {
		return fmt.Errorf("notification setup: %w", err)
	}
	unitService := services.NewUnitService(snap, ctrl, notify)

	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(cfg.Environment == "development"),
		middleware.CORS(cerberus.CORSOrigins(cfg)),
	)

	healthHandler := handlers.NewHealthHandler(unitService)
	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Cerberus middleware applies the admission policy (API key and/or host allowlist)
	cerb := cerberus.New(snap)
	protected := router.Group("/")
	protected.Use(cerb.Middleware())

	unitHandler := handlers.NewUnitHandler(unitService)
	protected.GET("/services", unitHandler.List)
	protected.POST("/service/:service/:action", unitHandler.Control)

	return nil
}
