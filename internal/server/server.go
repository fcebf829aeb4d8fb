package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/hermes/internal/api/routes"
	"github.com/Wikid82/hermes/internal/config"
	"github.com/Wikid82/hermes/internal/systemd"
)

// Server wraps the HTTP engine and shared dependencies for easier testing.
type Server struct {
	Engine *gin.Engine
	snap   *config.Snapshot
}

// New wires up the HTTP router and registers routes.
func New(snap *config.Snapshot, ctrl systemd.Controller) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	if snap.Get().Environment == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	if err := routes.Register(router, snap, ctrl); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	return &Server{Engine: router, snap: snap}, nil
}

// Run starts the HTTP server with proper shutdown semantics.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", s.snap.Get().HTTPPort),
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
