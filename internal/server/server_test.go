package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wikid82/hermes/internal/config"
	"github.com/Wikid82/hermes/internal/systemd"
)

type stubController struct{}

func (stubController) Status(context.Context, string) (systemd.UnitStatus, error) {
	return systemd.UnitStatus{State: "active"}, nil
}

func (stubController) Apply(context.Context, string, systemd.Action) systemd.Result {
	return systemd.Result{Success: true, Message: "ok"}
}

func TestNewServesHealth(t *testing.T) {
	snap := config.NewSnapshot(&config.Config{HTTPPort: "0"})

	srv, err := New(snap, stubController{})
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunShutsDownOnContextCancel(t *testing.T) {
	snap := config.NewSnapshot(&config.Config{HTTPPort: "0"})

	srv, err := New(snap, stubController{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
