package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wikid82/hermes/internal/config"
	"github.com/Wikid82/hermes/internal/systemd"
)

type fakeController struct {
	statusFn func(ctx context.Context, unit string) (systemd.UnitStatus, error)
	applyFn  func(ctx context.Context, unit string, action systemd.Action) systemd.Result
}

func (f *fakeController) Status(ctx context.Context, unit string) (systemd.UnitStatus, error) {
	if f.statusFn == nil {
		return systemd.UnitStatus{State: "active", Enabled: true}, nil
	}
	return f.statusFn(ctx, unit)
}

func (f *fakeController) Apply(ctx context.Context, unit string, action systemd.Action) systemd.Result {
	if f.applyFn == nil {
		return systemd.Result{Success: true, Message: "ok"}
	}
	return f.applyFn(ctx, unit, action)
}

func newSnapshot(records ...config.ServiceRecord) *config.Snapshot {
	return config.NewSnapshot(&config.Config{Services: records})
}

func TestListPreservesConfigOrder(t *testing.T) {
	snap := newSnapshot(
		config.ServiceRecord{Service: "a.service", DisplayName: "A"},
		config.ServiceRecord{Service: "b.service", DisplayName: "B"},
		config.ServiceRecord{Service: "c.service", DisplayName: "C"},
	)
	ctrl := &fakeController{
		statusFn: func(_ context.Context, unit string) (systemd.UnitStatus, error) {
			return systemd.UnitStatus{State: "active", Enabled: unit == "b.service"}, nil
		},
	}
	svc := NewUnitService(snap, ctrl, nil)

	states := svc.List(context.Background())
	require.Len(t, states, 3)
	assert.Equal(t, "a.service", states[0].Service)
	assert.Equal(t, "b.service", states[1].Service)
	assert.Equal(t, "c.service", states[2].Service)
	assert.True(t, states[1].Enabled)
	assert.False(t, states[0].Enabled)
}

func TestListIsolatesBackendFailures(t *testing.T) {
	snap := newSnapshot(
		config.ServiceRecord{Service: "good.service", DisplayName: "Good"},
		config.ServiceRecord{Service: "bad.service", DisplayName: "Bad"},
	)
	ctrl := &fakeController{
		statusFn: func(_ context.Context, unit string) (systemd.UnitStatus, error) {
			if unit == "bad.service" {
				return systemd.UnitStatus{}, errors.New("backend unavailable")
			}
			return systemd.UnitStatus{State: "active", Enabled: true}, nil
		},
	}
	svc := NewUnitService(snap, ctrl, nil)

	states := svc.List(context.Background())
	require.Len(t, states, 2)
	assert.Equal(t, "active", states[0].Status)
	assert.Equal(t, "error", states[1].Status)
	assert.False(t, states[1].Enabled)
	// Record metadata survives a degraded status.
	assert.Equal(t, "Bad", states[1].DisplayName)
}

func TestControlUnknownService(t *testing.T) {
	backendTouched := false
	snap := newSnapshot(config.ServiceRecord{Service: "nginx.service", DisplayName: "Web Server"})
	ctrl := &fakeController{
		applyFn: func(context.Context, string, systemd.Action) systemd.Result {
			backendTouched = true
			return systemd.Result{Success: true}
		},
	}
	svc := NewUnitService(snap, ctrl, nil)

	_, err := svc.Control(context.Background(), "unknown.service", systemd.ActionRestart)
	assert.ErrorIs(t, err, ErrUnitNotFound)
	assert.False(t, backendTouched, "backend must not be consulted for unknown services")
}

func TestControlRelaysBackendOutcome(t *testing.T) {
	snap := newSnapshot(config.ServiceRecord{Service: "nginx.service", DisplayName: "Web Server"})
	ctrl := &fakeController{
		applyFn: func(_ context.Context, unit string, action systemd.Action) systemd.Result {
			assert.Equal(t, "nginx.service", unit)
			assert.Equal(t, systemd.ActionRestart, action)
			return systemd.Result{Success: false, Message: "Service restart failed: unit masked"}
		},
	}
	svc := NewUnitService(snap, ctrl, nil)

	result, err := svc.Control(context.Background(), "nginx.service", systemd.ActionRestart)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Service restart failed: unit masked", result.Message)
	assert.Equal(t, "Web Server", result.DisplayName)
}

func TestCountFollowsSnapshot(t *testing.T) {
	snap := newSnapshot(config.ServiceRecord{Service: "a.service"})
	svc := NewUnitService(snap, &fakeController{}, nil)
	assert.Equal(t, 1, svc.Count())

	snap.Replace(snap.Get().WithServices([]config.ServiceRecord{
		{Service: "a.service"}, {Service: "b.service"},
	}))
	assert.Equal(t, 2, svc.Count())
}

func TestNotifyServiceNilIsSafe(t *testing.T) {
	var ns *NotifyService
	assert.NotPanics(t, func() {
		ns.ActionPerformed("Web Server", "restart", true, "ok")
	})

	built, err := NewNotifyService(nil)
	require.NoError(t, err)
	assert.Nil(t, built)
}
