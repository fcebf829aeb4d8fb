package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Wikid82/hermes/internal/config"
	"github.com/Wikid82/hermes/internal/logger"
	"github.com/Wikid82/hermes/internal/metrics"
	"github.com/Wikid82/hermes/internal/systemd"
)

var ErrUnitNotFound = errors.New("service not found in configured services")

const (
	statusTimeout = 5 * time.Second
	actionTimeout = 30 * time.Second
)

// UnitState is the reported view of one configured service.
type UnitState struct {
	Service     string
	DisplayName string
	Description string
	Status      string
	Enabled     bool
	Metadata    map[string]string
}

// ControlResult is the outcome of a control action on one service.
type ControlResult struct {
	Success     bool
	Message     string
	DisplayName string
}

// UnitService orchestrates status queries and control actions for the
// configured services. It owns no state beyond its collaborators.
type UnitService struct {
	snap   *config.Snapshot
	ctrl   systemd.Controller
	notify *NotifyService
}

// NewUnitService creates the gateway. notify may be nil.
func NewUnitService(snap *config.Snapshot, ctrl systemd.Controller, notify *NotifyService) *UnitService {
	return &UnitService{snap: snap, ctrl: ctrl, notify: notify}
}

// Count returns the number of configured services. Used by the health probe,
// which never consults the backend.
func (s *UnitService) Count() int {
	return len(s.snap.Get().Services)
}

// List queries the backend for every configured service concurrently, one
// bounded call each. A failing or slow backend call degrades that single
// entry to status "error" instead of failing or delaying the rest. Results
// preserve configuration order.
func (s *UnitService) List(ctx context.Context) []UnitState {
	records := s.snap.Get().Services
	states := make([]UnitState, len(records))

	var wg sync.WaitGroup
	for i, record := range records {
		wg.Add(1)
		go func(i int, record config.ServiceRecord) {
			defer wg.Done()
			states[i] = s.queryOne(ctx, record)
		}(i, record)
	}
	wg.Wait()

	return states
}

func (s *UnitService) queryOne(ctx context.Context, record config.ServiceRecord) UnitState {
	state := UnitState{
		Service:     record.Service,
		DisplayName: record.DisplayName,
		Description: record.Description,
		Metadata:    record.Metadata,
	}

	callCtx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	status, err := s.ctrl.Status(callCtx, record.Service)
	if err != nil {
		logger.WithFields(map[string]interface{}{"unit": record.Service}).
			WithError(err).Warn("status query failed")
		metrics.IncUnitStatusError()
		state.Status = "error"
		return state
	}

	state.Status = status.State
	state.Enabled = status.Enabled
	return state
}

// Control validates the service name against configuration before touching
// the backend, then delegates and relays the backend's outcome verbatim.
func (s *UnitService) Control(ctx context.Context, name string, action systemd.Action) (ControlResult, error) {
	record, ok := s.snap.Get().ServiceByName(name)
	if !ok {
		return ControlResult{}, ErrUnitNotFound
	}

	callCtx, cancel := context.WithTimeout(ctx, actionTimeout)
	defer cancel()

	metrics.IncUnitAction(string(action))
	result := s.ctrl.Apply(callCtx, name, action)

	entry := logger.WithFields(map[string]interface{}{
		"unit":    name,
		"action":  string(action),
		"success": result.Success,
	})
	if result.Success {
		entry.Info("unit action applied")
	} else {
		entry.WithField("message", result.Message).Warn("unit action failed")
		metrics.IncUnitActionFailure()
	}

	s.notify.ActionPerformed(record.DisplayName, string(action), result.Success, result.Message)

	return ControlResult{
		Success:     result.Success,
		Message:     result.Message,
		DisplayName: record.DisplayName,
	}, nil
}
