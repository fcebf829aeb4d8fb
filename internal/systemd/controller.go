// Package systemd provides the supervision backends Hermes drives. A
// Controller queries and controls named units; the concrete transport
// (systemd D-Bus, systemctl subprocess, Docker API) is selected once at
// startup so the rest of the code never branches on availability.
package systemd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wikid82/hermes/internal/logger"
)

// Action is a supported unit control verb.
type Action string

const (
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionRestart Action = "restart"
)

// ErrUnknownAction marks a control verb outside the supported set.
var ErrUnknownAction = errors.New("unknown action")

// ParseAction validates a control verb from the request path.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionStart, ActionStop, ActionRestart:
		return Action(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
}

// UnitStatus is a backend's view of one unit.
type UnitStatus struct {
	State   string
	Enabled bool
}

// Result is the outcome of a control action. Backend failures are carried in
// Message rather than as errors so the caller can relay them verbatim.
type Result struct {
	Success bool
	Message string
}

// Controller is the supervision backend capability.
type Controller interface {
	// Status reports the run state and enabled state of a unit.
	Status(ctx context.Context, unit string) (UnitStatus, error)
	// Apply performs a control action on a unit.
	Apply(ctx context.Context, unit string, action Action) Result
}

// New selects a backend: "dbus", "systemctl", "docker", or "auto" which
// prefers D-Bus and falls back to the systemctl subprocess variant when no
// system bus connection can be made.
func New(ctx context.Context, backend string) (Controller, error) {
	switch backend {
	case "dbus":
		return NewDBusController(ctx)
	case "systemctl":
		return NewSystemctlController(), nil
	case "docker":
		return NewDockerController()
	case "auto", "":
		ctrl, err := NewDBusController(ctx)
		if err != nil {
			logger.Log().WithError(err).Warn("system bus unavailable, falling back to systemctl")
			return NewSystemctlController(), nil
		}
		return ctrl, nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}
