package systemd

import (
	"context"
	"fmt"

	sdbus "github.com/coreos/go-systemd/v22/dbus"
)

// DBusController talks to systemd over the system bus.
type DBusController struct {
	conn *sdbus.Conn
}

// NewDBusController connects to the systemd manager on the system bus.
func NewDBusController(ctx context.Context) (*DBusController, error) {
	conn, err := sdbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	return &DBusController{conn: conn}, nil
}

// Close releases the bus connection.
func (c *DBusController) Close() {
	c.conn.Close()
}

// Status reads the unit's ActiveState and UnitFileState properties.
func (c *DBusController) Status(ctx context.Context, unit string) (UnitStatus, error) {
	props, err := c.conn.GetUnitPropertiesContext(ctx, unit)
	if err != nil {
		return UnitStatus{}, fmt.Errorf("unit properties for %s: %w", unit, err)
	}

	status := UnitStatus{State: "unknown"}
	if state, ok := props["ActiveState"].(string); ok && state != "" {
		status.State = state
	}
	if fileState, ok := props["UnitFileState"].(string); ok {
		status.Enabled = fileState == "enabled"
	}
	return status, nil
}

// Apply enqueues the action with the "replace" job mode and waits for the
// job to finish or the context to expire.
func (c *DBusController) Apply(ctx context.Context, unit string, action Action) Result {
	done := make(chan string, 1)

	var err error
	switch action {
	case ActionStart:
		_, err = c.conn.StartUnitContext(ctx, unit, "replace", done)
	case ActionStop:
		_, err = c.conn.StopUnitContext(ctx, unit, "replace", done)
	case ActionRestart:
		_, err = c.conn.RestartUnitContext(ctx, unit, "replace", done)
	default:
		return Result{Success: false, Message: fmt.Sprintf("unknown action %q", action)}
	}
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	select {
	case outcome := <-done:
		if outcome == "done" {
			return Result{Success: true, Message: fmt.Sprintf("Service %s successful", action)}
		}
		return Result{Success: false, Message: fmt.Sprintf("Service %s failed: job %s", action, outcome)}
	case <-ctx.Done():
		return Result{Success: false, Message: "Command timed out"}
	}
}
