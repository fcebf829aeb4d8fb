package systemd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// SystemctlController shells out to systemctl. Used where the system bus is
// not reachable, e.g. minimal containers with /run/systemd bind-mounted.
type SystemctlController struct {
	// binary is overridable for tests.
	binary string
}

// NewSystemctlController returns a subprocess-backed controller.
func NewSystemctlController() *SystemctlController {
	return &SystemctlController{binary: "systemctl"}
}

// Status runs `systemctl is-active` and `systemctl is-enabled`. Both exit
// non-zero for inactive/disabled units while still printing the state, so
// the output is authoritative and the exit code is ignored when present.
func (c *SystemctlController) Status(ctx context.Context, unit string) (UnitStatus, error) {
	state, err := c.query(ctx, "is-active", unit)
	if err != nil {
		return UnitStatus{}, err
	}

	enabled, err := c.query(ctx, "is-enabled", unit)
	if err != nil {
		return UnitStatus{}, err
	}

	return UnitStatus{State: state, Enabled: enabled == "enabled"}, nil
}

// Apply runs `systemctl <action> <unit>` and relays stderr on failure.
func (c *SystemctlController) Apply(ctx context.Context, unit string, action Action) Result {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, string(action), unit)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{Success: false, Message: "Command timed out"}
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Result{Success: false, Message: fmt.Sprintf("Service %s failed: %s", action, msg)}
	}

	return Result{Success: true, Message: fmt.Sprintf("Service %s successful", action)}
}

func (c *SystemctlController) query(ctx context.Context, verb, unit string) (string, error) {
	out, err := exec.CommandContext(ctx, c.binary, verb, unit).Output()
	state := strings.TrimSpace(string(out))
	if state == "" && err != nil {
		return "", fmt.Errorf("systemctl %s %s: %w", verb, unit, err)
	}
	return state, nil
}
