package systemd

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// DockerController treats unit names as container names, for deployments
// where the supervised services run as containers rather than systemd units.
// A container with any restart policy counts as enabled.
type DockerController struct {
	cli *client.Client
}

// NewDockerController builds a client from the standard DOCKER_* environment.
func NewDockerController() (*DockerController, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return &DockerController{cli: cli}, nil
}

// Status inspects the container and maps its state onto the unit model.
func (c *DockerController) Status(ctx context.Context, unit string) (UnitStatus, error) {
	info, err := c.cli.ContainerInspect(ctx, unit)
	if err != nil {
		return UnitStatus{}, fmt.Errorf("inspect container %s: %w", unit, err)
	}

	status := UnitStatus{State: "unknown"}
	if info.State != nil && info.State.Status != "" {
		status.State = string(info.State.Status)
	}
	if info.HostConfig != nil {
		status.Enabled = !info.HostConfig.RestartPolicy.IsNone()
	}
	return status, nil
}

// Apply starts, stops, or restarts the container.
func (c *DockerController) Apply(ctx context.Context, unit string, action Action) Result {
	var err error
	switch action {
	case ActionStart:
		err = c.cli.ContainerStart(ctx, unit, container.StartOptions{})
	case ActionStop:
		err = c.cli.ContainerStop(ctx, unit, container.StopOptions{})
	case ActionRestart:
		err = c.cli.ContainerRestart(ctx, unit, container.StopOptions{})
	default:
		return Result{Success: false, Message: fmt.Sprintf("unknown action %q", action)}
	}
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Service %s failed: %s", action, err)}
	}
	return Result{Success: true, Message: fmt.Sprintf("Service %s successful", action)}
}
