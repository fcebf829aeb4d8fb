package services

import (
	"fmt"

	"github.com/containrrr/shoutrrr"
	"github.com/containrrr/shoutrrr/pkg/router"

	"github.com/Wikid82/hermes/internal/logger"
	"github.com/Wikid82/hermes/internal/version"
)

// NotifyService pushes control-action events to external channels via
// shoutrrr URLs. Delivery is best-effort and asynchronous: it never affects
// the HTTP response.
type NotifyService struct {
	sender *router.ServiceRouter
}

// NewNotifyService builds a sender for the configured URLs. With no URLs it
// returns nil, and all methods are nil-safe no-ops.
func NewNotifyService(urls []string) (*NotifyService, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("create notification sender: %w", err)
	}
	return &NotifyService{sender: sender}, nil
}

// ActionPerformed announces the outcome of a control action.
func (s *NotifyService) ActionPerformed(displayName, action string, success bool, message string) {
	if s == nil {
		return
	}

	outcome := "succeeded"
	if !success {
		outcome = "failed"
	}
	body := fmt.Sprintf("%s: %s %s %s: %s", version.Name, action, displayName, outcome, message)

	go func() {
		for _, err := range s.sender.Send(body, nil) {
			if err != nil {
				logger.Log().WithError(err).Warn("notification delivery failed")
			}
		}
	}()
}
