package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	accessGrantedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hermes_access_granted_total",
		Help: "Total number of requests admitted by the security policy",
	})
	accessDeniedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hermes_access_denied_total",
		Help: "Total number of requests denied by the security policy",
	})
	unitActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hermes_unit_actions_total",
		Help: "Total number of unit control actions dispatched, by action",
	}, []string{"action"})
	unitActionFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hermes_unit_action_failures_total",
		Help: "Total number of unit control actions that the backend reported as failed",
	})
	unitStatusErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hermes_unit_status_errors_total",
		Help: "Total number of unit status queries that returned a degraded result",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(
		accessGrantedTotal,
		accessDeniedTotal,
		unitActionsTotal,
		unitActionFailuresTotal,
		unitStatusErrorsTotal,
	)
}

// IncAccessGranted increments the admitted requests counter.
func IncAccessGranted() { accessGrantedTotal.Inc() }

// IncAccessDenied increments the denied requests counter.
func IncAccessDenied() { accessDeniedTotal.Inc() }

// IncUnitAction increments the dispatched actions counter for the given action.
func IncUnitAction(action string) { unitActionsTotal.WithLabelValues(action).Inc() }

// IncUnitActionFailure increments the failed actions counter.
func IncUnitActionFailure() { unitActionFailuresTotal.Inc() }

// IncUnitStatusError increments the degraded status reads counter.
func IncUnitStatusError() { unitStatusErrorsTotal.Inc() }
