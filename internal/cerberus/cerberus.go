// Package cerberus implements the request admission layer: an optional API
// key check and an optional host allowlist, combined with AND semantics over
// whichever methods are configured. With neither configured every request is
// admitted, for deployments behind a reverse proxy that enforces access
// control upstream.
package cerberus

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/hermes/internal/config"
	"github.com/Wikid82/hermes/internal/logger"
	"github.com/Wikid82/hermes/internal/metrics"
)

// Decision is the outcome of evaluating one request against the policy.
// It is produced per request and never stored.
type Decision struct {
	Granted bool
	Reasons []string

	apiKeyFailed bool
}

// StatusCode maps a denial to its HTTP status: 401 when the configured API
// key check failed (identity failure, regardless of the host outcome),
// 403 for a pure host-restriction failure.
func (d Decision) StatusCode() int {
	if d.Granted {
		return http.StatusOK
	}
	if d.apiKeyFailed {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

// Cerberus evaluates inbound requests against the configured security policy.
type Cerberus struct {
	snap *config.Snapshot
}

// New creates a new Cerberus instance reading from the given config snapshot.
func New(snap *config.Snapshot) *Cerberus {
	return &Cerberus{snap: snap}
}

// Evaluate decides whether a request from clientIP presenting the given
// bearer token (empty when absent) may proceed. Both configured methods must
// pass independently; a method that is not configured is not evaluated.
func (c *Cerberus) Evaluate(clientIP, bearer string) Decision {
	cfg := c.snap.Get()

	if !cfg.HasAPIKey() && !cfg.HasHostRestriction() {
		logger.WithFields(map[string]interface{}{"client": clientIP}).
			Debug("access granted (no security configured)")
		return Decision{Granted: true}
	}

	apiKeyValid := false
	if cfg.HasAPIKey() {
		apiKeyValid = bearer != "" &&
			subtle.ConstantTimeCompare([]byte(bearer), []byte(cfg.APIKey)) == 1
	}

	hostValid := false
	if cfg.HasHostRestriction() {
		hostValid = HostAllowed(clientIP, cfg.AllowedHosts)
	}

	granted := false
	switch {
	case cfg.HasAPIKey() && cfg.HasHostRestriction():
		granted = apiKeyValid && hostValid
	case cfg.HasAPIKey():
		granted = apiKeyValid
	case cfg.HasHostRestriction():
		granted = hostValid
	}

	if granted {
		return Decision{Granted: true}
	}

	d := Decision{}
	if cfg.HasAPIKey() && !apiKeyValid {
		d.Reasons = append(d.Reasons, "invalid or missing API key")
		d.apiKeyFailed = true
	}
	if cfg.HasHostRestriction() && !hostValid {
		d.Reasons = append(d.Reasons, "host "+clientIP+" not in allowed list")
	}
	return d
}

// Middleware returns a Gin middleware that enforces the admission decision
// on every request routed through it.
func (c *Cerberus) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		clientIP := ctx.ClientIP()
		decision := c.Evaluate(clientIP, bearerToken(ctx))

		if !decision.Granted {
			logger.WithFields(map[string]interface{}{
				"client":  clientIP,
				"path":    ctx.Request.URL.Path,
				"reasons": strings.Join(decision.Reasons, ", "),
			}).Warn("access denied")
			metrics.IncAccessDenied()
			ctx.AbortWithStatusJSON(decision.StatusCode(), gin.H{
				"detail": "Access denied: " + strings.Join(decision.Reasons, ", "),
			})
			return
		}

		metrics.IncAccessGranted()
		ctx.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, returning "" when absent or not a bearer scheme.
func bearerToken(ctx *gin.Context) string {
	auth := ctx.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}
