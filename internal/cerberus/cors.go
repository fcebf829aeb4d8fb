package cerberus

import (
	"strings"

	"github.com/Wikid82/hermes/internal/config"
)

// CORSOrigins derives the browser origins the transport layer should trust,
// consistent with the admission policy. It is not itself an enforcement
// point.
//
// With no security configured at all it returns ["*"] (reverse proxy mode).
// Without a host restriction it returns nil: a bearer-token-only API has no
// assumed browser use case. Otherwise every non-CIDR entry expands to its
// http and https origins; CIDR ranges cannot be expressed as origins and
// contribute nothing (those clients are still admitted by Evaluate).
func CORSOrigins(cfg *config.Config) []string {
	if !cfg.HasAPIKey() && !cfg.HasHostRestriction() {
		return []string{"*"}
	}

	if !cfg.HasHostRestriction() {
		return nil
	}

	var origins []string
	for _, host := range cfg.AllowedHosts {
		if strings.EqualFold(host, "localhost") {
			origins = append(origins, "http://localhost", "https://localhost")
			continue
		}
		if strings.Contains(host, "/") {
			continue
		}
		origins = append(origins, "http://"+host, "https://"+host)
	}
	return origins
}
