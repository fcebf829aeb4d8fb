package cerberus

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/Wikid82/hermes/internal/config"
)

func TestPropEmptyAllowlistNeverMatches(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ip := rapid.String().Draw(t, "ip")
		assert.False(t, HostAllowed(ip, nil))
		assert.False(t, HostAllowed(ip, []string{}))
	})
}

func TestPropNoSecurityAlwaysGrants(t *testing.T) {
	cerb := New(config.NewSnapshot(&config.Config{}))
	rapid.Check(t, func(t *rapid.T) {
		ip := rapid.String().Draw(t, "ip")
		token := rapid.String().Draw(t, "token")
		d := cerb.Evaluate(ip, token)
		assert.True(t, d.Granted)
		assert.Empty(t, d.Reasons)
	})
}

func TestPropAPIKeyOnlyGrantsIffExactMatch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := rapid.StringN(1, 64, -1).Draw(t, "key")
		token := rapid.String().Draw(t, "token")
		ip := rapid.String().Draw(t, "ip")

		cerb := New(config.NewSnapshot(&config.Config{APIKey: key}))
		d := cerb.Evaluate(ip, token)

		assert.Equal(t, token == key, d.Granted)
		if !d.Granted {
			assert.Equal(t, http.StatusUnauthorized, d.StatusCode())
		}
	})
}

func TestPropHostOnlyDecisionFollowsMatcher(t *testing.T) {
	hostGen := rapid.SampledFrom([]string{
		"localhost", "127.0.0.1", "::1", "10.0.0.1", "192.168.1.0/24",
		"2001:db8::/32", "gateway.internal", "300.300.300.0/99",
	})

	rapid.Check(t, func(t *rapid.T) {
		allowed := rapid.SliceOfN(hostGen, 1, 5).Draw(t, "allowed")
		ip := rapid.SampledFrom([]string{
			"127.0.0.1", "::1", "10.0.0.1", "192.168.1.7", "2001:db8::9",
			"203.0.113.80", "gateway.internal",
		}).Draw(t, "ip")

		cerb := New(config.NewSnapshot(&config.Config{AllowedHosts: allowed}))
		d := cerb.Evaluate(ip, "")

		assert.Equal(t, HostAllowed(ip, allowed), d.Granted)
		if !d.Granted {
			assert.Equal(t, http.StatusForbidden, d.StatusCode())
		}
	})
}
