package cerberus

import (
	"net"
	"strings"
)

// localhostAliases are the spellings the "localhost" allowlist keyword covers.
var localhostAliases = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
}

// HostAllowed reports whether clientIP matches at least one allowlist entry.
// Entries are classified per comparison: the "localhost" keyword, CIDR
// notation (contains "/"), an exact IP, or an opaque string compared
// literally. An empty allowlist never matches. Pure function.
func HostAllowed(clientIP string, allowedHosts []string) bool {
	clientAddr := net.ParseIP(clientIP)
	if clientAddr == nil {
		// Non-IP peer identifier: literal comparison only.
		for _, allowed := range allowedHosts {
			if clientIP == allowed {
				return true
			}
		}
		return false
	}

	for _, allowed := range allowedHosts {
		if strings.EqualFold(allowed, "localhost") {
			if localhostAliases[clientIP] || localhostAliases[clientAddr.String()] {
				return true
			}
			continue
		}

		if strings.Contains(allowed, "/") {
			// ParseCIDR masks host bits, so 192.168.1.7/24 is accepted
			// and matches its whole /24.
			if _, network, err := net.ParseCIDR(allowed); err == nil {
				if network.Contains(clientAddr) {
					return true
				}
				continue
			}
			// Malformed network: fall through to the literal comparison
			// so one bad entry cannot abort the scan.
		} else if entryAddr := net.ParseIP(allowed); entryAddr != nil {
			if entryAddr.Equal(clientAddr) {
				return true
			}
			continue
		}

		if clientIP == allowed {
			return true
		}
	}

	return false
}
