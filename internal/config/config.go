package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ServiceRecord describes one monitored unit as declared in configuration.
// The JSON keys match the HERMES_SERVICES document format.
type ServiceRecord struct {
	Service     string            `json:"service"`
	DisplayName string            `json:"displayName"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Config captures runtime configuration sourced from environment variables.
// It is immutable after Load; reloads replace the whole value via Snapshot.
type Config struct {
	Environment  string
	HTTPPort     string
	APIKey       string
	AllowedHosts []string
	Services     []ServiceRecord
	Backend      string
	ServicesFile string
	NotifyURLs   []string
	LogDir       string
}

// Load reads env vars and falls back to defaults so the server can boot with zero configuration.
// Malformed services JSON is a fatal configuration error.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:  getEnv("HERMES_ENV", "production"),
		HTTPPort:     getEnv("HERMES_HTTP_PORT", "8080"),
		APIKey:       os.Getenv("HERMES_API_KEY"),
		AllowedHosts: splitList(os.Getenv("HERMES_ALLOWED_HOSTS")),
		Backend:      getEnv("HERMES_BACKEND", "auto"),
		ServicesFile: os.Getenv("HERMES_SERVICES_FILE"),
		NotifyURLs:   splitList(os.Getenv("HERMES_NOTIFY_URLS")),
		LogDir:       getEnv("HERMES_LOG_DIR", "data/logs"),
	}

	servicesJSON := getEnv("HERMES_SERVICES", "[]")
	if cfg.ServicesFile != "" {
		data, err := os.ReadFile(cfg.ServicesFile)
		if err != nil {
			return nil, fmt.Errorf("read services file %s: %w", cfg.ServicesFile, err)
		}
		servicesJSON = string(data)
	}

	services, err := ParseServices(servicesJSON)
	if err != nil {
		return nil, err
	}
	cfg.Services = services

	return cfg, nil
}

// ParseServices decodes and validates the JSON service declarations.
func ParseServices(raw string) ([]ServiceRecord, error) {
	var services []ServiceRecord
	if err := json.Unmarshal([]byte(raw), &services); err != nil {
		return nil, fmt.Errorf("services must be a valid JSON array: %w", err)
	}
	for i, svc := range services {
		if strings.TrimSpace(svc.Service) == "" {
			return nil, fmt.Errorf("service entry %d is missing the unit name", i)
		}
	}
	return services, nil
}

// HasAPIKey reports whether API key authentication is configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// HasHostRestriction reports whether host-based restriction is configured.
func (c *Config) HasHostRestriction() bool {
	return len(c.AllowedHosts) > 0
}

// ServiceByName finds a configured service by its unit name.
func (c *Config) ServiceByName(name string) (ServiceRecord, bool) {
	for _, svc := range c.Services {
		if svc.Service == name {
			return svc, true
		}
	}
	return ServiceRecord{}, false
}

// WithServices returns a copy of the config carrying a new service list.
// Used by the reload path so the original snapshot is never mutated.
func (c *Config) WithServices(services []ServiceRecord) *Config {
	next := *c
	next.Services = services
	return &next
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

// splitList splits a comma-separated env value, trimming entries and dropping empties.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
