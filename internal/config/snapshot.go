package config

import "sync/atomic"

// Snapshot holds the current configuration and supports atomic replacement.
// Readers always observe a complete Config, never a partially updated one.
type Snapshot struct {
	current atomic.Pointer[Config]
}

// NewSnapshot creates a snapshot seeded with the given config.
func NewSnapshot(cfg *Config) *Snapshot {
	s := &Snapshot{}
	s.current.Store(cfg)
	return s
}

// Get returns the current configuration.
func (s *Snapshot) Get() *Config {
	return s.current.Load()
}

// Replace swaps in a new configuration wholesale.
func (s *Snapshot) Replace(cfg *Config) {
	s.current.Store(cfg)
}
