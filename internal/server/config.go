package server

import "time"

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// PathPrefix is where the API routes are mounted
	PathPrefix string

	// HTTP timeouts
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration

	// MetricsEnabled serves /metrics
	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		PathPrefix:     "/api/v1",
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    120 * time.Second,
		RequestTimeout: 30 * time.Second,
		MetricsEnabled: true,
	}
}
