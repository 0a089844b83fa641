package appcontext

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/agentstation/skillmap"
	"github.com/agentstation/skillmap/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// Zero-valued fields fall back to defaults.
type Mock struct {
	Client      skillmap.Client
	ClientErr   error
	Log         *zerolog.Logger
	Format      string
	Reg         *prometheus.Registry
	DatabaseStr string
	Addr        string
}

// Skillmap returns the mock client.
func (m *Mock) Skillmap() (skillmap.Client, error) {
	return m.Client, m.ClientErr
}

// Logger returns the mock logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.Log != nil {
		return m.Log
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the mock format or "json".
func (m *Mock) OutputFormat() string {
	if m.Format != "" {
		return m.Format
	}
	return "json"
}

// Registry returns the mock registry, creating one on first use.
func (m *Mock) Registry() *prometheus.Registry {
	if m.Reg == nil {
		m.Reg = prometheus.NewRegistry()
	}
	return m.Reg
}

// DatabaseURL returns the mock database URL.
func (m *Mock) DatabaseURL() string { return m.DatabaseStr }

// ListenAddr returns the mock listen address.
func (m *Mock) ListenAddr() string { return m.Addr }

// Version returns "test".
func (m *Mock) Version() string { return "test" }

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
