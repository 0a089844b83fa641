// Package appcontext provides the shared application context interface
// used by all commands, so command packages depend on an interface rather
// than on the concrete App.
package appcontext

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/agentstation/skillmap"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Skillmap returns the default client, creating it lazily if needed.
	Skillmap() (skillmap.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Registry returns the Prometheus registry the client records builds on.
	Registry() *prometheus.Registry

	// DatabaseURL returns the configured snapshot store URL, if any.
	DatabaseURL() string

	// ListenAddr returns the configured API listen address.
	ListenAddr() string

	// Version returns the application version string.
	Version() string
}
