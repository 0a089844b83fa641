// Package app provides the application context and dependency management
// for the skillmap CLI: configuration, logging and the lazily created client.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/agentstation/skillmap"
	"github.com/agentstation/skillmap/internal/appcontext"
	"github.com/agentstation/skillmap/internal/cmd/output"
	"github.com/agentstation/skillmap/internal/config"
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/inference"
	"github.com/agentstation/skillmap/pkg/metrics"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the skillmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config   *Config
	logger   *zerolog.Logger
	registry *prometheus.Registry

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client skillmap.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version:  version,
		commit:   commit,
		date:     date,
		builtBy:  builtBy,
		registry: prometheus.NewRegistry(),
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns who built the binary.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Registry returns the Prometheus registry used for build metrics.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// OutputFormat returns the output format, detecting one when unset.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// DatabaseURL returns the configured snapshot store URL.
func (a *App) DatabaseURL() string {
	return a.config.DatabaseURL
}

// ListenAddr returns the configured API listen address.
func (a *App) ListenAddr() string {
	return a.config.ListenAddr
}

// Skillmap returns the client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Skillmap() (skillmap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	opts, err := a.clientOptions(context.Background())
	if err != nil {
		return nil, err
	}
	c, err := skillmap.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "skillmap", "", err)
	}

	a.client = c
	return c, nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions(ctx context.Context) ([]skillmap.Option, error) {
	opts := []skillmap.Option{
		skillmap.WithLogger(a.logger),
		skillmap.WithMetrics(metrics.New(a.registry)),
	}

	if a.config.DataDir != "" {
		if _, err := os.Stat(a.config.DataDir); err != nil {
			return nil, errors.WrapIO("stat", a.config.DataDir, err)
		}
		opts = append(opts, skillmap.WithFS(os.DirFS(a.config.DataDir)))
	}

	switch a.config.Inference {
	case "", config.InferenceKeyword:
		opts = append(opts, skillmap.WithInferrer(inference.NewKeyword()))
	case config.InferenceGemini:
		key, err := config.GeminiAPIKey()
		if err != nil {
			return nil, err
		}
		gemini, err := inference.NewGemini(ctx, key, a.config.GeminiModel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, skillmap.WithInferrer(gemini))
	default:
		return nil, errors.NewValidationError(config.KeyInference, a.config.Inference, "unknown inference backend")
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client (useful for testing).
func WithClient(c skillmap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
