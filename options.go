package skillmap

import (
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/inference"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/metrics"
)

// options holds the configuration for a Client.
type options struct {
	datasets *institutions.Datasets
	fsys     fs.FS
	inferrer inference.Inferrer
	metrics  *metrics.Metrics
	logger   *zerolog.Logger
}

func defaults() *options {
	return &options{}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Option is a function that configures a Client.
type Option func(*options) error

// WithDatasets builds from in-memory datasets instead of loading files.
func WithDatasets(ds *institutions.Datasets) Option {
	return func(o *options) error {
		if ds == nil {
			return &errors.ValidationError{Field: "datasets", Message: "cannot be nil"}
		}
		o.datasets = ds
		return nil
	}
}

// WithFS loads the YAML datasets from fsys instead of the embedded defaults.
func WithFS(fsys fs.FS) Option {
	return func(o *options) error {
		o.fsys = fsys
		return nil
	}
}

// WithInferrer sets the skill inferrer used during builds.
func WithInferrer(inf inference.Inferrer) Option {
	return func(o *options) error {
		o.inferrer = inf
		return nil
	}
}

// WithMetrics records builds on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) error {
		o.metrics = m
		return nil
	}
}

// WithLogger sets the logger used during builds.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
