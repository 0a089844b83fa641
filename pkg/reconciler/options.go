package reconciler

import (
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/inference"
	"github.com/agentstation/skillmap/pkg/metrics"
)

// options configures a reconciler.
type options struct {
	inferrer inference.Inferrer
	metrics  *metrics.Metrics
	aliases  map[string]string
}

func defaultOptions() *options {
	return &options{
		inferrer: inference.NewKeyword(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithInferrer sets the skill inferrer. The default is inference.NewKeyword().
func WithInferrer(inferrer inference.Inferrer) Option {
	return func(o *options) error {
		if inferrer == nil {
			return &errors.ValidationError{
				Field:   "inferrer",
				Message: "cannot be nil",
			}
		}
		o.inferrer = inferrer
		return nil
	}
}

// WithMetrics records every build on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) error {
		o.metrics = m
		return nil
	}
}

// WithAliases sets the user-to-legacy id map, replacing Datasets.Aliases.
func WithAliases(aliases map[string]string) Option {
	return func(o *options) error {
		o.aliases = aliases
		return nil
	}
}
