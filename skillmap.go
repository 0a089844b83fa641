// Package skillmap builds the district catalog of skill-development
// institutions and employers.
//
// A Client reconciles the user, legacy and company datasets once, caches the
// result and serves read-only copies of it. Datasets default to the ones
// embedded in the binary.
//
// Example usage:
//
//	sm, err := skillmap.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	catalog, err := sm.Catalog(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, inst := range catalog.ByCategory(institutions.CategoryITI) {
//	    fmt.Printf("%s: %v\n", inst.Name, inst.Specializations)
//	}
//
//	// Use a directory of YAML datasets and the Gemini classifier
//	gemini, _ := inference.NewGemini(ctx, apiKey, "")
//	sm, err = skillmap.New(
//	    skillmap.WithFS(os.DirFS("./data")),
//	    skillmap.WithInferrer(gemini),
//	)
package skillmap

import (
	"context"
	"io/fs"
	"sync"

	"github.com/agentstation/skillmap/internal/embedded"
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/logging"
	"github.com/agentstation/skillmap/pkg/reconciler"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client builds the catalog on first use and serves it afterwards.
type Client interface {
	// Catalog returns a read-only view of the catalog, building it if needed
	Catalog(ctx context.Context) (*institutions.Collection, error)

	// Result returns the full build result including failures and statistics
	Result(ctx context.Context) (*reconciler.Result, error)

	// Rebuild reloads the datasets and replaces the cached catalog
	Rebuild(ctx context.Context) (*reconciler.Result, error)

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options    *options
	reconciler reconciler.Reconciler

	mu         sync.RWMutex
	result     *reconciler.Result
	collection *institutions.Collection

	hooks *hooks
}

// New creates a new Client with the given options. The catalog is not built
// until it is first requested.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	var ropts []reconciler.Option
	if o.inferrer != nil {
		ropts = append(ropts, reconciler.WithInferrer(o.inferrer))
	}
	if o.metrics != nil {
		ropts = append(ropts, reconciler.WithMetrics(o.metrics))
	}
	r, err := reconciler.New(ropts...)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", "", err)
	}

	return &client{
		options:    o,
		reconciler: r,
		hooks:      newHooks(),
	}, nil
}

// Catalog returns the cached catalog view.
func (c *client) Catalog(ctx context.Context) (*institutions.Collection, error) {
	if _, err := c.Result(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collection, nil
}

// Result returns the cached build result.
func (c *client) Result(ctx context.Context) (*reconciler.Result, error) {
	c.mu.RLock()
	result := c.result
	c.mu.RUnlock()
	if result != nil {
		return result, nil
	}

	c.mu.Lock()
	if c.result != nil {
		result = c.result
		c.mu.Unlock()
		return result, nil
	}
	result, err := c.build(ctx)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	// Hooks run without the lock so they may call back into the client
	c.hooks.triggerBuilt(result)
	return result, nil
}

// Rebuild always builds a fresh catalog.
func (c *client) Rebuild(ctx context.Context) (*reconciler.Result, error) {
	c.mu.Lock()
	result, err := c.build(ctx)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.hooks.triggerBuilt(result)
	return result, nil
}

// build stores a fresh result. It must be called with c.mu held.
func (c *client) build(ctx context.Context) (*reconciler.Result, error) {
	if c.options.logger != nil {
		ctx = logging.WithLogger(ctx, c.options.logger)
	}
	ctx = logging.WithOperation(ctx, "build")

	ds, err := c.datasets()
	if err != nil {
		return nil, err
	}

	result := c.reconciler.Institutions(ctx, ds)
	c.result = result
	c.collection = result.Collection()
	return result, nil
}

func (c *client) datasets() (*institutions.Datasets, error) {
	if c.options.datasets != nil {
		return c.options.datasets, nil
	}

	var fsys fs.FS = c.options.fsys
	if fsys == nil {
		fsys = embedded.Datasets()
	}
	ds, err := institutions.Load(fsys)
	if err != nil {
		return nil, errors.WrapResource("load", "datasets", "", err)
	}
	return ds, nil
}
