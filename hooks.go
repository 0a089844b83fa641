package skillmap

import (
	"slices"
	"sync"

	"github.com/agentstation/skillmap/pkg/reconciler"
)

// Hook function types for build events
type (
	// BuiltHook is called after every catalog build
	BuiltHook func(result *reconciler.Result)

	// InferenceFailedHook is called once per record whose inference failed
	InferenceFailedHook func(failure reconciler.InferenceFailure)
)

// Hooks registers callbacks for build events.
type Hooks interface {
	OnBuilt(fn BuiltHook)
	OnInferenceFailed(fn InferenceFailedHook)
}

// hooks manages event callbacks for catalog builds
type hooks struct {
	mu                sync.RWMutex
	onBuilt           []BuiltHook
	onInferenceFailed []InferenceFailedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnBuilt registers a callback for completed builds.
func (c *client) OnBuilt(fn BuiltHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onBuilt = append(c.hooks.onBuilt, fn)
}

// OnInferenceFailed registers a callback for per-record inference failures.
func (c *client) OnInferenceFailed(fn InferenceFailedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onInferenceFailed = append(c.hooks.onInferenceFailed, fn)
}

func (h *hooks) triggerBuilt(result *reconciler.Result) {
	h.mu.RLock()
	onBuilt := slices.Clone(h.onBuilt)
	onFailed := slices.Clone(h.onInferenceFailed)
	h.mu.RUnlock()

	for _, failure := range result.Failures {
		for _, hook := range onFailed {
			hook(failure)
		}
	}
	for _, hook := range onBuilt {
		hook(result)
	}
}
