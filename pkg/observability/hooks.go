// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages never depend on a metrics backend. They emit events
// through the hooks registered here, which default to no-ops. A binary that
// wants instrumentation registers its own implementations once at startup:
//
//	func main() {
//	    observability.SetSolveHooks(&promSolveHooks{})
//	    observability.SetCacheHooks(&promCacheHooks{})
//	    // ... run application
//	}
//
// Emitters call the accessor each time so that late registration is seen:
//
//	observability.Solve().OnSolveStart(ctx, "highs", vars, cons)
//	// ... solve ...
//	observability.Solve().OnSolveComplete(ctx, "highs", status, span, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solve Hooks
// =============================================================================

// SolveHooks receives events from the stages of a solve run.
type SolveHooks interface {
	// Heuristic events
	OnHeuristicStart(ctx context.Context, graph string, vertices int)
	OnHeuristicComplete(ctx context.Context, graph string, span int, duration time.Duration, err error)

	// Model build events
	OnBuildStart(ctx context.Context, graph string, vertices int)
	OnBuildComplete(ctx context.Context, graph string, variables, constraints int, duration time.Duration, err error)

	// Solver events
	OnSolveStart(ctx context.Context, backend string, variables, constraints int)
	OnSolveComplete(ctx context.Context, backend, status string, span int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolveHooks is a no-op implementation of SolveHooks.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnHeuristicStart(context.Context, string, int) {}
func (NoopSolveHooks) OnHeuristicComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopSolveHooks) OnBuildStart(context.Context, string, int) {}
func (NoopSolveHooks) OnBuildComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopSolveHooks) OnSolveStart(context.Context, string, int, int) {}
func (NoopSolveHooks) OnSolveComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solveHooks SolveHooks = NoopSolveHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetSolveHooks registers custom solve hooks.
// This should be called once at application startup before any solve runs.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
