// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about breaking runs, cache operations, and API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the breaking engine
// stays free of any metrics framework. [LogHooks] is the implementation the
// CLI installs.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBreakingHooks(observability.LogHooks{Logger: logger})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Breaking().OnBreakStart(ctx, "lines", seq.Len())
//	// ... run the breaker ...
//	observability.Breaking().OnBreakComplete(ctx, "lines", res.Lines, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Breaking Hooks
// =============================================================================

// BreakingHooks receives events from breaking runs. Mode is "lines" or "pages".
type BreakingHooks interface {
	OnBreakStart(ctx context.Context, mode string, elements int)
	OnBreakComplete(ctx context.Context, mode string, containers int, duration time.Duration, err error)

	// OnRecovery reports a run that had to recover from overflow.
	OnRecovery(ctx context.Context, mode string, attempts int, degraded bool)

	// OnOverflow reports a container whose content exceeds its size.
	OnOverflow(ctx context.Context, mode string, container, amount int)
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
	OnRequest(ctx context.Context, method, path, requestID string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path, requestID string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBreakingHooks is a no-op implementation of BreakingHooks.
type NoopBreakingHooks struct{}

func (NoopBreakingHooks) OnBreakStart(context.Context, string, int) {}
func (NoopBreakingHooks) OnBreakComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopBreakingHooks) OnRecovery(context.Context, string, int, bool) {}
func (NoopBreakingHooks) OnOverflow(context.Context, string, int, int)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	breakingHooks BreakingHooks = NoopBreakingHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetBreakingHooks registers custom breaking hooks.
// This should be called once at application startup before any breaking runs.
func SetBreakingHooks(h BreakingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		breakingHooks = h
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
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Breaking returns the registered breaking hooks.
func Breaking() BreakingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return breakingHooks
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
	breakingHooks = NoopBreakingHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
