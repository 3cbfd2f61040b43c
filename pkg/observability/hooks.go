// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about table precomputation, routing queries
// and table-cache traffic.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The prom subpackage adapts the hooks to Prometheus collectors.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    h := prom.New(prometheus.DefaultRegisterer)
//	    observability.SetRoutingHooks(h)
//	    observability.SetCacheHooks(h)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Routing().OnPrecomputeStart(ctx, arch, qubits)
//	// ... compute tables ...
//	observability.Routing().OnPrecomputeComplete(ctx, arch, source, tables, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Sources reported by OnPrecomputeComplete.
const (
	SourceComputed = "computed"
	SourceCache    = "cache"
)

// Cache key types reported by CacheHooks.
const (
	KeyTypeTables = "tables"
	KeyTypeMemo   = "memo"
)

// =============================================================================
// Routing Hooks
// =============================================================================

// RoutingHooks receives events from architectures.
//
// Routing queries are synchronous and carry no context, so query events
// take none either.
type RoutingHooks interface {
	// Precompute events
	OnPrecomputeStart(ctx context.Context, arch string, qubits int)
	OnPrecomputeComplete(ctx context.Context, arch, source string, tables int, duration time.Duration, err error)

	// OnQuery records one routing query (distance, steiner, rec_steiner,
	// shortest_path) and its outcome.
	OnQuery(arch, op string, duration time.Duration, err error)

	// OnTree records the shape of a built Steiner tree.
	OnTree(arch, policy string, terminals, steinerPoints, edges int)
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
// No-op Implementations
// =============================================================================

// NoopRoutingHooks is a no-op implementation of RoutingHooks.
type NoopRoutingHooks struct{}

func (NoopRoutingHooks) OnPrecomputeStart(context.Context, string, int) {}
func (NoopRoutingHooks) OnPrecomputeComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopRoutingHooks) OnQuery(string, string, time.Duration, error) {}
func (NoopRoutingHooks) OnTree(string, string, int, int, int)         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	routingHooks RoutingHooks = NoopRoutingHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetRoutingHooks registers custom routing hooks.
// This should be called once at application startup before building architectures.
func SetRoutingHooks(h RoutingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		routingHooks = h
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

// Routing returns the registered routing hooks.
func Routing() RoutingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return routingHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	routingHooks = NoopRoutingHooks{}
	cacheHooks = NoopCacheHooks{}
}
