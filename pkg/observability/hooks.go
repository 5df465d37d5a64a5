// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about shape classification, the per-layer shape cache and
// layer identity edits.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetClassifyHooks(&myClassifyHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Classify().OnClassifyStart(layer, purpose)
//	// ... walk the cells ...
//	observability.Classify().OnClassifyComplete(layer, cells, shapes, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Classify Hooks
// =============================================================================

// ClassifyHooks receives events from per-layer shape classification.
type ClassifyHooks interface {
	OnClassifyStart(layer, purpose string)
	OnClassifyComplete(layer string, cells, shapes int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the per-layer shape cache.
type CacheHooks interface {
	// OnCacheHit records a read served from the cache.
	OnCacheHit(layer string)

	// OnCacheMiss records a read that triggered classification.
	OnCacheMiss(layer string)

	// OnCacheInvalidate records an explicit cache drop.
	OnCacheInvalidate(layer string)
}

// =============================================================================
// Edit Hooks
// =============================================================================

// EditHooks receives events from layer identity mutations.
type EditHooks interface {
	// OnLayerEdit records a write-through of one attribute.
	OnLayerEdit(layer, attr string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopClassifyHooks is a no-op implementation of ClassifyHooks.
type NoopClassifyHooks struct{}

func (NoopClassifyHooks) OnClassifyStart(string, string)                            {}
func (NoopClassifyHooks) OnClassifyComplete(string, int, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)        {}
func (NoopCacheHooks) OnCacheMiss(string)       {}
func (NoopCacheHooks) OnCacheInvalidate(string) {}

// NoopEditHooks is a no-op implementation of EditHooks.
type NoopEditHooks struct{}

func (NoopEditHooks) OnLayerEdit(string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	classifyHooks ClassifyHooks = NoopClassifyHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	editHooks     EditHooks     = NoopEditHooks{}
	hooksMu       sync.RWMutex
)

// SetClassifyHooks registers custom classification hooks.
// This should be called once at application startup.
func SetClassifyHooks(h ClassifyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		classifyHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetEditHooks registers custom edit hooks.
// This should be called once at application startup.
func SetEditHooks(h EditHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editHooks = h
	}
}

// Classify returns the registered classification hooks.
func Classify() ClassifyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return classifyHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Edit returns the registered edit hooks.
func Edit() EditHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	classifyHooks = NoopClassifyHooks{}
	cacheHooks = NoopCacheHooks{}
	editHooks = NoopEditHooks{}
}
