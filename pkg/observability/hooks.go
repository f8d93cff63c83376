// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries never import a metrics backend. Instead they call the hooks
// registered here, which default to no-ops. The CLI (or any embedding
// program) registers real implementations at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPackHooks(&myPackHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pack().OnGenerateStart(ctx, spriteCount)
//	// ... decode, crop, pack ...
//	observability.Pack().OnGenerateComplete(ctx, sheetCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pack Hooks
// =============================================================================

// PackHooks receives events from the packing pipeline.
type PackHooks interface {
	// Generate events. spriteCount counts every registered sprite, pending
	// counts the ones decoded during this call.
	OnGenerateStart(ctx context.Context, spriteCount, pending int)
	OnGenerateComplete(ctx context.Context, sheetCount int, duration time.Duration, err error)

	// OnWriteComplete fires once per Write or WriteMultiple call.
	OnWriteComplete(ctx context.Context, encoder string, files int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives lookups and stores of the pack cache. keyType is the
// key's prefix ("pack").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPackHooks ignores every event.
type NoopPackHooks struct{}

func (NoopPackHooks) OnGenerateStart(context.Context, int, int)                          {}
func (NoopPackHooks) OnGenerateComplete(context.Context, int, time.Duration, error)       {}
func (NoopPackHooks) OnWriteComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	packHooks  PackHooks  = NoopPackHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetPackHooks replaces the pack hooks. A nil h is ignored.
func SetPackHooks(h PackHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	packHooks = h
	hooksMu.Unlock()
}

// SetCacheHooks replaces the cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	cacheHooks = h
	hooksMu.Unlock()
}

// Pack returns the registered pack hooks.
func Pack() PackHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return packHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	packHooks = NoopPackHooks{}
	cacheHooks = NoopCacheHooks{}
}
