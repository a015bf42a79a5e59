// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about card rendering and timeline
// assembly.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core library free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetAssemblyHooks(&myAssemblyHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the card renderer.
type RenderHooks interface {
	// OnCardStart fires before a card frame is drawn.
	OnCardStart(ctx context.Context, index, pointCount int)

	// OnCardComplete fires after a card frame is written (or fails).
	OnCardComplete(ctx context.Context, index int, path string, duration time.Duration, err error)
}

// AssemblyHooks receives events from the timeline assembler.
type AssemblyHooks interface {
	// OnClipEncoded fires after each clip's intermediate encode.
	OnClipEncoded(ctx context.Context, index, total int, clipDuration float64)

	// OnExportStart fires before the blocking export begins.
	OnExportStart(ctx context.Context, path string, nominalDuration float64)

	// OnExportComplete fires after export finishes (or fails), post-cleanup.
	OnExportComplete(ctx context.Context, path string, duration time.Duration, err error)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnCardStart(context.Context, int, int)                              {}
func (NoopRenderHooks) OnCardComplete(context.Context, int, string, time.Duration, error) {}

// NoopAssemblyHooks is a no-op implementation of AssemblyHooks.
type NoopAssemblyHooks struct{}

func (NoopAssemblyHooks) OnClipEncoded(context.Context, int, int, float64)                 {}
func (NoopAssemblyHooks) OnExportStart(context.Context, string, float64)                   {}
func (NoopAssemblyHooks) OnExportComplete(context.Context, string, time.Duration, error)   {}

var (
	renderHooks   RenderHooks   = NoopRenderHooks{}
	assemblyHooks AssemblyHooks = NoopAssemblyHooks{}
	hooksMu       sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetAssemblyHooks registers custom assembly hooks.
// This should be called once at application startup before any assembly.
func SetAssemblyHooks(h AssemblyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		assemblyHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Assembly returns the registered assembly hooks.
func Assembly() AssemblyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return assemblyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	assemblyHooks = NoopAssemblyHooks{}
}
