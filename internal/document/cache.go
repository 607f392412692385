package document

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type renderKey struct {
	page     int
	rotation int
}

// RenderCache memoizes rendered pages in front of an Engine. The
// render scale is fixed for the lifetime of the cache; zoom is applied
// on the display side, not by re-rendering.
type RenderCache struct {
	mu      sync.RWMutex
	engine  Engine
	scale   float64
	entries map[renderKey]*Rendered
}

// NewRenderCache creates a cache rendering through engine at the given
// fixed scale.
func NewRenderCache(engine Engine, scale float64) *RenderCache {
	return &RenderCache{
		engine:  engine,
		scale:   scale,
		entries: make(map[renderKey]*Rendered),
	}
}

// Scale returns the fixed render scale.
func (c *RenderCache) Scale() float64 {
	return c.scale
}

// Render returns the cached raster for a page and rotation, rendering
// through the engine on a miss.
func (c *RenderCache) Render(ctx context.Context, page, rotation int) (*Rendered, error) {
	key := renderKey{page: page, rotation: rotation}

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	rendered, err := c.engine.RenderPage(ctx, page, c.scale, rotation)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}

	c.mu.Lock()
	c.entries[key] = rendered
	c.mu.Unlock()
	return rendered, nil
}

// Invalidate drops every cached rotation of one page.
func (c *RenderCache) Invalidate(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.page == page {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll drops the entire cache. Required after destructive
// document mutation: every page may have shifted.
func (c *RenderCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[renderKey]*Rendered)
}

// Reload invalidates and re-renders one page. A render failure after a
// successful destructive call is logged, not fatal: the document has
// already changed and the stale raster must not be resurrected.
func (c *RenderCache) Reload(ctx context.Context, page, rotation int) *Rendered {
	c.Invalidate(page)
	rendered, err := c.Render(ctx, page, rotation)
	if err != nil {
		slog.Warn("page reload after redaction failed", "page", page, "error", err)
		return nil
	}
	return rendered
}
