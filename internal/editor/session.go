// Package editor wires the annotation collection, the tool registry,
// the viewport, and the document engine into one interactive session.
// The UI shell feeds it pointer events and subscribes to its events;
// everything else happens in here.
package editor

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/config"
	"doc-annotator/internal/document"
	"doc-annotator/internal/selection"
	"doc-annotator/internal/tools"
	"doc-annotator/internal/viewport"
	"doc-annotator/pkg/geometry"
)

// Session is the authoring core of one open document.
type Session struct {
	mu sync.RWMutex

	cfg        config.Config
	collection *annotation.Collection
	registry   *tools.Registry
	tracker    *selection.Tracker
	engine     document.Engine
	cache      *document.RenderCache

	vp       viewport.State
	page     int
	defaults tools.Defaults

	// Last successful screen-to-document conversion, handed to tools
	// when a conversion fails mid-gesture.
	lastDoc   geometry.Point2D
	lastDocOK bool

	// Tool context snapshot taken at pointer down, held for the whole
	// gesture.
	gesture *tools.Context

	listeners map[EventType][]EventListener
}

// NewSession creates a session over a document engine.
func NewSession(engine document.Engine, cfg config.Config, stamps *tools.StampLibrary) *Session {
	if stamps == nil {
		stamps = tools.DefaultStampLibrary()
	}
	return &Session{
		cfg:        cfg,
		collection: annotation.NewCollection(),
		registry:   tools.NewRegistry(stamps),
		tracker:    selection.NewTracker(),
		engine:     engine,
		cache:      document.NewRenderCache(engine, cfg.RenderScale),
		defaults: tools.Defaults{
			StrokeColor:    color.RGBA{R: 0xE5, G: 0x3E, B: 0x3E, A: 0xFF},
			FillColor:      color.RGBA{R: 0xE5, G: 0x3E, B: 0x3E, A: 0xFF},
			StrokeWidth:    cfg.StrokeWidth,
			StrokeOpacity:  cfg.StrokeOpacity,
			FillOpacity:    0.2,
			HighlightColor: color.RGBA{R: 0xFF, G: 0xE0, B: 0x3E, A: 0xFF},
			HighlightWidth: cfg.HighlightWidth,
			FontSize:       cfg.FontSize,
			TextColor:      color.RGBA{A: 0xFF},
			StampScale:     cfg.StampScale,
		},
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Collection returns the annotation store.
func (s *Session) Collection() *annotation.Collection {
	return s.collection
}

// Registry returns the tool registry.
func (s *Session) Registry() *tools.Registry {
	return s.registry
}

// Tracker returns the hover/selection tracker.
func (s *Session) Tracker() *selection.Tracker {
	return s.tracker
}

// Cache returns the render cache.
func (s *Session) Cache() *document.RenderCache {
	return s.cache
}

// Engine returns the document engine.
func (s *Session) Engine() document.Engine {
	return s.engine
}

// Page returns the current page index.
func (s *Session) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// SetPage switches pages, abandoning any gesture, hover, and selection.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	if page == s.page {
		s.mu.Unlock()
		return
	}
	s.page = page
	s.gesture = nil
	s.lastDocOK = false
	s.mu.Unlock()

	s.registry.Active().Cancel()
	if s.tracker.ClearSelection() {
		s.Emit(EventSelectionChanged, uuid.Nil)
	}
	if s.tracker.ClearHover() {
		s.Emit(EventHoverChanged, uuid.Nil)
	}
	s.Emit(EventPageChanged, page)
}

// Viewport returns the current viewport snapshot.
func (s *Session) Viewport() viewport.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vp
}

// SetViewport replaces the viewport state. An in-flight gesture keeps
// the snapshot it started with.
func (s *Session) SetViewport(vp viewport.State) {
	s.mu.Lock()
	s.vp = vp
	s.mu.Unlock()
	s.Emit(EventViewportChanged, vp)
}

// SetZoom sets the zoom factor clamped to the configured range.
func (s *Session) SetZoom(zoom float64) {
	s.mu.Lock()
	if zoom < s.cfg.MinZoom {
		zoom = s.cfg.MinZoom
	}
	if zoom > s.cfg.MaxZoom {
		zoom = s.cfg.MaxZoom
	}
	s.vp.Zoom = zoom
	vp := s.vp
	s.mu.Unlock()
	s.Emit(EventViewportChanged, vp)
}

// Defaults returns the visual defaults stamped onto new annotations.
func (s *Session) Defaults() tools.Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// SetDefaults replaces the visual defaults.
func (s *Session) SetDefaults(d tools.Defaults) {
	s.mu.Lock()
	s.defaults = d
	s.mu.Unlock()
}

// SetTool activates a tool, cancelling any gesture on the previous one.
func (s *Session) SetTool(kind tools.Kind) {
	s.mu.Lock()
	s.gesture = nil
	s.mu.Unlock()

	s.registry.Activate(kind)
	s.Emit(EventToolChanged, kind)
}

// ActiveTool returns the active tool kind.
func (s *Session) ActiveTool() tools.Kind {
	return s.registry.ActiveKind()
}

// Render returns the raster for the current page and rotation.
func (s *Session) Render(ctx context.Context) (*document.Rendered, error) {
	s.mu.RLock()
	page, rotation := s.page, s.vp.NormalizedRotation()
	s.mu.RUnlock()
	return s.cache.Render(ctx, page, rotation)
}

// Preview returns the active tool's live gesture geometry.
func (s *Session) Preview() tools.Preview {
	return s.registry.Active().Preview()
}

// TextQuads returns the current text selection quads, empty unless the
// text selection tool has an active result.
func (s *Session) TextQuads() []geometry.Quad {
	if ts, ok := s.registry.Get(tools.KindTextSelect).(*tools.TextSelectTool); ok {
		return ts.Quads()
	}
	return nil
}

// pointerEvent converts a display-pixel position to document space
// through vp, falling back to the last good conversion when the
// surface is not laid out.
func (s *Session) pointerEvent(vp viewport.State, x, y float64, mod tools.Modifiers) tools.PointerEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := tools.PointerEvent{
		Screen: geometry.Point2D{X: x, Y: y},
		Time:   time.Now(),
		Mod:    mod,
	}
	doc, ok := vp.ScreenToDocument(x, y)
	if ok {
		s.lastDoc = doc
		s.lastDocOK = true
		ev.Doc = doc
		ev.DocOK = true
		return ev
	}
	ev.Doc = s.lastDoc
	ev.DocOK = false
	return ev
}

// toolContext builds the gesture context snapshot: viewport, page, and
// callbacks bound at pointer down.
func (s *Session) toolContext() *tools.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &tools.Context{
		Ctx:        context.Background(),
		Page:       s.page,
		Viewport:   s.vp,
		Collection: s.collection,
		Engine:     s.engine,
		Cache:      s.cache,
		Defaults:   s.defaults,
		OnCommit: func(a annotation.Annotation) {
			s.Emit(EventAnnotationAdded, a)
		},
		OnUpdate: func(a annotation.Annotation) {
			s.Emit(EventAnnotationUpdated, a)
		},
		OnSelect: func(id uuid.UUID) {
			if s.tracker.Select(id) {
				s.Emit(EventSelectionChanged, id)
			}
		},
		OnHover: func(id uuid.UUID) {
			if s.tracker.SetHover(id) {
				s.Emit(EventHoverChanged, id)
			}
		},
		Notify: func(msg string) {
			s.Emit(EventNotice, msg)
		},
	}
}

// HandlePointerDown routes a pointer press to the active tool, taking
// the gesture snapshot. Later events of the same gesture convert
// through this snapshot, so zoom or rotation changes mid-gesture
// cannot tear a conversion.
func (s *Session) HandlePointerDown(x, y float64, mod tools.Modifiers) {
	ctx := s.toolContext()
	ev := s.pointerEvent(ctx.Viewport, x, y, mod)

	s.mu.Lock()
	s.gesture = ctx
	s.mu.Unlock()

	s.registry.Active().PointerDown(ev, ctx)
}

// HandlePointerMove routes pointer motion to the active tool.
func (s *Session) HandlePointerMove(x, y float64, mod tools.Modifiers) {
	s.mu.RLock()
	ctx := s.gesture
	s.mu.RUnlock()
	if ctx == nil {
		// No gesture in flight; moves still drive hover.
		ctx = s.toolContext()
	}
	ev := s.pointerEvent(ctx.Viewport, x, y, mod)
	s.registry.Active().PointerMove(ev, ctx)
}

// HandlePointerUp routes a pointer release to the active tool and ends
// the gesture. The returned error is an external-engine failure the
// shell should surface; rejected gestures return nil.
func (s *Session) HandlePointerUp(x, y float64, mod tools.Modifiers) error {
	s.mu.Lock()
	ctx := s.gesture
	s.gesture = nil
	s.mu.Unlock()
	if ctx == nil {
		ctx = s.toolContext()
	}
	ev := s.pointerEvent(ctx.Viewport, x, y, mod)

	err := s.registry.Active().PointerUp(ev, ctx)
	if s.registry.ActiveKind() == tools.KindTextSelect {
		s.Emit(EventTextQuadsChanged, s.TextQuads())
	}
	return err
}

// CommitText finalizes the text content of a text box or callout. An
// empty commit to a provisional text box removes it instead of keeping
// an empty annotation.
func (s *Session) CommitText(page int, id uuid.UUID, content string) error {
	a, ok := s.collection.Get(page, id)
	if !ok {
		return fmt.Errorf("annotation %s not found on page %d", id, page)
	}

	if a.Kind != annotation.KindTextBox && a.Kind != annotation.KindCallout {
		return fmt.Errorf("annotation %s is a %s, not a text annotation", id, a.Kind)
	}

	empty := strings.TrimSpace(content) == ""
	if a.Kind == annotation.KindTextBox && a.TextBox.Provisional && empty {
		s.collection.Remove(page, id)
		if s.tracker.Selected() == id && s.tracker.ClearSelection() {
			s.Emit(EventSelectionChanged, uuid.Nil)
		}
		s.Emit(EventAnnotationRemoved, id)
		return nil
	}

	updated, err := s.collection.Update(page, id, func(a *annotation.Annotation) {
		switch a.Kind {
		case annotation.KindTextBox:
			tb := *a.TextBox
			tb.Content = content
			tb.Provisional = false
			a.TextBox = &tb
		case annotation.KindCallout:
			c := *a.Callout
			c.Content = content
			a.Callout = &c
		}
	})
	if err != nil {
		return err
	}
	s.Emit(EventAnnotationUpdated, updated)
	return nil
}

// Select marks an annotation as the current selection. Pass uuid.Nil to
// clear it.
func (s *Session) Select(id uuid.UUID) {
	if id == uuid.Nil {
		if s.tracker.ClearSelection() {
			s.Emit(EventSelectionChanged, uuid.Nil)
		}
		return
	}
	if s.tracker.Select(id) {
		s.Emit(EventSelectionChanged, id)
	}
}

// UpdateAnnotation mutates a stored annotation and announces the change.
func (s *Session) UpdateAnnotation(page int, id uuid.UUID, mutate func(*annotation.Annotation)) error {
	updated, err := s.collection.Update(page, id, mutate)
	if err != nil {
		return err
	}
	s.Emit(EventAnnotationUpdated, updated)
	return nil
}

// RemoveAnnotation deletes an annotation, clearing hover and selection
// if they pointed at it.
func (s *Session) RemoveAnnotation(page int, id uuid.UUID) bool {
	if !s.collection.Remove(page, id) {
		return false
	}
	if s.tracker.Selected() == id && s.tracker.ClearSelection() {
		s.Emit(EventSelectionChanged, uuid.Nil)
	}
	if s.tracker.Hover() == id && s.tracker.ClearHover() {
		s.Emit(EventHoverChanged, uuid.Nil)
	}
	s.Emit(EventAnnotationRemoved, id)
	return true
}

// RemoveSelected deletes the selected annotation on the current page.
func (s *Session) RemoveSelected() bool {
	id := s.tracker.Selected()
	if id == uuid.Nil {
		return false
	}
	return s.RemoveAnnotation(s.Page(), id)
}
