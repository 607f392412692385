package tools

import (
	"log/slog"

	"github.com/google/uuid"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/selection"
	"doc-annotator/pkg/geometry"
)

// SelectTool hit-tests annotations, tracks hover, and moves the
// grabbed annotation while the pointer is down. Clicking empty space
// clears the selection.
type SelectTool struct {
	active   bool
	dragging bool
	grabbed  uuid.UUID
	last     geometry.Point2D
	anchor   geometry.Point2D
}

// NewSelectTool creates an idle selection tool.
func NewSelectTool() *SelectTool {
	return &SelectTool{}
}

// PointerDown selects the annotation under the pointer, or clears the
// selection on empty space.
func (t *SelectTool) PointerDown(ev PointerEvent, ctx *Context) {
	if !ev.DocOK {
		return
	}
	t.active = true
	t.dragging = false
	t.anchor = ev.Doc
	t.last = ev.Doc

	hit, ok := selection.HitTest(ev.Doc, ctx.Collection.Page(ctx.Page))
	if !ok {
		t.grabbed = uuid.Nil
		if ctx.OnSelect != nil {
			ctx.OnSelect(uuid.Nil)
		}
		return
	}
	t.grabbed = hit.ID
	if ctx.OnSelect != nil {
		ctx.OnSelect(hit.ID)
	}
}

// PointerMove updates hover when idle and drags the grabbed annotation
// when the pointer is down.
func (t *SelectTool) PointerMove(ev PointerEvent, ctx *Context) {
	if !ev.Doc.IsFinite() {
		return
	}

	if !t.active {
		id := uuid.Nil
		if hit, ok := selection.HitTest(ev.Doc, ctx.Collection.Page(ctx.Page)); ok {
			id = hit.ID
		}
		if ctx.OnHover != nil {
			ctx.OnHover(id)
		}
		return
	}

	if t.grabbed == uuid.Nil {
		return
	}
	if !t.dragging {
		if ev.Doc.Distance(t.anchor) <= dragThreshold {
			return
		}
		t.dragging = true
	}

	dx := ev.Doc.X - t.last.X
	dy := ev.Doc.Y - t.last.Y
	t.last = ev.Doc
	updated, err := ctx.Collection.Update(ctx.Page, t.grabbed, func(a *annotation.Annotation) {
		a.Translate(dx, dy)
	})
	if err != nil {
		slog.Warn("annotation move rejected", "id", t.grabbed, "error", err)
		return
	}
	if ctx.OnUpdate != nil {
		ctx.OnUpdate(updated)
	}
}

// PointerUp ends a drag.
func (t *SelectTool) PointerUp(_ PointerEvent, _ *Context) error {
	t.active = false
	t.dragging = false
	t.grabbed = uuid.Nil
	return nil
}

// Cancel implements Tool.
func (t *SelectTool) Cancel() {
	t.active = false
	t.dragging = false
	t.grabbed = uuid.Nil
}

// Preview implements Tool; selection has no gesture overlay.
func (t *SelectTool) Preview() Preview {
	return Preview{}
}
