package tools

import (
	"errors"
	"log/slog"
	"time"

	"doc-annotator/internal/document"
	"doc-annotator/pkg/geometry"
)

// TextSelectTool sweeps a region and selects the text quads inside it,
// querying the document engine live while the drag is in progress. A
// plain click clears the current selection.
type TextSelectTool struct {
	active    bool
	dragging  bool
	anchor    geometry.Point2D
	cursor    geometry.Point2D
	lastQuery time.Time

	quads []geometry.Quad
}

// NewTextSelectTool creates an idle text selection tool.
func NewTextSelectTool() *TextSelectTool {
	return &TextSelectTool{}
}

// Quads returns the currently selected text quads.
func (t *TextSelectTool) Quads() []geometry.Quad {
	return t.quads
}

// PointerDown arms a possible sweep at the pointer.
func (t *TextSelectTool) PointerDown(ev PointerEvent, _ *Context) {
	if !ev.DocOK {
		return
	}
	t.active = true
	t.dragging = false
	t.anchor = ev.Doc
	t.cursor = ev.Doc
	t.lastQuery = time.Time{}
}

// PointerMove extends the sweep and refreshes the selected quads. The
// engine query is throttled so rapid pointer motion does not flood the
// engine.
func (t *TextSelectTool) PointerMove(ev PointerEvent, ctx *Context) {
	if !t.active || !ev.Doc.IsFinite() {
		return
	}
	t.cursor = ev.Doc
	if !t.dragging {
		if t.cursor.Distance(t.anchor) <= dragThreshold {
			return
		}
		t.dragging = true
	}
	if !t.lastQuery.IsZero() && ev.Time.Sub(t.lastQuery) < textQueryInterval {
		return
	}
	t.lastQuery = ev.Time
	t.query(ctx)
}

// PointerUp finalizes the sweep. Clicks without a drag clear the
// selection.
func (t *TextSelectTool) PointerUp(ev PointerEvent, ctx *Context) error {
	if !t.active {
		return nil
	}
	t.active = false
	if ev.Doc.IsFinite() {
		t.cursor = ev.Doc
	}
	if !t.dragging {
		t.quads = nil
		return nil
	}
	t.dragging = false
	t.query(ctx)
	return nil
}

// Cancel implements Tool.
func (t *TextSelectTool) Cancel() {
	t.active = false
	t.dragging = false
}

// Preview implements Tool: the sweep rectangle while dragging.
func (t *TextSelectTool) Preview() Preview {
	if !t.active || !t.dragging {
		return Preview{}
	}
	return Preview{
		Shape: PreviewRect,
		Rect:  geometry.RectFromCorners(t.anchor, t.cursor),
	}
}

func (t *TextSelectTool) query(ctx *Context) {
	quads, err := ctx.Engine.TextInRegion(ctx.Ctx, ctx.Page, t.anchor, t.cursor)
	if err != nil {
		if !errors.Is(err, document.ErrNoText) {
			slog.Warn("text selection query failed", "page", ctx.Page, "error", err)
		}
		t.quads = nil
		return
	}
	t.quads = quads
}
