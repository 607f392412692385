package tools

import (
	"fmt"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/document"
	"doc-annotator/pkg/geometry"
)

// RedactTool marks a rectangle for destructive removal. Content is
// removed by the document engine; after the destructive call succeeds
// the render caches are invalidated and the page reloaded
// unconditionally, even if that reload fails.
type RedactTool struct {
	active bool
	anchor geometry.Point2D
	cursor geometry.Point2D
}

// NewRedactTool creates an idle redact tool.
func NewRedactTool() *RedactTool {
	return &RedactTool{}
}

// PointerDown seeds the rectangle.
func (t *RedactTool) PointerDown(ev PointerEvent, _ *Context) {
	if !ev.DocOK {
		return
	}
	t.active = true
	t.anchor = ev.Doc
	t.cursor = ev.Doc
}

// PointerMove updates the rectangle.
func (t *RedactTool) PointerMove(ev PointerEvent, _ *Context) {
	if !t.active || !ev.Doc.IsFinite() {
		return
	}
	t.cursor = ev.Doc
}

// PointerUp performs the redaction. On engine failure the error is
// returned and no state changes; on success the annotation is
// appended, all render caches dropped, and the page re-rendered.
func (t *RedactTool) PointerUp(_ PointerEvent, ctx *Context) error {
	if !t.active {
		return nil
	}
	box := geometry.RectFromCorners(t.anchor, t.cursor)
	t.Cancel()

	if box.Width < minShapeSize || box.Height < minShapeSize {
		return nil
	}

	engineRect := document.FlipToEngine(box, ctx.Viewport.PageHeight)
	if err := ctx.Engine.Redact(ctx.Ctx, ctx.Page, engineRect); err != nil {
		ctx.notify("Redaction failed; the document is unchanged.")
		return fmt.Errorf("redact page %d: %w", ctx.Page, err)
	}

	a := annotation.New(annotation.KindRedact, ctx.Page, box)
	a.Redact = &annotation.Redact{}
	commitErr := ctx.commit(a)

	// The document has changed. Every cached raster is stale, whatever
	// else went wrong above.
	if ctx.Cache != nil {
		ctx.Cache.InvalidateAll()
		ctx.Cache.Reload(ctx.Ctx, ctx.Page, ctx.Viewport.NormalizedRotation())
	}
	return commitErr
}

// Cancel implements Tool.
func (t *RedactTool) Cancel() {
	t.active = false
}

// Preview implements Tool.
func (t *RedactTool) Preview() Preview {
	if !t.active {
		return Preview{}
	}
	return Preview{Shape: PreviewRect, Rect: geometry.RectFromCorners(t.anchor, t.cursor)}
}
