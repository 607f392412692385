package tools

import (
	"errors"
	"log/slog"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/document"
	"doc-annotator/pkg/geometry"
)

// HighlightTool sweeps a stroke over the page. On release it tries to
// resolve the underlying text layout; if any text is found the
// highlight commits in text mode with the layout's quads, otherwise
// the swept stroke itself is quadded and committed in overlay mode.
type HighlightTool struct {
	active bool
	path   []geometry.Point2D

	// Stroke width captured at gesture start so the live preview and
	// the committed overlay draw at the same thickness.
	width float64
}

// NewHighlightTool creates an idle highlight tool.
func NewHighlightTool() *HighlightTool {
	return &HighlightTool{}
}

// PointerDown seeds the live stroke.
func (t *HighlightTool) PointerDown(ev PointerEvent, ctx *Context) {
	if !ev.DocOK {
		return
	}
	t.active = true
	t.path = []geometry.Point2D{ev.Doc}
	t.width = ctx.Defaults.HighlightWidth
}

// PointerMove appends to the stroke, snapping to axis/diagonal while
// the constrain modifier is held.
func (t *HighlightTool) PointerMove(ev PointerEvent, _ *Context) {
	if !t.active || !ev.Doc.IsFinite() {
		return
	}
	p := ev.Doc
	if ev.Mod.Constrain && len(t.path) > 0 {
		p = geometry.SnapAxis(t.path[len(t.path)-1], p)
	}
	t.path = append(t.path, p)
}

// PointerUp resolves text under the swept region and commits either a
// text-mode or an overlay-mode highlight. A single-click sweep is
// silently discarded.
func (t *HighlightTool) PointerUp(ev PointerEvent, ctx *Context) error {
	if !t.active {
		return nil
	}
	path := t.path
	width := t.width
	if ev.Doc.IsFinite() && path[len(path)-1] != ev.Doc {
		path = append(path, ev.Doc)
	}
	t.Cancel()

	if len(path) < 2 {
		return nil
	}

	swept := geometry.BoundingBox(path)
	quads := t.resolveText(ctx, swept)

	a := annotation.New(annotation.KindHighlight, ctx.Page, swept)
	if len(quads) > 0 {
		a.Rect = geometry.QuadsBounds(quads)
		a.Highlight = &annotation.Highlight{
			Mode:    annotation.HighlightText,
			Quads:   quads,
			Color:   ctx.Defaults.HighlightColor,
			Opacity: ctx.Defaults.StrokeOpacity,
		}
	} else {
		overlayQuads := geometry.StrokeQuads(path, width)
		a.Rect = geometry.QuadsBounds(overlayQuads)
		a.Highlight = &annotation.Highlight{
			Mode:    annotation.HighlightOverlay,
			Quads:   overlayQuads,
			Path:    path,
			Width:   width,
			Color:   ctx.Defaults.HighlightColor,
			Opacity: ctx.Defaults.StrokeOpacity,
		}
	}
	if err := ctx.commit(a); err != nil {
		slog.Warn("highlight commit rejected", "error", err)
	}
	return nil
}

// resolveText queries the engine for text under the swept rectangle,
// trying several region shapes before giving up: the normalized
// corners, the corners scaled to device pixels (layouts reported in
// device space), and the region expanded by a couple of units. Any
// engine failure degrades to overlay mode rather than surfacing.
func (t *HighlightTool) resolveText(ctx *Context, swept geometry.Rect) []geometry.Quad {
	if ctx.Engine == nil {
		return nil
	}

	lo := geometry.Point2D{X: swept.X, Y: swept.Y}
	hi := geometry.Point2D{X: swept.X + swept.Width, Y: swept.Y + swept.Height}

	attempts := [][2]geometry.Point2D{
		{lo, hi},
	}
	if dpr := ctx.Viewport.DevicePixelRatio; dpr > 0 && dpr != 1 {
		attempts = append(attempts, [2]geometry.Point2D{lo.Scale(dpr), hi.Scale(dpr)})
	}
	expanded := swept.Expand(regionExpand)
	attempts = append(attempts, [2]geometry.Point2D{
		{X: expanded.X, Y: expanded.Y},
		{X: expanded.X + expanded.Width, Y: expanded.Y + expanded.Height},
	})

	for _, corners := range attempts {
		quads, err := ctx.Engine.TextInRegion(ctx.Ctx, ctx.Page, corners[0], corners[1])
		if err != nil {
			if !errors.Is(err, document.ErrNoText) {
				slog.Warn("text layout query failed", "page", ctx.Page, "error", err)
			}
			continue
		}
		if len(quads) > 0 {
			return quads
		}
	}
	return nil
}

// Cancel implements Tool.
func (t *HighlightTool) Cancel() {
	t.active = false
	t.path = nil
}

// Preview implements Tool.
func (t *HighlightTool) Preview() Preview {
	if !t.active || len(t.path) == 0 {
		return Preview{}
	}
	return Preview{Shape: PreviewPath, Path: t.path, Width: t.width}
}
