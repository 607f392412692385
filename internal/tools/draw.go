package tools

import (
	"log/slog"
	"time"

	"doc-annotator/internal/annotation"
	"doc-annotator/pkg/geometry"
)

// DrawTool captures freehand strokes. Samples are throttled, long
// paths are simplified, and the committed path is spline-smoothed.
type DrawTool struct {
	active     bool
	path       []geometry.Point2D
	lastSample time.Time
}

// NewDrawTool creates an idle draw tool.
func NewDrawTool() *DrawTool {
	return &DrawTool{}
}

// PointerDown starts a stroke at the pointer.
func (t *DrawTool) PointerDown(ev PointerEvent, _ *Context) {
	if !ev.DocOK {
		return
	}
	t.active = true
	t.path = []geometry.Point2D{ev.Doc}
	t.lastSample = ev.Time
}

// PointerMove appends throttled samples to the live stroke.
func (t *DrawTool) PointerMove(ev PointerEvent, _ *Context) {
	if !t.active {
		return
	}
	if ev.Time.Sub(t.lastSample) < drawSampleInterval {
		return
	}
	if !ev.Doc.IsFinite() {
		slog.Warn("draw sample rejected", "reason", "non-finite point")
		return
	}
	t.path = append(t.path, ev.Doc)
	t.lastSample = ev.Time
}

// PointerUp commits the stroke as a draw annotation. Strokes with
// fewer than two points are silently discarded.
func (t *DrawTool) PointerUp(ev PointerEvent, ctx *Context) error {
	if !t.active {
		return nil
	}
	path := t.path
	if ev.Doc.IsFinite() && (len(path) == 0 || path[len(path)-1] != ev.Doc) {
		path = append(path, ev.Doc)
	}
	t.Cancel()

	if len(path) < 2 {
		return nil
	}

	if len(path) > simplifyPointThreshold {
		path = geometry.Simplify(path, geometry.DefaultSimplifyTolerance)
	}
	smoothed := len(path) >= 3
	if smoothed {
		path = geometry.SmoothCatmullRom(path)
	}

	a := annotation.New(annotation.KindDraw, ctx.Page, geometry.BoundingBox(path))
	a.Draw = &annotation.Draw{
		Path:     path,
		Color:    ctx.Defaults.StrokeColor,
		Width:    ctx.Defaults.StrokeWidth,
		Opacity:  ctx.Defaults.StrokeOpacity,
		Smoothed: smoothed,
	}
	if err := ctx.commit(a); err != nil {
		slog.Warn("draw commit rejected", "error", err)
		return nil
	}
	return nil
}

// Cancel implements Tool.
func (t *DrawTool) Cancel() {
	t.active = false
	t.path = nil
}

// Preview implements Tool.
func (t *DrawTool) Preview() Preview {
	if !t.active || len(t.path) == 0 {
		return Preview{}
	}
	return Preview{Shape: PreviewPath, Path: t.path}
}
