package tools

import (
	"log/slog"

	"doc-annotator/internal/annotation"
	"doc-annotator/pkg/geometry"
)

// calloutGap separates the seeded region from its text box.
const calloutGap = 12.0

// CalloutTool seeds a rectangle over the region of interest; the
// committed callout anchors its arrow at the seed box center and
// places the text box to the right of it.
type CalloutTool struct {
	active bool
	anchor geometry.Point2D
	cursor geometry.Point2D
}

// NewCalloutTool creates an idle callout tool.
func NewCalloutTool() *CalloutTool {
	return &CalloutTool{}
}

// PointerDown seeds the rectangle.
func (t *CalloutTool) PointerDown(ev PointerEvent, _ *Context) {
	if !ev.DocOK {
		return
	}
	t.active = true
	t.anchor = ev.Doc
	t.cursor = ev.Doc
}

// PointerMove updates the seed rectangle.
func (t *CalloutTool) PointerMove(ev PointerEvent, _ *Context) {
	if !t.active || !ev.Doc.IsFinite() {
		return
	}
	t.cursor = ev.Doc
}

// PointerUp commits the callout when the seed box is large enough.
func (t *CalloutTool) PointerUp(_ PointerEvent, ctx *Context) error {
	if !t.active {
		return nil
	}
	box := geometry.RectFromCorners(t.anchor, t.cursor)
	t.Cancel()

	if box.Width < minCalloutSize || box.Height < minCalloutSize {
		return nil
	}

	textBox := geometry.NewRect(box.X+box.Width+calloutGap, box.Y, box.Width, box.Height)
	a := annotation.New(annotation.KindCallout, ctx.Page, textBox)
	a.Callout = &annotation.Callout{
		FontSize: ctx.Defaults.FontSize,
		Color:    ctx.Defaults.TextColor,
		Anchor:   box.Center(),
	}
	if err := ctx.commit(a); err != nil {
		slog.Warn("callout commit rejected", "error", err)
		return nil
	}
	if ctx.OnSelect != nil {
		ctx.OnSelect(a.ID)
	}
	return nil
}

// Cancel implements Tool.
func (t *CalloutTool) Cancel() {
	t.active = false
}

// Preview implements Tool.
func (t *CalloutTool) Preview() Preview {
	if !t.active {
		return Preview{}
	}
	return Preview{Shape: PreviewRect, Rect: geometry.RectFromCorners(t.anchor, t.cursor)}
}
