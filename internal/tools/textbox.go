package tools

import (
	"log/slog"

	"doc-annotator/internal/annotation"
	"doc-annotator/pkg/geometry"
)

// Default footprint of a click-created single-line text box, in
// document units. The height tracks the font size.
const (
	autoFitTextBoxWidth  = 160.0
	textBoxHeightPadding = 8.0
)

// TextBoxTool places free text boxes. A click creates an auto-fit
// single-line box; a drag creates a fixed box from the drag rectangle.
// The created annotation is provisional: it enters live edit mode and
// is only kept once non-empty content is committed.
type TextBoxTool struct {
	active   bool
	anchor   geometry.Point2D
	cursor   geometry.Point2D
	dragging bool
}

// NewTextBoxTool creates an idle text box tool.
func NewTextBoxTool() *TextBoxTool {
	return &TextBoxTool{}
}

// PointerDown records the anchor; whether this is a click or a drag is
// decided by distance.
func (t *TextBoxTool) PointerDown(ev PointerEvent, _ *Context) {
	if !ev.DocOK {
		return
	}
	t.active = true
	t.anchor = ev.Doc
	t.cursor = ev.Doc
	t.dragging = false
}

// PointerMove tracks the drag rectangle.
func (t *TextBoxTool) PointerMove(ev PointerEvent, _ *Context) {
	if !t.active || !ev.Doc.IsFinite() {
		return
	}
	t.cursor = ev.Doc
	if t.anchor.Distance(t.cursor) > dragThreshold {
		t.dragging = true
	}
}

// PointerUp creates a provisional text box and selects it for editing.
func (t *TextBoxTool) PointerUp(_ PointerEvent, ctx *Context) error {
	if !t.active {
		return nil
	}
	anchor, cursor, dragging := t.anchor, t.cursor, t.dragging
	t.Cancel()

	fontSize := ctx.Defaults.FontSize
	var box geometry.Rect
	if dragging {
		box = geometry.RectFromCorners(anchor, cursor)
		if box.Width < minShapeSize || box.Height < minShapeSize {
			return nil
		}
	} else {
		// Single-line box hanging below the click point.
		height := fontSize + textBoxHeightPadding
		box = geometry.NewRect(anchor.X, anchor.Y-height, autoFitTextBoxWidth, height)
	}

	a := annotation.New(annotation.KindTextBox, ctx.Page, box)
	a.TextBox = &annotation.TextBox{
		FontSize:    fontSize,
		Color:       ctx.Defaults.TextColor,
		Provisional: true,
	}
	if err := ctx.commit(a); err != nil {
		slog.Warn("text box commit rejected", "error", err)
		return nil
	}
	if ctx.OnSelect != nil {
		ctx.OnSelect(a.ID)
	}
	return nil
}

// Cancel implements Tool.
func (t *TextBoxTool) Cancel() {
	t.active = false
	t.dragging = false
}

// Preview implements Tool.
func (t *TextBoxTool) Preview() Preview {
	if !t.active || !t.dragging {
		return Preview{}
	}
	return Preview{Shape: PreviewRect, Rect: geometry.RectFromCorners(t.anchor, t.cursor)}
}
