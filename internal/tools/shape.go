package tools

import (
	"log/slog"

	"doc-annotator/internal/annotation"
	"doc-annotator/pkg/geometry"
)

// ShapeTool draws rectangles, circles, and arrows by dragging a
// bounding box. With the constrain modifier held, rectangles and
// circles snap to squares and arrows snap to 45 degree angles; circles
// additionally support a secondary mode that freezes the size and
// repositions the whole shape.
type ShapeTool struct {
	shapeType annotation.ShapeType

	active bool
	anchor geometry.Point2D
	cursor geometry.Point2D

	// Secondary circle mode: the frozen box follows the pointer.
	frozen     bool
	frozenSize geometry.Size
}

// NewShapeTool creates an idle shape tool drawing rectangles.
func NewShapeTool() *ShapeTool {
	return &ShapeTool{}
}

// SetShapeType selects the primitive for subsequent gestures.
func (t *ShapeTool) SetShapeType(st annotation.ShapeType) {
	t.shapeType = st
}

// ShapeType returns the current primitive.
func (t *ShapeTool) ShapeType() annotation.ShapeType {
	return t.shapeType
}

// PointerDown records the anchor point.
func (t *ShapeTool) PointerDown(ev PointerEvent, _ *Context) {
	if !ev.DocOK {
		return
	}
	t.active = true
	t.anchor = ev.Doc
	t.cursor = ev.Doc
	t.frozen = false
}

// PointerMove updates the live bounding box, applying snap logic while
// the constrain modifier is held.
func (t *ShapeTool) PointerMove(ev PointerEvent, _ *Context) {
	if !t.active || !ev.Doc.IsFinite() {
		return
	}

	if t.shapeType == annotation.ShapeCircle && ev.Mod.Constrain && ev.Mod.Secondary {
		// Freeze the current size and let the pointer carry the shape.
		if !t.frozen {
			box := geometry.RectFromCorners(t.anchor, t.cursor)
			t.frozenSize = geometry.NewSize(box.Width, box.Height)
			t.frozen = true
		}
		t.anchor = geometry.Point2D{
			X: ev.Doc.X - t.frozenSize.Width/2,
			Y: ev.Doc.Y - t.frozenSize.Height/2,
		}
		t.cursor = geometry.Point2D{
			X: ev.Doc.X + t.frozenSize.Width/2,
			Y: ev.Doc.Y + t.frozenSize.Height/2,
		}
		return
	}
	t.frozen = false

	cursor := ev.Doc
	if ev.Mod.Constrain {
		if t.shapeType == annotation.ShapeArrow {
			cursor = geometry.SnapAngle45(t.anchor, cursor)
		} else {
			cursor = geometry.SnapSquare(t.anchor, cursor)
		}
	}
	t.cursor = cursor
}

// PointerUp commits the shape when the box reaches the minimum size.
func (t *ShapeTool) PointerUp(_ PointerEvent, ctx *Context) error {
	if !t.active {
		return nil
	}
	anchor, cursor := t.anchor, t.cursor
	shapeType := t.shapeType
	t.Cancel()

	box := geometry.RectFromCorners(anchor, cursor)
	if box.Width < minShapeSize || box.Height < minShapeSize {
		return nil
	}

	a := annotation.New(annotation.KindShape, ctx.Page, box)
	a.Shape = &annotation.Shape{
		Type:          shapeType,
		StrokeColor:   ctx.Defaults.StrokeColor,
		StrokeWidth:   ctx.Defaults.StrokeWidth,
		StrokeOpacity: ctx.Defaults.StrokeOpacity,
		FillColor:     ctx.Defaults.FillColor,
		FillOpacity:   ctx.Defaults.FillOpacity,
	}
	if shapeType == annotation.ShapeArrow {
		a.Shape.Points = []geometry.Point2D{anchor, cursor}
	}
	if err := ctx.commit(a); err != nil {
		slog.Warn("shape commit rejected", "error", err)
	}
	return nil
}

// Cancel implements Tool.
func (t *ShapeTool) Cancel() {
	t.active = false
	t.frozen = false
}

// Preview implements Tool.
func (t *ShapeTool) Preview() Preview {
	if !t.active {
		return Preview{}
	}
	box := geometry.RectFromCorners(t.anchor, t.cursor)
	switch t.shapeType {
	case annotation.ShapeCircle:
		return Preview{Shape: PreviewEllipse, Rect: box}
	case annotation.ShapeArrow:
		return Preview{
			Shape: PreviewArrow,
			Rect:  box,
			Path:  []geometry.Point2D{t.anchor, t.cursor},
		}
	default:
		return Preview{Shape: PreviewRect, Rect: box}
	}
}
