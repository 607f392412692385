// Annotation overlay rendering: committed annotations, the live
// gesture preview, and text selection quads, all converted from
// document space to display pixels through the viewport.
package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/selection"
	"doc-annotator/internal/tools"
	"doc-annotator/internal/viewport"
	"doc-annotator/pkg/colorutil"
	"doc-annotator/pkg/geometry"
)

// highlightAlpha is the translucency multiplier for highlight fills.
const highlightAlpha = 0.4

// selectionPad widens selection and hover outlines beyond the
// annotation bounds, in display pixels.
const selectionPad = 3.0

func pathToScreen(vp viewport.State, path []geometry.Point2D) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(path))
	for _, p := range path {
		sp, ok := vp.DocumentToScreen(p)
		if !ok {
			return nil
		}
		out = append(out, sp)
	}
	return out
}

func quadToScreen(vp viewport.State, q geometry.Quad) (geometry.Quad, bool) {
	var out geometry.Quad
	for i, p := range q {
		sp, ok := vp.DocumentToScreen(p)
		if !ok {
			return geometry.Quad{}, false
		}
		out[i] = sp
	}
	return out, true
}

func strokeThickness(width, zoom float64) int {
	t := int(width * zoom)
	if t < 1 {
		t = 1
	}
	return t
}

// drawText renders a string at a screen position with the bitmap face.
func drawText(out *image.RGBA, text string, x, y int, col color.RGBA) {
	d := font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// renderAnnotations draws every committed annotation of the page, then
// the hover and selection outlines on top.
func renderAnnotations(out *image.RGBA, annots []annotation.Annotation, vp viewport.State, tracker *selection.Tracker) {
	for _, a := range annots {
		renderAnnotation(out, a, vp)
	}
	for _, a := range annots {
		if a.ID == tracker.Selected() {
			if box, ok := vp.RectToScreen(a.Rect); ok {
				dashedRect(out, box.Expand(selectionPad), colorutil.SelectBlue)
			}
		} else if a.ID == tracker.Hover() {
			if box, ok := vp.RectToScreen(a.Rect); ok {
				dashedRect(out, box.Expand(selectionPad), colorutil.HoverGray)
			}
		}
	}
}

func renderAnnotation(out *image.RGBA, a annotation.Annotation, vp viewport.State) {
	switch a.Kind {
	case annotation.KindDraw:
		pts := pathToScreen(vp, a.Draw.Path)
		col := colorutil.WithOpacity(a.Draw.Color, a.Draw.Opacity)
		drawPolyline(out, pts, col, strokeThickness(a.Draw.Width, vp.Zoom))

	case annotation.KindShape:
		renderShape(out, a, vp)

	case annotation.KindHighlight:
		col := colorutil.WithOpacity(a.Highlight.Color, a.Highlight.Opacity*highlightAlpha)
		for _, q := range a.Highlight.Quads {
			if sq, ok := quadToScreen(vp, q); ok {
				fillQuad(out, sq, col)
			}
		}

	case annotation.KindRedact:
		if box, ok := vp.RectToScreen(a.Rect); ok {
			fillRect(out, box, colorutil.Black)
		}

	case annotation.KindTextBox:
		if box, ok := vp.RectToScreen(a.Rect); ok {
			strokeRect(out, box, a.TextBox.Color)
			if a.TextBox.Content != "" {
				drawText(out, a.TextBox.Content, int(box.X)+4, int(box.Y)+14, a.TextBox.Color)
			}
		}

	case annotation.KindCallout:
		box, ok := vp.RectToScreen(a.Rect)
		if !ok {
			return
		}
		if anchor, ok := vp.DocumentToScreen(a.Callout.Anchor); ok {
			edge := geometry.Point2D{X: box.X, Y: box.Y + box.Height/2}
			drawArrow(out, edge, anchor, a.Callout.Color, 1)
		}
		strokeRect(out, box, a.Callout.Color)
		if a.Callout.Content != "" {
			drawText(out, a.Callout.Content, int(box.X)+4, int(box.Y)+14, a.Callout.Color)
		}

	case annotation.KindFormField:
		if box, ok := vp.RectToScreen(a.Rect); ok {
			strokeRect(out, box, colorutil.Blue)
			drawText(out, fieldLabel(a.FormField.Type), int(box.X)+4, int(box.Y)+14, colorutil.Blue)
		}

	case annotation.KindStamp:
		if box, ok := vp.RectToScreen(a.Rect); ok {
			strokeRect(out, box, colorutil.Red)
		}
	}
}

func renderShape(out *image.RGBA, a annotation.Annotation, vp viewport.State) {
	s := a.Shape
	stroke := colorutil.WithOpacity(s.StrokeColor, s.StrokeOpacity)
	width := s.StrokeWidth
	if width <= 0 {
		width = 2
	}
	thickness := strokeThickness(width, vp.Zoom)

	if s.Type == annotation.ShapeArrow && len(s.Points) == 2 {
		from, ok1 := vp.DocumentToScreen(s.Points[0])
		to, ok2 := vp.DocumentToScreen(s.Points[1])
		if ok1 && ok2 {
			drawArrow(out, from, to, stroke, thickness)
		}
		return
	}

	box, ok := vp.RectToScreen(a.Rect)
	if !ok {
		return
	}
	if s.FillOpacity > 0 {
		fillRect(out, box, colorutil.WithOpacity(s.FillColor, s.FillOpacity))
	}
	if s.Type == annotation.ShapeCircle {
		drawEllipse(out, box, stroke, thickness)
	} else {
		strokeRect(out, box, stroke)
	}
}

func fieldLabel(ft annotation.FieldType) string {
	switch ft {
	case annotation.FieldCheckbox:
		return "[ ]"
	case annotation.FieldRadio:
		return "( )"
	case annotation.FieldDropdown:
		return "v"
	case annotation.FieldDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

// renderTextQuads draws the live text selection.
func renderTextQuads(out *image.RGBA, quads []geometry.Quad, vp viewport.State) {
	col := colorutil.WithOpacity(colorutil.SelectBlue, 0.35)
	for _, q := range quads {
		if sq, ok := quadToScreen(vp, q); ok {
			fillQuad(out, sq, col)
		}
	}
}

// renderPreview draws the active tool's live gesture geometry.
func renderPreview(out *image.RGBA, pv tools.Preview, vp viewport.State, defaults tools.Defaults) {
	switch pv.Shape {
	case tools.PreviewPath:
		width := pv.Width
		if width <= 0 {
			width = defaults.StrokeWidth
		}
		pts := pathToScreen(vp, pv.Path)
		drawPolyline(out, pts, colorutil.WithOpacity(defaults.StrokeColor, 0.8), strokeThickness(width, vp.Zoom))

	case tools.PreviewRect:
		if box, ok := vp.RectToScreen(pv.Rect); ok {
			dashedRect(out, box, colorutil.SelectBlue)
		}

	case tools.PreviewEllipse:
		if box, ok := vp.RectToScreen(pv.Rect); ok {
			drawEllipse(out, box, colorutil.WithOpacity(defaults.StrokeColor, 0.8), 1)
		}

	case tools.PreviewArrow:
		if len(pv.Path) == 2 {
			from, ok1 := vp.DocumentToScreen(pv.Path[0])
			to, ok2 := vp.DocumentToScreen(pv.Path[1])
			if ok1 && ok2 {
				drawArrow(out, from, to, colorutil.WithOpacity(defaults.StrokeColor, 0.8), 1)
			}
		}

	case tools.PreviewStampGhost:
		if box, ok := vp.RectToScreen(pv.Rect); ok {
			dashedRect(out, box, colorutil.Red)
		}
	}
}
