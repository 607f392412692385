// Package selection provides annotation hit-testing and hover and
// selection tracking for the editor.
package selection

import (
	"doc-annotator/internal/annotation"
	"doc-annotator/pkg/geometry"
)

// hitPadding widens thin stroke targets so they are clickable, in
// document units.
const hitPadding = 3.0

// hit reports whether p lands on a single annotation.
func hit(p geometry.Point2D, a annotation.Annotation) bool {
	switch a.Kind {
	case annotation.KindDraw:
		if a.Draw == nil {
			return false
		}
		pad := a.Draw.Width/2 + hitPadding
		return geometry.BoundingBox(a.Draw.Path).Expand(pad).Contains(p)

	case annotation.KindHighlight:
		if a.Highlight == nil {
			return false
		}
		if a.Highlight.Mode == annotation.HighlightText {
			for _, q := range a.Highlight.Quads {
				if q.Contains(p) {
					return true
				}
			}
			return false
		}
		pad := a.Highlight.Width/2 + hitPadding
		return geometry.BoundingBox(a.Highlight.Path).Expand(pad).Contains(p)

	case annotation.KindShape:
		if a.Shape != nil && a.Shape.Type == annotation.ShapeArrow && len(a.Shape.Points) == 2 {
			pad := a.Shape.StrokeWidth/2 + hitPadding
			return geometry.RectFromCorners(a.Shape.Points[0], a.Shape.Points[1]).Expand(pad).Contains(p)
		}
		return a.Rect.Contains(p)

	default:
		return a.Rect.Contains(p)
	}
}

// HitTest returns the first annotation under p in list order.
func HitTest(p geometry.Point2D, annots []annotation.Annotation) (annotation.Annotation, bool) {
	for _, a := range annots {
		if hit(p, a) {
			return a, true
		}
	}
	return annotation.Annotation{}, false
}
