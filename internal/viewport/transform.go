package viewport

import (
	"gonum.org/v1/gonum/mat"

	"doc-annotator/pkg/geometry"
)

// documentToScreenMatrix assembles the homogeneous document-to-screen
// affine: flip the Y axis about the unrotated page height, rotate into
// the displayed frame, scale by the render scale into buffer pixels,
// scale buffer to display pixels, then translate by the surface origin.
func (s State) documentToScreenMatrix() (*mat.Dense, bool) {
	if !s.Laid() {
		return nil, false
	}

	w, h := s.PageWidth, s.PageHeight

	// Document space (bottom-left, Y up) to unrotated top-left raster
	// units.
	flip := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, -1, h,
		0, 0, 1,
	})

	// Unrotated top-left units to the displayed (rotated) frame.
	var rotate *mat.Dense
	switch s.NormalizedRotation() {
	case 90:
		rotate = mat.NewDense(3, 3, []float64{
			0, -1, h,
			1, 0, 0,
			0, 0, 1,
		})
	case 180:
		rotate = mat.NewDense(3, 3, []float64{
			-1, 0, w,
			0, -1, h,
			0, 0, 1,
		})
	case 270:
		rotate = mat.NewDense(3, 3, []float64{
			0, 1, 0,
			-1, 0, w,
			0, 0, 1,
		})
	default:
		rotate = mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		})
	}

	// Rotated document units to buffer pixels, buffer pixels to display
	// pixels (the ratio that carries zoom and device pixel ratio), and
	// finally the surface's on-screen origin.
	toBuffer := mat.NewDense(3, 3, []float64{
		s.RenderScale, 0, 0,
		0, s.RenderScale, 0,
		0, 0, 1,
	})
	toDisplay := mat.NewDense(3, 3, []float64{
		s.SurfaceSize.Width / s.BufferSize.Width, 0, s.SurfaceOrigin.X,
		0, s.SurfaceSize.Height / s.BufferSize.Height, s.SurfaceOrigin.Y,
		0, 0, 1,
	})

	m := mat.NewDense(3, 3, nil)
	m.Mul(rotate, flip)
	m.Mul(toBuffer, m)
	m.Mul(toDisplay, m)
	return m, true
}

func applyHomogeneous(m *mat.Dense, p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2),
		Y: m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2),
	}
}

// ScreenToDocument converts a pointer position in display pixels to a
// document-space point. The second return is false when the surface
// has not been laid out yet; callers fall back to a last-known-good
// position rather than propagating NaN or Infinity.
func (s State) ScreenToDocument(x, y float64) (geometry.Point2D, bool) {
	m, ok := s.documentToScreenMatrix()
	if !ok {
		return geometry.Point2D{}, false
	}
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return geometry.Point2D{}, false
	}
	p := applyHomogeneous(&inv, geometry.Point2D{X: x, Y: y})
	if !p.IsFinite() {
		return geometry.Point2D{}, false
	}
	return p, true
}

// DocumentToScreen converts a document-space point to a position in
// display pixels, the exact inverse of ScreenToDocument. Used to place
// overlays (selection boxes, preview paths, handles) over the surface.
func (s State) DocumentToScreen(p geometry.Point2D) (geometry.Point2D, bool) {
	m, ok := s.documentToScreenMatrix()
	if !ok {
		return geometry.Point2D{}, false
	}
	out := applyHomogeneous(m, p)
	if !out.IsFinite() {
		return geometry.Point2D{}, false
	}
	return out, true
}

// DocumentToAbsolute converts a document-space point to an absolute
// window position by composing the surface-local conversion with the
// current pan offset and zoom scale. Used for elements positioned
// outside the surface's own transform.
func (s State) DocumentToAbsolute(p geometry.Point2D) (geometry.Point2D, bool) {
	local, ok := s.DocumentToScreen(p)
	if !ok {
		return geometry.Point2D{}, false
	}
	return local.Sub(s.SurfaceOrigin).Scale(s.Zoom).Add(s.Pan), true
}

// RectToScreen converts a document-space rectangle to the display-pixel
// rectangle covering it, honoring the page rotation.
func (s State) RectToScreen(r geometry.Rect) (geometry.Rect, bool) {
	a, ok := s.DocumentToScreen(geometry.Point2D{X: r.X, Y: r.Y})
	if !ok {
		return geometry.Rect{}, false
	}
	b, ok := s.DocumentToScreen(geometry.Point2D{X: r.X + r.Width, Y: r.Y + r.Height})
	if !ok {
		return geometry.Rect{}, false
	}
	return geometry.RectFromCorners(a, b), true
}
