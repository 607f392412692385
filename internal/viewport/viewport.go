// Package viewport converts between the coordinate spaces of the
// editor: document space (bottom-left origin, Y up, page points), the
// fixed-resolution raster buffer, the zoomed/panned/rotated on-screen
// surface, and device pixels.
package viewport

import (
	"doc-annotator/pkg/geometry"
)

// State is a value snapshot of the viewport taken at the start of a
// gesture. Tools receive it by value so zoom, pan, or rotation changes
// mid-gesture cannot tear a conversion; the page dimensions are always
// the unrotated ones, never inferred from coordinate magnitude.
type State struct {
	// Zoom is the user zoom factor applied to the surface.
	Zoom float64
	// Pan is the offset of the zoomed content within the window, in
	// display pixels.
	Pan geometry.Point2D
	// Rotation is the page display rotation in degrees, one of
	// 0, 90, 180, 270 (clockwise).
	Rotation int
	// DevicePixelRatio is device pixels per display pixel.
	DevicePixelRatio float64
	// RenderScale is the fixed raster scale: buffer pixels per document
	// unit, independent of zoom.
	RenderScale float64
	// SurfaceOrigin is the on-screen position of the raster surface's
	// top-left corner, in display pixels.
	SurfaceOrigin geometry.Point2D
	// SurfaceSize is the displayed size of the raster surface in
	// display pixels. Zero before first layout.
	SurfaceSize geometry.Size
	// BufferSize is the raster buffer size in buffer pixels. Its
	// aspect follows the rotated page.
	BufferSize geometry.Size
	// PageWidth and PageHeight are the unrotated page dimensions in
	// document units.
	PageWidth  float64
	PageHeight float64
}

// NormalizedRotation returns the rotation reduced to {0, 90, 180, 270}.
func (s State) NormalizedRotation() int {
	r := ((s.Rotation % 360) + 360) % 360
	return r - r%90
}

// Swapped reports whether the displayed page axes are swapped.
func (s State) Swapped() bool {
	r := s.NormalizedRotation()
	return r == 90 || r == 270
}

// RotatedPageSize returns the page dimensions as displayed: swapped
// for 90 and 270 degree rotations.
func (s State) RotatedPageSize() geometry.Size {
	if s.Swapped() {
		return geometry.NewSize(s.PageHeight, s.PageWidth)
	}
	return geometry.NewSize(s.PageWidth, s.PageHeight)
}

// Laid reports whether the surface has been laid out: conversions are
// undefined until the display size, buffer size, render scale, and
// page dimensions are all positive.
func (s State) Laid() bool {
	return s.SurfaceSize.Width > 0 && s.SurfaceSize.Height > 0 &&
		s.BufferSize.Width > 0 && s.BufferSize.Height > 0 &&
		s.RenderScale > 0 &&
		s.PageWidth > 0 && s.PageHeight > 0
}
