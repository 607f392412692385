package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-annotator/pkg/geometry"
)

// testState builds a laid-out viewport for a US Letter page at the
// given zoom and rotation, with the buffer rendered at 2x.
func testState(zoom float64, rotation int) State {
	s := State{
		Zoom:             zoom,
		Pan:              geometry.Point2D{X: 17, Y: -4},
		Rotation:         rotation,
		DevicePixelRatio: 1,
		RenderScale:      2,
		SurfaceOrigin:    geometry.Point2D{X: 100, Y: 50},
		PageWidth:        612,
		PageHeight:       792,
	}
	rotated := s.RotatedPageSize()
	s.BufferSize = geometry.NewSize(rotated.Width*s.RenderScale, rotated.Height*s.RenderScale)
	s.SurfaceSize = geometry.NewSize(rotated.Width*zoom, rotated.Height*zoom)
	return s
}

func TestRoundTripAcrossZoomAndRotation(t *testing.T) {
	zooms := []float64{0.25, 0.5, 1, 1.37, 2.2, 5}
	rotations := []int{0, 90, 180, 270}
	points := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 612, Y: 792},
		{X: 50, Y: 700},
		{X: 306.5, Y: 123.456},
	}

	for _, zoom := range zooms {
		for _, rot := range rotations {
			s := testState(zoom, rot)
			for _, p := range points {
				screen, ok := s.DocumentToScreen(p)
				require.True(t, ok, "zoom=%v rot=%d", zoom, rot)

				back, ok := s.ScreenToDocument(screen.X, screen.Y)
				require.True(t, ok, "zoom=%v rot=%d", zoom, rot)

				assert.InDelta(t, p.X, back.X, 1e-6, "zoom=%v rot=%d p=%v", zoom, rot, p)
				assert.InDelta(t, p.Y, back.Y, 1e-6, "zoom=%v rot=%d p=%v", zoom, rot, p)
			}
		}
	}
}

func TestScreenToDocumentFlipsY(t *testing.T) {
	s := testState(1, 0)

	// The surface origin maps to the top-left of the page, which in
	// document space is (0, pageHeight).
	p, ok := s.ScreenToDocument(100, 50)
	require.True(t, ok)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 792, p.Y, 1e-9)

	// The bottom-left document corner sits one page height below.
	screen, ok := s.DocumentToScreen(geometry.Point2D{X: 0, Y: 0})
	require.True(t, ok)
	assert.InDelta(t, 100, screen.X, 1e-9)
	assert.InDelta(t, 50+792, screen.Y, 1e-9)
}

func TestRotation90SwapsDisplayedAxes(t *testing.T) {
	s := testState(1, 90)
	assert.True(t, s.Swapped())
	// Displayed width is the unrotated page height.
	assert.Equal(t, 792.0, s.RotatedPageSize().Width)

	// Rotated 90 degrees clockwise, the page's bottom-left corner is
	// displayed at the surface's top-left.
	screen, ok := s.DocumentToScreen(geometry.Point2D{X: 0, Y: 0})
	require.True(t, ok)
	assert.InDelta(t, 100, screen.X, 1e-9)
	assert.InDelta(t, 50, screen.Y, 1e-9)
}

func TestZoomScalesDisplayDistance(t *testing.T) {
	s := testState(2, 0)
	a, ok := s.DocumentToScreen(geometry.Point2D{X: 0, Y: 0})
	require.True(t, ok)
	b, ok := s.DocumentToScreen(geometry.Point2D{X: 100, Y: 0})
	require.True(t, ok)
	assert.InDelta(t, 200, b.X-a.X, 1e-9)
}

func TestUnlaidSurfaceReturnsNoResult(t *testing.T) {
	s := testState(1, 0)
	s.SurfaceSize = geometry.Size{}

	_, ok := s.ScreenToDocument(10, 10)
	assert.False(t, ok)
	_, ok = s.DocumentToScreen(geometry.Point2D{X: 1, Y: 1})
	assert.False(t, ok)
	_, ok = s.DocumentToAbsolute(geometry.Point2D{X: 1, Y: 1})
	assert.False(t, ok)
}

func TestDocumentToAbsoluteComposesPanAndZoom(t *testing.T) {
	s := testState(2, 0)
	abs, ok := s.DocumentToAbsolute(geometry.Point2D{X: 0, Y: 792})
	require.True(t, ok)
	// Page top-left is at the surface origin, so only pan remains.
	assert.InDelta(t, s.Pan.X, abs.X, 1e-9)
	assert.InDelta(t, s.Pan.Y, abs.Y, 1e-9)
}

func TestRectToScreenNormalizes(t *testing.T) {
	s := testState(1, 0)
	r, ok := s.RectToScreen(geometry.NewRect(10, 20, 30, 40))
	require.True(t, ok)
	assert.InDelta(t, 30, r.Width, 1e-9)
	assert.InDelta(t, 40, r.Height, 1e-9)
	assert.GreaterOrEqual(t, r.Width, 0.0)
}

func TestNormalizedRotation(t *testing.T) {
	for _, tc := range []struct{ in, want int }{
		{0, 0}, {90, 90}, {450, 90}, {-90, 270}, {180, 180}, {359, 270},
	} {
		s := State{Rotation: tc.in}
		assert.Equal(t, tc.want, s.NormalizedRotation(), "rotation %d", tc.in)
	}
}
