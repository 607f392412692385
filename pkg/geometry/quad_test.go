package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrokeQuadsStraightSegment(t *testing.T) {
	path := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}
	quads := StrokeQuads(path, 4)
	require.Len(t, quads, 1)
	// Area of a straight segment's quad is length times stroke width.
	assert.InDelta(t, 40.0, quads[0].Area(), 1e-9)

	bounds := quads[0].Bounds()
	assert.InDelta(t, 0, bounds.X, 1e-9)
	assert.InDelta(t, -2, bounds.Y, 1e-9)
	assert.InDelta(t, 10, bounds.Width, 1e-9)
	assert.InDelta(t, 4, bounds.Height, 1e-9)
}

func TestStrokeQuadsFreehandStroke(t *testing.T) {
	path := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	quads := StrokeQuads(path, 4)
	require.GreaterOrEqual(t, len(quads), 2)
	for i, q := range quads {
		assert.Greater(t, q.Area(), 0.0, "quad %d has zero area", i)
	}
}

func TestStrokeQuadsSinglePoint(t *testing.T) {
	quads := StrokeQuads([]Point2D{{X: 5, Y: 5}}, 4)
	require.Len(t, quads, 1)
	assert.InDelta(t, 16.0, quads[0].Area(), 1e-9)
	assert.Equal(t, Point2D{X: 5, Y: 5}, quads[0].Bounds().Center())
}

func TestStrokeQuadsDegenerateSegmentYieldsPointQuad(t *testing.T) {
	path := []Point2D{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}
	quads := StrokeQuads(path, 2)
	require.Len(t, quads, 2)

	// The repeated point contributes a width-sized square.
	assert.InDelta(t, 4.0, quads[0].Area(), 1e-9)
	assert.Equal(t, Point2D{X: 0, Y: 0}, quads[0].Bounds().Center())
	assert.InDelta(t, 20.0, quads[1].Area(), 1e-9)
}

func TestStrokeQuadsAllDegenerate(t *testing.T) {
	path := []Point2D{{X: 3, Y: 3}, {X: 3, Y: 3}}
	quads := StrokeQuads(path, 2)
	require.Len(t, quads, 1)
	assert.InDelta(t, 4.0, quads[0].Area(), 1e-9)
}

func TestStrokeQuadsEmptyAndZeroWidth(t *testing.T) {
	assert.Nil(t, StrokeQuads(nil, 4))
	assert.Nil(t, StrokeQuads([]Point2D{{X: 1, Y: 1}}, 0))
}

func TestQuadFlattenRoundTrip(t *testing.T) {
	q := QuadFromRect(NewRect(1, 2, 3, 4))
	assert.Equal(t, q, QuadFromFlat(q.Flatten()))
}

func TestQuadsBounds(t *testing.T) {
	quads := []Quad{
		QuadFromRect(NewRect(0, 0, 10, 10)),
		QuadFromRect(NewRect(20, 5, 10, 10)),
	}
	bounds := QuadsBounds(quads)
	assert.Equal(t, NewRect(0, 0, 30, 15), bounds)
}
