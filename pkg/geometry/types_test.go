package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectFromCornersNormalizes(t *testing.T) {
	r := RectFromCorners(Point2D{X: 150, Y: 650}, Point2D{X: 50, Y: 700})
	assert.Equal(t, NewRect(50, 650, 100, 50), r)
	assert.GreaterOrEqual(t, r.Width, 0.0)
	assert.GreaterOrEqual(t, r.Height, 0.0)
}

func TestRectExpandAndContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	grown := r.Expand(5)
	assert.Equal(t, NewRect(5, 5, 30, 30), grown)
	assert.True(t, grown.Contains(Point2D{X: 7, Y: 7}))
	assert.False(t, r.Contains(Point2D{X: 7, Y: 7}))
}

func TestQuadArea(t *testing.T) {
	q := QuadFromRect(NewRect(0, 0, 4, 3))
	assert.InDelta(t, 12.0, q.Area(), 1e-9)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, Point2D{X: 1, Y: 2}.IsFinite())
	assert.False(t, Point2D{X: math.NaN(), Y: 2}.IsFinite())
	assert.False(t, Point2D{X: 1, Y: math.Inf(1)}.IsFinite())
	assert.False(t, NewRect(0, 0, math.NaN(), 1).IsFinite())
	assert.False(t, Quad{{X: math.Inf(-1)}}.IsFinite())
}

func TestAffineTransformApplyMul(t *testing.T) {
	scale := AffineTransform{A: 2, D: 2}
	translate := AffineTransform{A: 1, D: 1, TX: 5, TY: -3}
	combined := translate.Mul(scale) // scale first, then translate
	p := combined.Apply(Point2D{X: 3, Y: 4})
	assert.Equal(t, Point2D{X: 11, Y: 5}, p)
}
