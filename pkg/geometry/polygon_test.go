package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointInPolygon(t *testing.T) {
	triangle := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}

	assert.True(t, PointInPolygon(Point2D{X: 5, Y: 3}, triangle))
	assert.False(t, PointInPolygon(Point2D{X: 1, Y: 9}, triangle))
	assert.False(t, PointInPolygon(Point2D{X: 20, Y: 5}, triangle))
}

func TestPointInPolygonDegenerate(t *testing.T) {
	assert.False(t, PointInPolygon(Point2D{X: 1, Y: 1}, []Point2D{{X: 0, Y: 0}, {X: 2, Y: 2}}))
}

func TestQuadContains(t *testing.T) {
	q := QuadFromRect(NewRect(40, 680, 50, 12))

	assert.True(t, q.Contains(Point2D{X: 60, Y: 685}))
	assert.False(t, q.Contains(Point2D{X: 110, Y: 685}))
}
