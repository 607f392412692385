package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapSquare(t *testing.T) {
	// Dragging from (0,0) to (30,80) with the snap modifier yields an
	// 80 by 80 box.
	snapped := SnapSquare(Point2D{X: 0, Y: 0}, Point2D{X: 30, Y: 80})
	assert.Equal(t, Point2D{X: 80, Y: 80}, snapped)
}

func TestSnapSquarePreservesDragDirection(t *testing.T) {
	anchor := Point2D{X: 10, Y: 10}
	snapped := SnapSquare(anchor, Point2D{X: -50, Y: 30})
	assert.Equal(t, Point2D{X: -50, Y: 70}, snapped)

	snapped = SnapSquare(anchor, Point2D{X: 40, Y: -60})
	assert.Equal(t, Point2D{X: 80, Y: -60}, snapped)
}

func TestSnapAngle45(t *testing.T) {
	start := Point2D{X: 0, Y: 0}

	// Slightly off-horizontal drag snaps to the X axis.
	snapped := SnapAngle45(start, Point2D{X: 10, Y: 1})
	length := start.Distance(Point2D{X: 10, Y: 1})
	assert.InDelta(t, length, snapped.X, 1e-9)
	assert.InDelta(t, 0, snapped.Y, 1e-9)

	// A 40 degree drag snaps to the diagonal.
	end := Point2D{X: 10 * math.Cos(40 * math.Pi / 180), Y: 10 * math.Sin(40*math.Pi/180)}
	snapped = SnapAngle45(start, end)
	assert.InDelta(t, 10*math.Cos(math.Pi/4), snapped.X, 1e-9)
	assert.InDelta(t, 10*math.Sin(math.Pi/4), snapped.Y, 1e-9)
}

func TestSnapAngle45PreservesLength(t *testing.T) {
	start := Point2D{X: 3, Y: -2}
	for deg := 0; deg < 360; deg += 15 {
		rad := float64(deg) * math.Pi / 180
		end := Point2D{X: start.X + 7*math.Cos(rad), Y: start.Y + 7*math.Sin(rad)}
		snapped := SnapAngle45(start, end)
		assert.InDelta(t, 7.0, start.Distance(snapped), 1e-9)
	}
}

func TestSnapAngle45ZeroLength(t *testing.T) {
	p := Point2D{X: 5, Y: 5}
	assert.Equal(t, p, SnapAngle45(p, p))
}
