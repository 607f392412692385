// Drawing primitives for the annotation overlay. Everything operates
// in display pixels on the composited output image and blends through
// the shared pixel helper so translucent annotation colors layer
// correctly over the page raster.
package canvas

import (
	"image"
	"image/color"
	"math"
	"sort"

	"doc-annotator/pkg/colorutil"
	"doc-annotator/pkg/geometry"
)

// drawLine draws a thick line with Bresenham's algorithm, stamping a
// filled square of the given thickness at each step.
func drawLine(out *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	half := thickness / 2
	x, y := x1, y1
	for {
		for ox := -half; ox <= half; ox++ {
			for oy := -half; oy <= half; oy++ {
				colorutil.BlendPixel(out, x+ox, y+oy, col)
			}
		}
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// drawPolyline connects consecutive screen points.
func drawPolyline(out *image.RGBA, pts []geometry.Point2D, col color.RGBA, thickness int) {
	for i := 1; i < len(pts); i++ {
		drawLine(out,
			int(pts[i-1].X), int(pts[i-1].Y),
			int(pts[i].X), int(pts[i].Y),
			col, thickness)
	}
}

// strokeRect draws a rectangle outline two pixels thick.
func strokeRect(out *image.RGBA, r geometry.Rect, col color.RGBA) {
	x1, y1 := int(r.X), int(r.Y)
	x2, y2 := int(r.X+r.Width), int(r.Y+r.Height)
	for t := 0; t < 2; t++ {
		for x := x1; x <= x2; x++ {
			colorutil.BlendPixel(out, x, y1+t, col)
			colorutil.BlendPixel(out, x, y2-t, col)
		}
		for y := y1; y <= y2; y++ {
			colorutil.BlendPixel(out, x1+t, y, col)
			colorutil.BlendPixel(out, x2-t, y, col)
		}
	}
}

// dashLength in pixels for dashed outlines.
const dashLength = 4

// dashedRect draws a dashed rectangle outline, used for the selection
// box and live region previews.
func dashedRect(out *image.RGBA, r geometry.Rect, col color.RGBA) {
	x1, y1 := int(r.X), int(r.Y)
	x2, y2 := int(r.X+r.Width), int(r.Y+r.Height)
	for x := x1; x <= x2; x++ {
		if (x/dashLength)%2 == 0 {
			colorutil.BlendPixel(out, x, y1, col)
			colorutil.BlendPixel(out, x, y2, col)
		}
	}
	for y := y1; y <= y2; y++ {
		if (y/dashLength)%2 == 0 {
			colorutil.BlendPixel(out, x1, y, col)
			colorutil.BlendPixel(out, x2, y, col)
		}
	}
}

// fillRect fills a rectangle with blending.
func fillRect(out *image.RGBA, r geometry.Rect, col color.RGBA) {
	x1, y1 := int(r.X), int(r.Y)
	x2, y2 := int(r.X+r.Width), int(r.Y+r.Height)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			colorutil.BlendPixel(out, x, y, col)
		}
	}
}

// fillQuad fills an arbitrary quadrilateral with a scanline sweep.
func fillQuad(out *image.RGBA, q geometry.Quad, col color.RGBA) {
	minY := math.Floor(math.Min(math.Min(q[0].Y, q[1].Y), math.Min(q[2].Y, q[3].Y)))
	maxY := math.Ceil(math.Max(math.Max(q[0].Y, q[1].Y), math.Max(q[2].Y, q[3].Y)))

	for y := int(minY); y <= int(maxY); y++ {
		fy := float64(y) + 0.5
		var xs []float64
		for i := 0; i < 4; i++ {
			a, b := q[i], q[(i+1)%4]
			if (a.Y <= fy) == (b.Y <= fy) {
				continue
			}
			t := (fy - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Floor(xs[i])); x <= int(math.Ceil(xs[i+1])); x++ {
				colorutil.BlendPixel(out, x, y, col)
			}
		}
	}
}

// drawEllipse draws an ellipse outline inscribed in r, stepped finely
// enough that adjacent samples connect.
func drawEllipse(out *image.RGBA, r geometry.Rect, col color.RGBA, thickness int) {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	rx := r.Width / 2
	ry := r.Height / 2
	if rx <= 0 || ry <= 0 {
		return
	}

	steps := int(4 * (rx + ry))
	if steps < 16 {
		steps = 16
	}
	prevX := int(cx + rx)
	prevY := int(cy)
	for i := 1; i <= steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := int(cx + rx*math.Cos(theta))
		y := int(cy + ry*math.Sin(theta))
		drawLine(out, prevX, prevY, x, y, col, thickness)
		prevX, prevY = x, y
	}
}

// arrowHeadLength in pixels.
const arrowHeadLength = 12.0

// drawArrow draws a line with a two-stroke head at the tip.
func drawArrow(out *image.RGBA, from, to geometry.Point2D, col color.RGBA, thickness int) {
	drawLine(out, int(from.X), int(from.Y), int(to.X), int(to.Y), col, thickness)

	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	for _, spread := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		hx := to.X + arrowHeadLength*math.Cos(angle+spread)
		hy := to.Y + arrowHeadLength*math.Sin(angle+spread)
		drawLine(out, int(to.X), int(to.Y), int(hx), int(hy), col, thickness)
	}
}
