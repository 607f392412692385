package geometry

import "math"

// StrokeQuads converts a polyline plus a stroke width into one
// quadrilateral per segment by offsetting each segment's endpoints
// along the perpendicular normal by half the stroke width. This is the
// fillable-region form used to store freehand and overlay highlights
// independently of the original stroke path.
//
// A zero-length segment yields a width-sized square centered on its
// point, as does a single-point path.
func StrokeQuads(path []Point2D, width float64) []Quad {
	if len(path) == 0 || width <= 0 {
		return nil
	}
	half := width / 2

	var quads []Quad
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		dx := b.X - a.X
		dy := b.Y - a.Y
		length := math.Sqrt(dx*dx + dy*dy)
		if length == 0 {
			quads = append(quads, pointQuad(a, half))
			continue
		}
		// Unit normal perpendicular to the segment direction.
		nx := -dy / length * half
		ny := dx / length * half
		quads = append(quads, Quad{
			{X: a.X + nx, Y: a.Y + ny},
			{X: b.X + nx, Y: b.Y + ny},
			{X: b.X - nx, Y: b.Y - ny},
			{X: a.X - nx, Y: a.Y - ny},
		})
	}

	if len(quads) == 0 {
		quads = append(quads, pointQuad(path[0], half))
	}
	return quads
}

// pointQuad returns a square of side 2*half centered on p.
func pointQuad(p Point2D, half float64) Quad {
	return Quad{
		{X: p.X - half, Y: p.Y - half},
		{X: p.X + half, Y: p.Y - half},
		{X: p.X + half, Y: p.Y + half},
		{X: p.X - half, Y: p.Y + half},
	}
}

// Contains reports whether p lies inside the quad.
func (q Quad) Contains(p Point2D) bool {
	return PointInPolygon(p, q[:])
}

// QuadsBounds returns the union bounding rectangle of a set of quads.
func QuadsBounds(quads []Quad) Rect {
	if len(quads) == 0 {
		return Rect{}
	}
	bounds := quads[0].Bounds()
	for _, q := range quads[1:] {
		bounds = bounds.Union(q.Bounds())
	}
	return bounds
}
