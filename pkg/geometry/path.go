package geometry

import "math"

// smoothSamplesPerSegment is the number of interior samples synthesized
// for each segment during Catmull-Rom smoothing.
const smoothSamplesPerSegment = 10

// DefaultSimplifyTolerance is the Douglas-Peucker tolerance in document
// units used for freehand strokes.
const DefaultSimplifyTolerance = 2.0

// SmoothCatmullRom densifies a polyline using Catmull-Rom spline
// interpolation: for every consecutive 4-point window (indices clamped
// at the ends) it synthesizes interior samples with cubic blending
// weights. The first and last input points are preserved exactly.
// Paths with fewer than 3 points are returned unchanged.
func SmoothCatmullRom(path []Point2D) []Point2D {
	if len(path) < 3 {
		return path
	}

	out := make([]Point2D, 0, (len(path)-1)*smoothSamplesPerSegment+1)
	out = append(out, path[0])

	for i := 0; i < len(path)-1; i++ {
		p0 := path[clampIndex(i-1, len(path))]
		p1 := path[i]
		p2 := path[i+1]
		p3 := path[clampIndex(i+2, len(path))]

		for s := 1; s <= smoothSamplesPerSegment; s++ {
			t := float64(s) / float64(smoothSamplesPerSegment)
			out = append(out, catmullRom(p0, p1, p2, p3, t))
		}
	}

	// The last blended sample lands on path[len-1] analytically; write
	// the original point so the endpoint is bit-exact.
	out[len(out)-1] = path[len(path)-1]
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// catmullRom evaluates the centripetal-free (uniform) Catmull-Rom blend
// of four control points at parameter t in [0,1].
func catmullRom(p0, p1, p2, p3 Point2D, t float64) Point2D {
	t2 := t * t
	t3 := t2 * t
	return Point2D{
		X: 0.5 * ((2 * p1.X) +
			(-p0.X+p2.X)*t +
			(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
			(-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * ((2 * p1.Y) +
			(-p0.Y+p2.Y)*t +
			(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
			(-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	}
}

// Simplify reduces a polyline with the Douglas-Peucker algorithm: the
// point of maximum perpendicular distance from the chord between the
// endpoints is kept if it exceeds tolerance, recursing on both halves;
// otherwise the run collapses to its two endpoints. The result always
// retains at least the two endpoints.
func Simplify(path []Point2D, tolerance float64) []Point2D {
	if len(path) < 3 {
		return path
	}

	maxDist := 0.0
	maxIdx := 0
	first, last := path[0], path[len(path)-1]
	for i := 1; i < len(path)-1; i++ {
		d := PerpendicularDistance(path[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= tolerance {
		return []Point2D{first, last}
	}

	left := Simplify(path[:maxIdx+1], tolerance)
	right := Simplify(path[maxIdx:], tolerance)

	// Merge without the duplicated split point. Copy into a fresh slice:
	// the halves alias the input's backing array.
	merged := make([]Point2D, 0, len(left)+len(right)-1)
	merged = append(merged, left[:len(left)-1]...)
	return append(merged, right...)
}

// PerpendicularDistance returns the distance from p to the line through
// a and b. If a and b coincide it degenerates to the point distance.
func PerpendicularDistance(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return p.Distance(a)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}
