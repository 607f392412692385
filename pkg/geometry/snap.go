package geometry

import "math"

// SnapSquare snaps the far corner of a drag so the bounding box spanned
// from anchor becomes a square. The longer drag axis wins and the sign
// of each axis is preserved, so dragging up-left still grows up-left.
func SnapSquare(anchor, cursor Point2D) Point2D {
	dx := cursor.X - anchor.X
	dy := cursor.Y - anchor.Y
	side := math.Max(math.Abs(dx), math.Abs(dy))
	return Point2D{
		X: anchor.X + math.Copysign(side, dx),
		Y: anchor.Y + math.Copysign(side, dy),
	}
}

// SnapAngle45 snaps the end point of a drag to the nearest multiple of
// 45 degrees from start, preserving the drag length.
func SnapAngle45(start, end Point2D) Point2D {
	length := start.Distance(end)
	if length == 0 {
		return end
	}
	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	step := math.Pi / 4
	snapped := math.Round(angle/step) * step
	return Point2D{
		X: start.X + length*math.Cos(snapped),
		Y: start.Y + length*math.Sin(snapped),
	}
}

// SnapAxis snaps a point being appended to a live stroke so the segment
// from prev runs along an axis or a diagonal, whichever is nearest.
// Used by the highlight tool while the constraint modifier is held.
func SnapAxis(prev, p Point2D) Point2D {
	return SnapAngle45(prev, p)
}
