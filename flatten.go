package svgmesh

import "math"

// maxFlattenDepth bounds curve subdivision so pathological control
// points cannot recurse unboundedly. 2^16 segments per curve is far
// beyond any useful tolerance.
const maxFlattenDepth = 16

// flattenCubic approximates a cubic bezier with line segments within the
// given flatness tolerance, emitting every point after p0 in order and
// ending exactly on p3. Uses adaptive de Casteljau subdivision: a curve
// whose control points sit within tolerance of the chord is replaced by
// the chord.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, emit func(Point)) {
	flattenCubicRec(p0, p1, p2, p3, tolerance, 0, emit)
}

func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, emit func(Point)) {
	if depth >= maxFlattenDepth || cubicIsFlat(p0, p1, p2, p3, tolerance) {
		emit(p3)
		return
	}

	q0 := midpoint(p0, p1)
	q1 := midpoint(p1, p2)
	q2 := midpoint(p2, p3)
	r0 := midpoint(q0, q1)
	r1 := midpoint(q1, q2)
	s := midpoint(r0, r1)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, emit)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, emit)
}

// cubicIsFlat reports whether both control points lie within tolerance
// of the chord p0-p3.
func cubicIsFlat(p0, p1, p2, p3 Point, tolerance float64) bool {
	d1 := pointLineDistance(p1, p0, p3)
	d2 := pointLineDistance(p2, p0, p3)
	if d2 > d1 {
		d1 = d2
	}
	return d1 <= tolerance
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// pointLineDistance returns the perpendicular distance from p to the
// line through a and b, or the distance to a when a == b.
func pointLineDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq < 1e-12 {
		return p.Sub(a).Length()
	}
	// |cross| / |d| is the height of p over the chord.
	cross := d.Cross(p.Sub(a))
	if cross < 0 {
		cross = -cross
	}
	return cross / math.Sqrt(lenSq)
}
