package svgmesh

import (
	"math"

	"github.com/gogpu/svgmesh/dom"
)

// strokeStyle carries resolved stroke parameters in path-local units.
type strokeStyle struct {
	width      float64
	cap        dom.LineCap
	join       dom.LineJoin
	miterLimit float64
}

// triangulateStroke expands each contour into a stroked outline and
// appends its triangles. Segments become quads; junctions get join
// geometry on the outer side (the inner side overlaps, which is
// harmless for solid colors); open ends get caps.
func triangulateStroke(contours []contour, st strokeStyle, tolerance float64, b *meshBuilder) {
	hw := st.width / 2
	if hw <= 0 {
		return
	}
	for _, c := range contours {
		strokeContour(c, st, hw, tolerance, b)
	}
}

func strokeContour(c contour, st strokeStyle, hw, tolerance float64, b *meshBuilder) {
	pts := c.pts
	if c.closed && len(pts) > 1 {
		pts = append(append([]Point{}, pts...), pts[0])
	}
	if len(pts) < 2 {
		return
	}

	// Unit direction per segment; zero-length segments were deduped
	// during flattening.
	dirs := make([]Point, len(pts)-1)
	for i := range dirs {
		dirs[i] = pts[i+1].Sub(pts[i]).Normalize()
	}

	for i := range dirs {
		d := dirs[i]
		n := Pt(-d.Y, d.X).Mul(hw)
		a, e := pts[i], pts[i+1]
		v0 := b.vertex(a.Add(n))
		v1 := b.vertex(e.Add(n))
		v2 := b.vertex(e.Sub(n))
		v3 := b.vertex(a.Sub(n))
		b.triangle(v0, v1, v2)
		b.triangle(v0, v2, v3)
	}

	// Joins between consecutive segments. A closed contour also joins
	// its last segment back to the first.
	last := len(dirs) - 1
	for i := 0; i < last; i++ {
		strokeJoin(pts[i+1], dirs[i], dirs[i+1], st, hw, tolerance, b)
	}
	if c.closed {
		strokeJoin(pts[0], dirs[last], dirs[0], st, hw, tolerance, b)
		return
	}

	// Caps at both open ends.
	strokeCap(pts[0], dirs[0].Mul(-1), st.cap, hw, tolerance, b)
	strokeCap(pts[len(pts)-1], dirs[last], st.cap, hw, tolerance, b)
}

// strokeJoin fills the wedge on the outer side of the turn at p between
// two segments with directions d0 and d1.
func strokeJoin(p, d0, d1 Point, st strokeStyle, hw, tolerance float64, b *meshBuilder) {
	cross := d0.Cross(d1)
	if math.Abs(cross) < 1e-12 {
		// Straight through, or an exact reversal already covered by
		// the overlapping segment quads.
		return
	}

	// Unit outer normals of the two segments at p.
	u0 := Pt(-d0.Y, d0.X)
	u1 := Pt(-d1.Y, d1.X)
	if cross > 0 {
		u0 = u0.Mul(-1)
		u1 = u1.Mul(-1)
	}
	e0 := p.Add(u0.Mul(hw))
	e1 := p.Add(u1.Mul(hw))

	switch st.join {
	case dom.JoinRound:
		sweep := normalizeAngle(math.Atan2(u1.Y, u1.X) - math.Atan2(u0.Y, u0.X))
		arcFan(b, p, math.Atan2(u0.Y, u0.X), sweep, hw, tolerance)

	case dom.JoinMiter:
		denom := 1 + u0.Dot(u1)
		if denom > 1e-9 {
			// The miter length ratio is 1/sin(half the angle between
			// the segments); past the limit the join becomes a bevel.
			ratio := math.Sqrt(2 / denom)
			if ratio <= st.miterLimit {
				m := p.Add(u0.Add(u1).Mul(hw / denom))
				vp := b.vertex(p)
				vm := b.vertex(m)
				b.triangle(vp, b.vertex(e0), vm)
				b.triangle(vp, vm, b.vertex(e1))
				return
			}
		}
		fallthrough

	default: // bevel
		b.triangle(b.vertex(p), b.vertex(e0), b.vertex(e1))
	}
}

// strokeCap closes an open stroke end at p with outward direction d.
func strokeCap(p, d Point, lineCap dom.LineCap, hw, tolerance float64, b *meshBuilder) {
	n := Pt(-d.Y, d.X).Mul(hw)
	switch lineCap {
	case dom.CapSquare:
		ext := d.Mul(hw)
		v0 := b.vertex(p.Add(n))
		v1 := b.vertex(p.Add(n).Add(ext))
		v2 := b.vertex(p.Sub(n).Add(ext))
		v3 := b.vertex(p.Sub(n))
		b.triangle(v0, v1, v2)
		b.triangle(v0, v2, v3)

	case dom.CapRound:
		// Semicircle from +n to -n sweeping through d.
		arcFan(b, p, math.Atan2(n.Y, n.X), -math.Pi, hw, tolerance)
	}
	// Butt caps add nothing.
}

// arcFan appends a triangle fan around center covering the arc of
// radius r from angle theta0 through the signed sweep, with the step
// chosen so the chord error stays within tolerance.
func arcFan(b *meshBuilder, center Point, theta0, sweep, r, tolerance float64) {
	if sweep == 0 || r <= 0 {
		return
	}
	maxStep := math.Pi / 2
	if tolerance < r {
		maxStep = 2 * math.Acos(1-tolerance/r)
	}
	if maxStep < 1e-3 {
		maxStep = 1e-3
	}
	steps := int(math.Ceil(math.Abs(sweep) / maxStep))
	if steps < 1 {
		steps = 1
	}
	delta := sweep / float64(steps)

	vc := b.vertex(center)
	prev := b.vertex(center.Add(Pt(math.Cos(theta0), math.Sin(theta0)).Mul(r)))
	for i := 1; i <= steps; i++ {
		theta := theta0 + delta*float64(i)
		next := b.vertex(center.Add(Pt(math.Cos(theta), math.Sin(theta)).Mul(r)))
		b.triangle(vc, prev, next)
		prev = next
	}
}

// normalizeAngle wraps a to (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
