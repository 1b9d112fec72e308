package svgmesh

import "github.com/gogpu/svgmesh/dom"

// contour is one flattened subpath.
type contour struct {
	pts    []Point
	closed bool
}

// pathContours flattens a command stream into polyline contours at the
// given tolerance. Consecutive duplicate points are dropped; a closed
// contour does not repeat its start point.
func pathContours(d *dom.PathData, tolerance float64) []contour {
	var (
		out []contour
		cur contour
	)
	push := func(p Point) {
		if n := len(cur.pts); n > 0 && cur.pts[n-1] == p {
			return
		}
		cur.pts = append(cur.pts, p)
	}
	flush := func(closed bool) {
		cur.closed = closed
		if closed {
			if n := len(cur.pts); n > 1 && cur.pts[0] == cur.pts[n-1] {
				cur.pts = cur.pts[:n-1]
			}
		}
		if len(cur.pts) > 0 {
			out = append(out, cur)
		}
		cur = contour{}
	}

	pathEvents(d, func(e pathEvent) {
		switch e.Kind {
		case evBegin:
			push(e.To)
		case evLine:
			push(e.To)
		case evCubic:
			flattenCubic(e.From, e.Ctrl1, e.Ctrl2, e.To, tolerance, push)
		case evEnd:
			flush(e.Close)
		}
	})
	return out
}

// triangulateFill appends triangles covering the interior of each
// contour with at least three points. Open contours are filled as if
// closed. Holes spanning multiple subpaths are not bridged; each
// contour fills independently.
func triangulateFill(contours []contour, b *meshBuilder) {
	for _, c := range contours {
		if len(c.pts) < 3 {
			continue
		}
		tris := triangulatePolygon(c.pts)
		if len(tris) == 0 {
			continue
		}
		base := make([]uint32, len(c.pts))
		for i, p := range c.pts {
			base[i] = b.vertex(p)
		}
		for i := 0; i+2 < len(tris); i += 3 {
			b.triangle(base[tris[i]], base[tris[i+1]], base[tris[i+2]])
		}
	}
}

// triangulatePolygon ear-clips a simple polygon and returns triangle
// index triples into pts. When clipping stalls (self-intersecting or
// otherwise degenerate input) the remaining ring is fanned from its
// first vertex so rendering degrades instead of failing.
func triangulatePolygon(pts []Point) []int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	if n == 3 {
		return []int{0, 1, 2}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// Walk the ring in its winding direction so ear tests agree with
	// the polygon orientation.
	ccw := signedArea(pts) > 0

	tris := make([]int, 0, 3*(n-2))
	guard := 0
	for len(idx) > 3 {
		found := false
		for i := 0; i < len(idx); i++ {
			i0 := idx[(i+len(idx)-1)%len(idx)]
			i1 := idx[i]
			i2 := idx[(i+1)%len(idx)]
			if isEar(pts, idx, i0, i1, i2, ccw) {
				tris = append(tris, i0, i1, i2)
				idx = append(idx[:i], idx[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			guard++
			if guard > 1 {
				// Fan out whatever is left.
				for i := 1; i+1 < len(idx); i++ {
					tris = append(tris, idx[0], idx[i], idx[i+1])
				}
				return tris
			}
			// One retry with the opposite orientation covers rings
			// whose area sign was ambiguous (near-zero area).
			ccw = !ccw
		}
	}
	tris = append(tris, idx[0], idx[1], idx[2])
	return tris
}

// isEar reports whether the triangle (i0, i1, i2) is convex in the
// polygon winding and contains no other remaining vertex.
func isEar(pts []Point, idx []int, i0, i1, i2 int, ccw bool) bool {
	a, b, c := pts[i0], pts[i1], pts[i2]
	cross := b.Sub(a).Cross(c.Sub(a))
	if ccw {
		if cross <= 0 {
			return false
		}
	} else if cross >= 0 {
		return false
	}
	for _, j := range idx {
		if j == i0 || j == i1 || j == i2 {
			continue
		}
		if pointInTriangle(pts[j], a, b, c) {
			return false
		}
	}
	return true
}

// pointInTriangle reports whether p lies inside or on the boundary of
// triangle abc.
func pointInTriangle(p, a, b, c Point) bool {
	d1 := p.Sub(a).Cross(b.Sub(a))
	d2 := p.Sub(b).Cross(c.Sub(b))
	d3 := p.Sub(c).Cross(a.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// signedArea returns twice the signed area of the polygon, positive for
// counter-clockwise winding in a y-up frame.
func signedArea(pts []Point) float64 {
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].Cross(pts[j])
	}
	return sum
}
