package svgmesh

import (
	"math"
	"testing"

	"github.com/gogpu/svgmesh/dom"
)

// triangleArea sums the absolute area of the triangles described by
// index triples into pts.
func triangleArea(pts []Point, tris []int) float64 {
	var sum float64
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := pts[tris[i]], pts[tris[i+1]], pts[tris[i+2]]
		sum += math.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
	}
	return sum
}

func TestTriangulatePolygon(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		area float64
	}{
		{"triangle", []Point{Pt(0, 0), Pt(4, 0), Pt(0, 4)}, 8},
		{"square ccw", []Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)}, 16},
		{"square cw", []Point{Pt(0, 0), Pt(0, 4), Pt(4, 4), Pt(4, 0)}, 16},
		{"concave L", []Point{Pt(0, 0), Pt(4, 0), Pt(4, 2), Pt(2, 2), Pt(2, 4), Pt(0, 4)}, 12},
		{"pentagon", []Point{Pt(2, 0), Pt(4, 1.5), Pt(3.2, 4), Pt(0.8, 4), Pt(0, 1.5)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := triangulatePolygon(tt.pts)
			if len(tris) != 3*(len(tt.pts)-2) {
				t.Fatalf("got %d indices, want %d", len(tris), 3*(len(tt.pts)-2))
			}
			if tt.area > 0 {
				got := triangleArea(tt.pts, tris)
				if math.Abs(got-tt.area) > 1e-9 {
					t.Errorf("triangulated area %v, want %v", got, tt.area)
				}
			}
			// The union of triangle areas must equal the polygon area:
			// no overlaps, no gaps.
			want := math.Abs(signedArea(tt.pts)) / 2
			if got := triangleArea(tt.pts, tris); math.Abs(got-want) > 1e-9 {
				t.Errorf("triangle area %v != polygon area %v", got, want)
			}
		})
	}
}

func TestTriangulatePolygon_TooFewPoints(t *testing.T) {
	if got := triangulatePolygon([]Point{Pt(0, 0), Pt(1, 1)}); got != nil {
		t.Errorf("got %v, want nil for a two-point ring", got)
	}
}

func TestPathContours(t *testing.T) {
	var d dom.PathData
	d.MoveTo(0, 0)
	d.LineTo(4, 0)
	d.LineTo(4, 4)
	d.Close()
	d.MoveTo(10, 10)
	d.LineTo(12, 10)

	cs := pathContours(&d, 0.1)
	if len(cs) != 2 {
		t.Fatalf("got %d contours, want 2", len(cs))
	}
	if !cs[0].closed || len(cs[0].pts) != 3 {
		t.Errorf("first contour closed=%v pts=%d, want closed triangle", cs[0].closed, len(cs[0].pts))
	}
	if cs[1].closed || len(cs[1].pts) != 2 {
		t.Errorf("second contour closed=%v pts=%d, want open segment", cs[1].closed, len(cs[1].pts))
	}
}

func TestPathContours_DropsDuplicatePoints(t *testing.T) {
	var d dom.PathData
	d.MoveTo(0, 0)
	d.LineTo(0, 0)
	d.LineTo(4, 0)
	d.LineTo(4, 0)

	cs := pathContours(&d, 0.1)
	if len(cs) != 1 || len(cs[0].pts) != 2 {
		t.Fatalf("contours = %+v, want one two-point contour", cs)
	}
}

func TestPathContours_CurveRefinesWithTolerance(t *testing.T) {
	build := func() dom.PathData {
		var d dom.PathData
		d.MoveTo(0, 0)
		d.CubicTo(0, 10, 10, 10, 10, 0)
		return d
	}
	coarse := build()
	fine := build()
	nCoarse := len(pathContours(&coarse, 1.0)[0].pts)
	nFine := len(pathContours(&fine, 0.01)[0].pts)
	if nFine <= nCoarse {
		t.Errorf("fine tolerance gave %d points, coarse gave %d", nFine, nCoarse)
	}
}

func TestFlattenCubic_EndsOnEndpoint(t *testing.T) {
	var last Point
	flattenCubic(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0), 0.25, func(p Point) {
		last = p
	})
	if last != Pt(10, 0) {
		t.Errorf("last point %+v, want the curve endpoint", last)
	}
}

func TestFlattenCubic_WithinTolerance(t *testing.T) {
	// Every emitted chord midpoint of a quarter circle approximation
	// must stay near the true arc.
	p0, p1, p2, p3 := Pt(4, 0), Pt(4, 2.2), Pt(2.2, 4), Pt(0, 4)
	const tol = 0.05
	prev := p0
	flattenCubic(p0, p1, p2, p3, tol, func(p Point) {
		mid := midpoint(prev, p)
		if r := mid.Length(); math.Abs(r-4) > 3*tol {
			t.Errorf("chord midpoint %v at radius %v, too far from the arc", mid, r)
		}
		prev = p
	})
}

func TestFlattenCubic_DegenerateControls(t *testing.T) {
	// All points coincident: must terminate and land on the endpoint.
	n := 0
	flattenCubic(Pt(1, 1), Pt(1, 1), Pt(1, 1), Pt(1, 1), 0.1, func(Point) { n++ })
	if n != 1 {
		t.Errorf("emitted %d points, want 1", n)
	}
}
