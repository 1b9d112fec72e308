package svgmesh

import (
	"image/color"
	"math"

	"github.com/gogpu/svgmesh/dom"
)

// meshBuilder accumulates triangles for one path, mapping every
// path-local point to its final mesh position as it is added.
type meshBuilder struct {
	mesh  *Mesh
	xform func(Point) Point
	color Color
}

func (b *meshBuilder) vertex(p Point) uint32 {
	q := b.xform(p)
	idx := uint32(len(b.mesh.Vertices))
	b.mesh.Vertices = append(b.mesh.Vertices, Vertex{
		X:     float32(q.X),
		Y:     float32(q.Y),
		Color: b.color,
	})
	return idx
}

func (b *meshBuilder) triangle(i0, i1, i2 uint32) {
	b.mesh.Indices = append(b.mesh.Indices, i0, i1, i2)
}

// tessellator walks a document tree and accumulates one mesh with the
// destination rectangle's origin at (0, 0). Callers translate the
// result into place afterwards, which keeps cached meshes reusable at
// any position.
type tessellator struct {
	mesh      Mesh
	viewBox   dom.ViewBox
	scaleX    float64 // render width / intrinsic width
	scaleY    float64
	tolerance float64 // effective flattening tolerance, path-local
}

// tessellate renders doc into a fresh mesh for the given render size.
func tessellate(doc *dom.Document, tolerance float64, scaleTolerance bool, renderW, renderH float64) Mesh {
	vb := doc.ViewBox
	if vb.Width <= 0 || vb.Height <= 0 {
		return Mesh{}
	}
	ts := &tessellator{
		viewBox: vb,
		scaleX:  renderW / vb.Width,
		scaleY:  renderH / vb.Height,
	}
	ts.tolerance = tolerance
	if scaleTolerance {
		// Keep the visual error constant under magnification.
		if s := math.Max(ts.scaleX, ts.scaleY); s > 0 {
			ts.tolerance = tolerance / s
		}
	}

	ts.walk(doc.Root, dom.Identity())
	Logger().Debug("svgmesh: tessellated document",
		"token", doc.Token,
		"vertices", len(ts.mesh.Vertices),
		"triangles", len(ts.mesh.Indices)/3)
	return ts.mesh
}

// walk descends the tree depth-first, composing the inherited transform
// with each node's local transform. Later paths append later, so they
// paint over earlier ones.
func (ts *tessellator) walk(n dom.Node, parent dom.Transform) {
	switch v := n.(type) {
	case *dom.Group:
		t := parent.Mul(v.Transform)
		for _, child := range v.Children {
			ts.walk(child, t)
		}

	case *dom.Path:
		ts.addPath(v, parent.Mul(v.Transform))

	case *dom.Image, *dom.Text:
		// Not rendered.
	}
}

func (ts *tessellator) addPath(p *dom.Path, t dom.Transform) {
	if p.Data.IsEmpty() || (p.Fill == nil && p.Stroke == nil) {
		return
	}

	contours := pathContours(&p.Data, ts.tolerance)
	if len(contours) == 0 {
		Logger().Warn("svgmesh: skipping degenerate path")
		return
	}

	xform := func(local Point) Point {
		x, y := t.Apply(local.X, local.Y)
		return Point{
			X: (x - ts.viewBox.MinX) * ts.scaleX,
			Y: (y - ts.viewBox.MinY) * ts.scaleY,
		}
	}

	if p.Fill != nil {
		b := &meshBuilder{
			mesh:  &ts.mesh,
			xform: xform,
			color: resolvePaint(p.Fill, p.Opacity),
		}
		triangulateFill(contours, b)
	}
	if p.Stroke != nil {
		b := &meshBuilder{
			mesh:  &ts.mesh,
			xform: xform,
			color: resolvePaint(&p.Stroke.Paint, p.Opacity),
		}
		st := strokeStyle{
			width:      p.Stroke.Width,
			cap:        p.Stroke.Cap,
			join:       p.Stroke.Join,
			miterLimit: p.Stroke.MiterLimit,
		}
		triangulateStroke(contours, st, ts.tolerance, b)
	}
}

// resolvePaint maps a document paint plus the path opacity to a flat
// vertex color with straight alpha. Unsupported paint servers fall back
// to opaque black so the shape still reads.
func resolvePaint(p *dom.Paint, pathOpacity float64) Color {
	src := p.Color
	if p.Kind != dom.PaintSolid {
		Logger().Warn("svgmesh: unsupported paint server, using fallback color")
		src = color.NRGBA{A: 0xff}
	}
	alpha := float64(src.A) * clamp01(p.Opacity) * clamp01(pathOpacity)
	return Color{
		R: src.R,
		G: src.G,
		B: src.B,
		A: uint8(alpha + 0.5),
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
