package svgmesh

// Color is a straight (non-premultiplied) alpha RGBA color with 8 bits
// per channel, matching the vertex color layout GPU painters expect.
type Color struct {
	R, G, B, A uint8
}

// Vertex is one mesh vertex: a 2D position, a texture coordinate
// (always zero, present for painter vertex-layout compatibility) and a
// straight-alpha color.
type Vertex struct {
	X, Y  float32
	U, V  float32
	Color Color
}

// Mesh is a flat triangle list. Indices come in triples, each indexing
// into Vertices. Paths later in document order append later, so painting
// the triangles in index order reproduces document stacking.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// IsEmpty reports whether the mesh contains no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() Mesh {
	out := Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Indices, m.Indices)
	return out
}

// translate shifts every vertex position by (dx, dy).
func (m *Mesh) translate(dx, dy float64) {
	fx, fy := float32(dx), float32(dy)
	for i := range m.Vertices {
		m.Vertices[i].X += fx
		m.Vertices[i].Y += fy
	}
}

// remapColors applies f to every vertex color in place.
func (m *Mesh) remapColors(f func(Color) Color) {
	if f == nil {
		return
	}
	for i := range m.Vertices {
		m.Vertices[i].Color = f(m.Vertices[i].Color)
	}
}

// bounds returns the axis-aligned bounding box of all vertex positions,
// or an empty rect for an empty mesh.
func (m *Mesh) bounds() Rect {
	if len(m.Vertices) == 0 {
		return Rect{}
	}
	r := Rect{
		Min: Point{X: float64(m.Vertices[0].X), Y: float64(m.Vertices[0].Y)},
		Max: Point{X: float64(m.Vertices[0].X), Y: float64(m.Vertices[0].Y)},
	}
	for _, v := range m.Vertices[1:] {
		x, y := float64(v.X), float64(v.Y)
		if x < r.Min.X {
			r.Min.X = x
		}
		if y < r.Min.Y {
			r.Min.Y = y
		}
		if x > r.Max.X {
			r.Max.X = x
		}
		if y > r.Max.Y {
			r.Max.Y = y
		}
	}
	return r
}

// RenderResult is the output of rendering an icon into a frame: the
// triangle mesh, the destination rectangle the mesh was fitted into, and
// the rectangle to use for hit testing. HitRect always equals Dest.
type RenderResult struct {
	Mesh    Mesh
	Dest    Rect
	HitRect Rect
}
