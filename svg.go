package svgmesh

import (
	"github.com/gogpu/svgmesh/dom"
)

// Icon binds a parsed SVG document to rendering options. Icons are
// immutable values: every With method returns a modified copy, so an
// Icon can be built per frame or shared freely across goroutines.
//
// The zero tolerance of a newly built Icon is 1.0 in render units, with
// scale-corrected tolerance enabled and a FitContain(0) fit policy.
type Icon struct {
	doc            *dom.Document
	tolerance      float64
	scaleTolerance bool
	fit            FitMode
	remap          func(Color) Color
}

// New wraps an already parsed document.
func New(doc *dom.Document) Icon {
	return Icon{
		doc:            doc,
		tolerance:      1.0,
		scaleTolerance: true,
		fit:            FitContain(0),
	}
}

// Load parses an SVG byte buffer and wraps it in an Icon. Parsing is
// memoized by content, so loading the same bytes repeatedly reuses one
// document tree.
func Load(data []byte) (Icon, error) {
	doc, err := dom.Load(data)
	if err != nil {
		return Icon{}, err
	}
	return New(doc), nil
}

// Document returns the underlying document tree.
func (ic Icon) Document() *dom.Document {
	return ic.doc
}

// WithTolerance sets the flattening tolerance (maximum deviation of the
// triangulated outline from the true curve, in render units). Values
// not greater than zero are ignored.
func (ic Icon) WithTolerance(t float64) Icon {
	if t > 0 {
		ic.tolerance = t
	}
	return ic
}

// WithScaleTolerance controls whether tolerance is divided by the
// render scale, keeping visual error constant under magnification.
func (ic Icon) WithScaleTolerance(enabled bool) Icon {
	ic.scaleTolerance = enabled
	return ic
}

// WithFitMode sets how the icon is sized and positioned in the frame.
func (ic Icon) WithFitMode(m FitMode) Icon {
	ic.fit = m
	return ic
}

// WithColor tints the whole icon: every vertex keeps its resolved alpha
// but takes the given color's channels, scaled by the tint's own alpha.
// Shorthand for a WithColorRemap that recolors monochrome icons.
func (ic Icon) WithColor(c Color) Icon {
	return ic.WithColorRemap(func(src Color) Color {
		return Color{
			R: c.R,
			G: c.G,
			B: c.B,
			A: uint8((uint16(src.A)*uint16(c.A) + 127) / 255),
		}
	})
}

// WithColorRemap installs a per-vertex color transformation, applied
// after tessellation. Remapping is excluded from mesh cache keys, so
// recoloring a cached icon never retriangulates it.
func (ic Icon) WithColorRemap(f func(Color) Color) Icon {
	ic.remap = f
	return ic
}

// Render tessellates the icon into frame without caching. The returned
// mesh is owned by the caller.
func (ic Icon) Render(frame Rect) RenderResult {
	if ic.doc == nil {
		return RenderResult{Dest: frame, HitRect: frame}
	}
	w, h, dest := ic.fit.resolveFit(ic.doc.ViewBox.Width, ic.doc.ViewBox.Height, frame)
	mesh := tessellate(ic.doc, ic.tolerance, ic.scaleTolerance, w, h)
	mesh.translate(dest.Min.X, dest.Min.Y)
	mesh.remapColors(ic.remap)
	return RenderResult{Mesh: mesh, Dest: dest, HitRect: dest}
}

// RenderCached renders via the package-wide mesh cache. Equivalent to
// RenderWithCache with the default cache.
func (ic Icon) RenderCached(frame Rect) RenderResult {
	return ic.RenderWithCache(defaultMeshCache, frame)
}

// RenderWithCache renders the icon, memoizing tessellation in mc.
// The cache key covers document content, tolerance, fit policy and
// final render size; the color remap is reapplied to a fresh copy on
// every retrieval. The returned mesh is owned by the caller.
func (ic Icon) RenderWithCache(mc *MeshCache, frame Rect) RenderResult {
	if ic.doc == nil {
		return RenderResult{Dest: frame, HitRect: frame}
	}
	if mc == nil {
		mc = defaultMeshCache
	}
	w, h, dest := ic.fit.resolveFit(ic.doc.ViewBox.Width, ic.doc.ViewBox.Height, frame)
	key := makeMeshKey(ic.doc.Token, ic.tolerance, ic.scaleTolerance, ic.fit, w, h)
	cached := mc.get(key, func() Mesh {
		return tessellate(ic.doc, ic.tolerance, ic.scaleTolerance, w, h)
	})
	mesh := cached.Clone()
	mesh.translate(dest.Min.X, dest.Min.Y)
	mesh.remapColors(ic.remap)
	return RenderResult{Mesh: mesh, Dest: dest, HitRect: dest}
}
