// Package svgmesh turns SVG icons into triangle meshes ready for GPU
// submission.
//
// An [Icon] wraps a parsed SVG document together with rendering options
// (flattening tolerance, fit mode, color remapping). [Icon.Render]
// tessellates every filled and stroked path into a single [Mesh] of
// colored vertices and triangle indices, scaled and positioned inside a
// destination rectangle:
//
//	icon, err := svgmesh.Load(data)
//	if err != nil { ... }
//	res := icon.Render(svgmesh.Rect{Max: svgmesh.Point{X: 64, Y: 64}})
//	upload(res.Mesh.Vertices, res.Mesh.Indices)
//
// Rendering is deterministic: the same document, options and destination
// always produce the same mesh. Tessellation results are memoized in a
// bounded cache keyed by document content and options, so rendering the
// same icon at the same size every frame costs a lookup and a copy.
//
// Only solid paints are rasterized. Gradients, patterns, embedded images
// and text are out of scope; paths referencing them fall back to opaque
// black so the shape still reads. SVG parsing lives in the dom
// sub-package.
package svgmesh
