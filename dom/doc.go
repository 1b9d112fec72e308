// Package dom provides the document model consumed by svgmesh: an immutable
// tree of group and path nodes parsed from an SVG byte buffer.
//
// The parser supports the subset of SVG needed for icon rendering:
// viewBox, nested groups with transforms, path data (all command letters,
// with quadratic and arc segments lowered to cubics), the basic shapes
// (rect, circle, ellipse, line, polyline, polygon), solid fill and stroke
// paints, and opacity. Gradients and patterns are recorded as unsupported
// paints; image and text elements become placeholder nodes that renderers
// skip. Unknown elements are ignored rather than rejected.
//
// Documents loaded through Load are cached by content hash, so byte-identical
// buffers share one parsed tree.
package dom
