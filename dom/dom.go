package dom

import "image/color"

// ViewBox is the document's intrinsic coordinate rectangle.
// All geometry in the tree is expressed in this coordinate frame.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// Document is an immutable parsed vector document.
// Token identifies the document content; byte-identical inputs loaded
// through Load produce the same token and share one tree.
type Document struct {
	ViewBox ViewBox
	Root    *Group
	Token   uint64
}

// Node is a node in the document tree.
type Node interface {
	isNode()
}

// Group is a container node with a local transform.
type Group struct {
	Transform Transform
	Children  []Node
}

// Path is a drawable node: a command stream with optional fill and stroke.
type Path struct {
	Transform Transform
	Fill      *Paint
	Stroke    *Stroke
	Opacity   float64
	Data      PathData
}

// Image is a placeholder for a raster image element. It carries no pixel
// data; renderers skip it.
type Image struct{}

// Text is a placeholder for a text element. Renderers skip it.
type Text struct{}

func (*Group) isNode() {}
func (*Path) isNode()  {}
func (*Image) isNode() {}
func (*Text) isNode()  {}

// PaintKind discriminates paint server types.
type PaintKind uint8

const (
	// PaintSolid is a plain color.
	PaintSolid PaintKind = iota
	// PaintUnsupported marks gradient and pattern references.
	// Renderers substitute a fallback color.
	PaintUnsupported
)

// Paint describes how a region is colored.
// Opacity is the fill-opacity or stroke-opacity from the source document,
// separate from the owning path's opacity.
type Paint struct {
	Kind    PaintKind
	Color   color.NRGBA
	Opacity float64
}

// LineCap is the shape of stroke endpoints.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape of stroke segment joins.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Stroke describes the outline style of a path.
type Stroke struct {
	Paint      Paint
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}
