package dom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Parse errors surfaced to callers. All other anomalies (unknown elements,
// unsupported paint servers) degrade silently.
var (
	// ErrInvalidDocument is returned when the input contains no svg element.
	ErrInvalidDocument = errors.New("dom: not an svg document")

	// ErrNoViewBox is returned when the document declares neither a viewBox
	// nor usable width/height attributes.
	ErrNoViewBox = errors.New("dom: document has no view box")
)

// Parse parses an SVG document from an in-memory byte buffer.
// The returned tree is immutable; callers must not modify it.
func Parse(data []byte) (*Document, error) {
	c := &cursor{
		doc: &Document{
			Root:  &Group{Transform: Identity()},
			Token: tokenFor(data),
		},
	}
	c.styles = []style{defaultStyle()}
	c.groups = []*Group{c.doc.Root}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("dom: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := c.startElement(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			c.endElement(t)
		}
	}

	if !c.seenSVG {
		return nil, ErrInvalidDocument
	}
	if c.doc.ViewBox.Width <= 0 || c.doc.ViewBox.Height <= 0 {
		return nil, ErrNoViewBox
	}
	return c.doc, nil
}

// style is the inherited presentation state carried down the element stack.
type style struct {
	fill   paintSpec
	stroke paintSpec

	fillOpacity   float64
	strokeOpacity float64
	opacity       float64 // cumulative element opacity

	strokeWidth float64
	cap         LineCap
	join        LineJoin
	miterLimit  float64
}

// paintSpec is a parsed paint value before it is bound to a path.
type paintSpec struct {
	none        bool
	unsupported bool
	color       color.NRGBA
}

func defaultStyle() style {
	return style{
		fill:          paintSpec{color: color.NRGBA{A: 0xff}}, // black
		stroke:        paintSpec{none: true},
		fillOpacity:   1,
		strokeOpacity: 1,
		opacity:       1,
		strokeWidth:   1,
		cap:           CapButt,
		join:          JoinMiter,
		miterLimit:    4,
	}
}

// cursor tracks parser state while walking the XML token stream.
type cursor struct {
	doc     *Document
	styles  []style
	groups  []*Group
	seenSVG bool

	defsDepth int // >0 while inside defs; nodes there are not emitted
	textDepth int // >0 while inside text; children are swallowed
}

func (c *cursor) top() *style {
	return &c.styles[len(c.styles)-1]
}

func (c *cursor) group() *Group {
	return c.groups[len(c.groups)-1]
}

func (c *cursor) startElement(se xml.StartElement) error {
	cur := *c.top()
	local, err := readStyleAttrs(&cur, se.Attr)
	if err != nil {
		return err
	}
	c.styles = append(c.styles, cur)

	if c.defsDepth > 0 || c.textDepth > 0 {
		switch se.Name.Local {
		case "defs":
			c.defsDepth++
		case "text":
			c.textDepth++
		}
		return nil
	}

	switch se.Name.Local {
	case "svg":
		if c.seenSVG {
			// Nested svg elements never redefine the view box.
			return nil
		}
		c.seenSVG = true
		return c.readSVGAttrs(se.Attr)

	case "g":
		g := &Group{Transform: local}
		c.group().Children = append(c.group().Children, g)
		c.groups = append(c.groups, g)
		return nil

	case "defs":
		c.defsDepth++
		return nil

	case "image":
		c.group().Children = append(c.group().Children, &Image{})
		return nil

	case "text":
		c.group().Children = append(c.group().Children, &Text{})
		c.textDepth++
		return nil
	}

	data, err := shapeData(se.Name.Local, se.Attr)
	if err != nil {
		return err
	}
	if data == nil || data.IsEmpty() {
		// Unknown or empty element: skip, never fail.
		return nil
	}
	c.group().Children = append(c.group().Children, c.makePath(local, &cur, *data))
	return nil
}

func (c *cursor) endElement(ee xml.EndElement) {
	if len(c.styles) > 1 {
		c.styles = c.styles[:len(c.styles)-1]
	}
	switch ee.Name.Local {
	case "g":
		if c.defsDepth == 0 && c.textDepth == 0 && len(c.groups) > 1 {
			c.groups = c.groups[:len(c.groups)-1]
		}
	case "defs":
		if c.defsDepth > 0 {
			c.defsDepth--
		}
	case "text":
		if c.textDepth > 0 {
			c.textDepth--
		}
	}
}

// makePath binds the current style to a command stream.
func (c *cursor) makePath(local Transform, st *style, data PathData) *Path {
	p := &Path{
		Transform: local,
		Opacity:   st.opacity,
		Data:      data,
	}
	if !st.fill.none {
		p.Fill = &Paint{
			Kind:    paintKind(st.fill),
			Color:   st.fill.color,
			Opacity: st.fillOpacity,
		}
	}
	if !st.stroke.none && st.strokeWidth > 0 {
		p.Stroke = &Stroke{
			Paint: Paint{
				Kind:    paintKind(st.stroke),
				Color:   st.stroke.color,
				Opacity: st.strokeOpacity,
			},
			Width:      st.strokeWidth,
			Cap:        st.cap,
			Join:       st.join,
			MiterLimit: st.miterLimit,
		}
	}
	return p
}

func paintKind(ps paintSpec) PaintKind {
	if ps.unsupported {
		return PaintUnsupported
	}
	return PaintSolid
}

func (c *cursor) readSVGAttrs(attrs []xml.Attr) error {
	var width, height float64
	for _, a := range attrs {
		switch a.Name.Local {
		case "viewBox":
			vals, err := readFloats(a.Value)
			if err != nil {
				return fmt.Errorf("dom: bad viewBox: %w", err)
			}
			if len(vals) != 4 {
				return fmt.Errorf("dom: viewBox needs 4 values, got %d", len(vals))
			}
			c.doc.ViewBox = ViewBox{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}
		case "width":
			width, _ = parseLength(a.Value)
		case "height":
			height, _ = parseLength(a.Value)
		}
	}
	if c.doc.ViewBox.Width == 0 {
		c.doc.ViewBox.Width = width
	}
	if c.doc.ViewBox.Height == 0 {
		c.doc.ViewBox.Height = height
	}
	return nil
}

// readStyleAttrs folds presentation attributes (and the style attribute)
// into st and returns the element's local transform.
func readStyleAttrs(st *style, attrs []xml.Attr) (Transform, error) {
	local := Identity()
	var pairs []string
	for _, a := range attrs {
		if a.Name.Local == "style" {
			pairs = append(pairs, strings.Split(a.Value, ";")...)
		} else {
			pairs = append(pairs, a.Name.Local+":"+a.Value)
		}
	}
	for _, pair := range pairs {
		k, v, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k == "transform" {
			m, err := parseTransform(v)
			if err != nil {
				return local, err
			}
			local = local.Mul(m)
			continue
		}
		if err := readStyleAttr(st, k, v); err != nil {
			return local, err
		}
	}
	return local, nil
}

func readStyleAttr(st *style, k, v string) error {
	switch k {
	case "fill":
		ps, err := readPaint(v)
		if err != nil {
			return err
		}
		st.fill = ps
	case "stroke":
		ps, err := readPaint(v)
		if err != nil {
			return err
		}
		st.stroke = ps
	case "stroke-width":
		w, err := parseLength(v)
		if err != nil {
			return fmt.Errorf("dom: bad stroke-width: %w", err)
		}
		st.strokeWidth = w
	case "stroke-linecap":
		switch v {
		case "butt":
			st.cap = CapButt
		case "round":
			st.cap = CapRound
		case "square":
			st.cap = CapSquare
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			st.join = JoinMiter
		case "round":
			st.join = JoinRound
		case "bevel":
			st.join = JoinBevel
		}
	case "stroke-miterlimit":
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("dom: bad stroke-miterlimit: %w", err)
		}
		st.miterLimit = m
	case "opacity", "fill-opacity", "stroke-opacity":
		op, err := parseOpacity(v)
		if err != nil {
			return err
		}
		switch k {
		case "opacity":
			// Group opacity composes down the tree; the paint
			// opacities are inherited properties that replace.
			st.opacity *= op
		case "fill-opacity":
			st.fillOpacity = op
		case "stroke-opacity":
			st.strokeOpacity = op
		}
	}
	return nil
}

func readPaint(v string) (paintSpec, error) {
	col, none, ok, err := parseColor(v)
	if err != nil {
		// Unknown color keywords degrade to the fallback paint rather
		// than failing the whole document.
		return paintSpec{unsupported: true, color: color.NRGBA{A: 0xff}}, nil
	}
	if none {
		return paintSpec{none: true}, nil
	}
	if !ok {
		return paintSpec{unsupported: true, color: color.NRGBA{A: 0xff}}, nil
	}
	return paintSpec{color: col}, nil
}

func parseOpacity(v string) (float64, error) {
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("dom: bad opacity %q: %w", v, err)
	}
	f /= d
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f, nil
}

// parseLength parses a numeric attribute value, tolerating a px suffix.
// Other units are not supported and parse as bare numbers where possible.
func parseLength(v string) (float64, error) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	return strconv.ParseFloat(v, 64)
}

func readFloats(v string) ([]float64, error) {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

// parseTransform parses an SVG transform list such as
// "translate(10 20) rotate(45)" into a single composed transform.
func parseTransform(v string) (Transform, error) {
	m := Identity()
	for _, part := range strings.Split(v, ")") {
		// Functions in a list may be separated by a comma.
		part = strings.Trim(part, ", \t\n\r")
		if part == "" {
			continue
		}
		name, args, found := strings.Cut(part, "(")
		if !found {
			return m, fmt.Errorf("dom: malformed transform %q", v)
		}
		vals, err := readFloats(args)
		if err != nil {
			return m, fmt.Errorf("dom: malformed transform %q: %w", v, err)
		}
		op, err := transformOp(strings.ToLower(strings.TrimSpace(name)), vals)
		if err != nil {
			return m, err
		}
		m = m.Mul(op)
	}
	return m, nil
}

func transformOp(name string, vals []float64) (Transform, error) {
	switch name {
	case "matrix":
		if len(vals) == 6 {
			// SVG matrix(a b c d e f) is column-major.
			return Transform{A: vals[0], B: vals[2], C: vals[4], D: vals[1], E: vals[3], F: vals[5]}, nil
		}
	case "translate":
		if len(vals) == 1 {
			return Translation(vals[0], 0), nil
		}
		if len(vals) == 2 {
			return Translation(vals[0], vals[1]), nil
		}
	case "scale":
		if len(vals) == 1 {
			return Scaling(vals[0], vals[0]), nil
		}
		if len(vals) == 2 {
			return Scaling(vals[0], vals[1]), nil
		}
	case "rotate":
		if len(vals) == 1 {
			return Rotation(vals[0] * math.Pi / 180), nil
		}
		if len(vals) == 3 {
			return Translation(vals[1], vals[2]).
				Mul(Rotation(vals[0] * math.Pi / 180)).
				Mul(Translation(-vals[1], -vals[2])), nil
		}
	case "skewx":
		if len(vals) == 1 {
			return Transform{A: 1, B: math.Tan(vals[0] * math.Pi / 180), D: 0, E: 1}, nil
		}
	case "skewy":
		if len(vals) == 1 {
			return Transform{A: 1, B: 0, D: math.Tan(vals[0] * math.Pi / 180), E: 1}, nil
		}
	}
	return Transform{}, fmt.Errorf("dom: bad transform %s with %d args", name, len(vals))
}

// shapeData lowers a drawable element to a command stream.
// It returns nil for elements that produce no geometry.
func shapeData(name string, attrs []xml.Attr) (*PathData, error) {
	attr := func(key string) (string, bool) {
		for _, a := range attrs {
			if a.Name.Local == key {
				return a.Value, true
			}
		}
		return "", false
	}
	num := func(key string) (float64, error) {
		v, found := attr(key)
		if !found {
			return 0, nil
		}
		return parseLength(v)
	}

	var p PathData
	switch name {
	case "path":
		d, found := attr("d")
		if !found {
			return nil, nil
		}
		parsed, err := parsePathData(d)
		if err != nil {
			return nil, err
		}
		return &parsed, nil

	case "rect":
		x, err := num("x")
		if err != nil {
			return nil, err
		}
		y, err := num("y")
		if err != nil {
			return nil, err
		}
		w, err := num("width")
		if err != nil {
			return nil, err
		}
		h, err := num("height")
		if err != nil {
			return nil, err
		}
		rx, err := num("rx")
		if err != nil {
			return nil, err
		}
		ry, err := num("ry")
		if err != nil {
			return nil, err
		}
		if w <= 0 || h <= 0 {
			return nil, nil
		}
		p.Rect(x, y, w, h, rx, ry)
		return &p, nil

	case "circle", "ellipse":
		cx, err := num("cx")
		if err != nil {
			return nil, err
		}
		cy, err := num("cy")
		if err != nil {
			return nil, err
		}
		rx, err := num("r")
		if err != nil {
			return nil, err
		}
		ry := rx
		if name == "ellipse" {
			if rx, err = num("rx"); err != nil {
				return nil, err
			}
			if ry, err = num("ry"); err != nil {
				return nil, err
			}
		}
		if rx <= 0 || ry <= 0 {
			return nil, nil
		}
		p.Ellipse(cx, cy, rx, ry)
		return &p, nil

	case "line":
		x1, err := num("x1")
		if err != nil {
			return nil, err
		}
		y1, err := num("y1")
		if err != nil {
			return nil, err
		}
		x2, err := num("x2")
		if err != nil {
			return nil, err
		}
		y2, err := num("y2")
		if err != nil {
			return nil, err
		}
		p.MoveTo(x1, y1)
		p.LineTo(x2, y2)
		return &p, nil

	case "polyline", "polygon":
		v, found := attr("points")
		if !found {
			return nil, nil
		}
		pts, err := readFloats(v)
		if err != nil {
			return nil, fmt.Errorf("dom: bad points: %w", err)
		}
		if len(pts) < 4 || len(pts)%2 != 0 {
			return nil, nil
		}
		p.MoveTo(pts[0], pts[1])
		for i := 2; i < len(pts); i += 2 {
			p.LineTo(pts[i], pts[i+1])
		}
		if name == "polygon" {
			p.Close()
		}
		return &p, nil
	}
	return nil, nil
}
