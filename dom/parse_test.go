package dom

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func firstPath(t *testing.T, n Node) *Path {
	t.Helper()
	switch v := n.(type) {
	case *Path:
		return v
	case *Group:
		for _, c := range v.Children {
			if p := firstPath(t, c); p != nil {
				return p
			}
		}
	}
	return nil
}

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParse_ViewBox(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="1 2 30 40"></svg>`)
	want := ViewBox{MinX: 1, MinY: 2, Width: 30, Height: 40}
	if doc.ViewBox != want {
		t.Errorf("got %+v, want %+v", doc.ViewBox, want)
	}
}

func TestParse_NestedSVGKeepsViewBox(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10"><svg viewBox="0 0 99 99"><path d="M0 0 L1 1"/></svg></svg>`)
	want := ViewBox{Width: 10, Height: 10}
	if doc.ViewBox != want {
		t.Errorf("got %+v, want %+v", doc.ViewBox, want)
	}
	if firstPath(t, doc.Root) == nil {
		t.Error("nested svg content was dropped")
	}
}

func TestParse_WidthHeightFallback(t *testing.T) {
	doc := mustParse(t, `<svg width="24px" height="16"></svg>`)
	want := ViewBox{Width: 24, Height: 16}
	if doc.ViewBox != want {
		t.Errorf("got %+v, want %+v", doc.ViewBox, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no viewbox", `<svg></svg>`, ErrNoViewBox},
		{"not svg", `<html></html>`, ErrInvalidDocument},
		{"zero viewbox", `<svg viewBox="0 0 0 0"></svg>`, ErrNoViewBox},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_MalformedXML(t *testing.T) {
	if _, err := Parse([]byte(`<svg viewBox="0 0 1 1"><path`)); err == nil {
		t.Fatal("expected error for malformed xml")
	}
}

func TestParse_PathStyles(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10">
		<path d="M0 0 L10 10" fill="#ff0000" stroke="blue" stroke-width="2"
			stroke-linecap="round" stroke-linejoin="bevel" stroke-miterlimit="8"
			fill-opacity="0.5" stroke-opacity="0.25" opacity="0.5"/>
	</svg>`)
	p := firstPath(t, doc.Root)
	if p == nil {
		t.Fatal("no path parsed")
	}
	if p.Fill == nil || p.Fill.Color != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Errorf("fill = %+v, want red", p.Fill)
	}
	if p.Fill.Opacity != 0.5 {
		t.Errorf("fill opacity = %v, want 0.5", p.Fill.Opacity)
	}
	if p.Stroke == nil {
		t.Fatal("stroke not parsed")
	}
	if p.Stroke.Paint.Color != (color.NRGBA{B: 0xff, A: 0xff}) {
		t.Errorf("stroke color = %+v, want blue", p.Stroke.Paint.Color)
	}
	if p.Stroke.Width != 2 || p.Stroke.Cap != CapRound || p.Stroke.Join != JoinBevel || p.Stroke.MiterLimit != 8 {
		t.Errorf("stroke geometry = %+v", p.Stroke)
	}
	if p.Stroke.Paint.Opacity != 0.25 {
		t.Errorf("stroke opacity = %v, want 0.25", p.Stroke.Paint.Opacity)
	}
	if p.Opacity != 0.5 {
		t.Errorf("path opacity = %v, want 0.5", p.Opacity)
	}
}

func TestParse_StyleAttribute(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10">
		<path d="M0 0 L1 1" style="fill: rgb(0, 128, 0); stroke: none"/>
	</svg>`)
	p := firstPath(t, doc.Root)
	if p.Fill == nil || p.Fill.Color != (color.NRGBA{G: 128, A: 0xff}) {
		t.Errorf("fill = %+v, want rgb(0,128,0)", p.Fill)
	}
	if p.Stroke != nil {
		t.Errorf("stroke = %+v, want nil", p.Stroke)
	}
}

func TestParse_InheritedStyle(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10">
		<g fill="green" opacity="0.5">
			<g opacity="0.5">
				<path d="M0 0 L1 1"/>
			</g>
		</g>
	</svg>`)
	p := firstPath(t, doc.Root)
	if p == nil {
		t.Fatal("no path parsed")
	}
	if p.Fill == nil || p.Fill.Color != (color.NRGBA{G: 0x80, A: 0xff}) {
		t.Errorf("fill = %+v, want inherited green", p.Fill)
	}
	// Group opacities multiply down the tree.
	if math.Abs(p.Opacity-0.25) > 1e-12 {
		t.Errorf("opacity = %v, want 0.25", p.Opacity)
	}
}

func TestParse_FillNone(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10"><path d="M0 0 L1 1" fill="none"/></svg>`)
	p := firstPath(t, doc.Root)
	if p.Fill != nil {
		t.Errorf("fill = %+v, want nil", p.Fill)
	}
}

func TestParse_UnsupportedPaint(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10">
		<path d="M0 0 L1 1" fill="url(#grad)"/>
	</svg>`)
	p := firstPath(t, doc.Root)
	if p.Fill == nil || p.Fill.Kind != PaintUnsupported {
		t.Fatalf("fill = %+v, want unsupported paint", p.Fill)
	}
	if p.Fill.Color != (color.NRGBA{A: 0xff}) {
		t.Errorf("fallback color = %+v, want opaque black", p.Fill.Color)
	}
}

func TestParse_GroupTransforms(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10">
		<g transform="translate(5 5)">
			<path d="M0 0 L1 1" transform="scale(2)"/>
		</g>
	</svg>`)
	g, ok := doc.Root.Children[0].(*Group)
	if !ok {
		t.Fatalf("child is %T, want *Group", doc.Root.Children[0])
	}
	if x, y := g.Transform.Apply(0, 0); x != 5 || y != 5 {
		t.Errorf("group maps origin to (%v, %v), want (5, 5)", x, y)
	}
	p := firstPath(t, g)
	if x, y := p.Transform.Apply(3, 4); x != 6 || y != 8 {
		t.Errorf("path maps (3,4) to (%v, %v), want (6, 8)", x, y)
	}
}

func TestParse_TransformList(t *testing.T) {
	// Functions may be separated by whitespace, a comma, or both.
	tests := []struct {
		name string
		v    string
	}{
		{"space", "translate(10 0) rotate(90)"},
		{"comma", "translate(10 0),rotate(90)"},
		{"comma and space", "translate(10 0) , rotate(90)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := parseTransform(tt.v)
			if err != nil {
				t.Fatal(err)
			}
			// translate then rotate in local space: (1, 0) -> rotate -> (0, 1) -> translate -> (10, 1)
			x, y := m.Apply(1, 0)
			if math.Abs(x-10) > 1e-9 || math.Abs(y-1) > 1e-9 {
				t.Errorf("got (%v, %v), want (10, 1)", x, y)
			}
		})
	}
}

func TestParse_MatrixTransform(t *testing.T) {
	m, err := parseTransform("matrix(1 2 3 4 5 6)")
	if err != nil {
		t.Fatal(err)
	}
	// x' = a*x + c*y + e, y' = b*x + d*y + f
	x, y := m.Apply(1, 1)
	if x != 1+3+5 || y != 2+4+6 {
		t.Errorf("got (%v, %v), want (9, 12)", x, y)
	}
}

func TestParse_BasicShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"rect", `<rect x="1" y="1" width="4" height="4"/>`},
		{"rounded rect", `<rect width="4" height="4" rx="1"/>`},
		{"circle", `<circle cx="5" cy="5" r="3"/>`},
		{"ellipse", `<ellipse cx="5" cy="5" rx="3" ry="2"/>`},
		{"line", `<line x1="0" y1="0" x2="5" y2="5"/>`},
		{"polyline", `<polyline points="0,0 5,0 5,5"/>`},
		{"polygon", `<polygon points="0,0 5,0 5,5"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, `<svg viewBox="0 0 10 10">`+tt.src+`</svg>`)
			p := firstPath(t, doc.Root)
			if p == nil || p.Data.IsEmpty() {
				t.Fatal("shape produced no geometry")
			}
		})
	}
}

func TestParse_PolygonCloses(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10"><polygon points="0,0 5,0 5,5"/></svg>`)
	p := firstPath(t, doc.Root)
	verbs := p.Data.Verbs
	if verbs[len(verbs)-1] != VerbClose {
		t.Error("polygon path not closed")
	}
	doc = mustParse(t, `<svg viewBox="0 0 10 10"><polyline points="0,0 5,0 5,5"/></svg>`)
	p = firstPath(t, doc.Root)
	verbs = p.Data.Verbs
	if verbs[len(verbs)-1] == VerbClose {
		t.Error("polyline path should stay open")
	}
}

func TestParse_DefsSkipped(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10">
		<defs><path d="M0 0 L1 1"/></defs>
		<rect width="2" height="2"/>
	</svg>`)
	n := 0
	var walk func(Node)
	walk = func(node Node) {
		switch v := node.(type) {
		case *Path:
			n++
		case *Group:
			for _, c := range v.Children {
				walk(c)
			}
		}
	}
	walk(doc.Root)
	if n != 1 {
		t.Errorf("got %d paths, want 1 (defs content skipped)", n)
	}
}

func TestParse_Placeholders(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10">
		<image href="a.png" width="4" height="4"/>
		<text x="0" y="0">hi</text>
	</svg>`)
	if len(doc.Root.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(doc.Root.Children))
	}
	if _, ok := doc.Root.Children[0].(*Image); !ok {
		t.Errorf("child 0 is %T, want *Image", doc.Root.Children[0])
	}
	if _, ok := doc.Root.Children[1].(*Text); !ok {
		t.Errorf("child 1 is %T, want *Text", doc.Root.Children[1])
	}
}

func TestParse_UnknownElementsIgnored(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10">
		<metadata><something/></metadata>
		<rect width="2" height="2"/>
	</svg>`)
	if p := firstPath(t, doc.Root); p == nil {
		t.Fatal("rect after unknown element was lost")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		none bool
		ok   bool
	}{
		{"#f00", color.NRGBA{R: 0xff, A: 0xff}, false, true},
		{"#ff0000", color.NRGBA{R: 0xff, A: 0xff}, false, true},
		{"#ff000080", color.NRGBA{R: 0xff, A: 0x80}, false, true},
		{"rgb(255, 0, 0)", color.NRGBA{R: 0xff, A: 0xff}, false, true},
		{"rgb(100%, 0%, 0%)", color.NRGBA{R: 0xff, A: 0xff}, false, true},
		{"rgba(0, 0, 255, 0.5)", color.NRGBA{B: 0xff, A: 0x80}, false, true},
		{"red", color.NRGBA{R: 0xff, A: 0xff}, false, true},
		{"currentColor", color.NRGBA{A: 0xff}, false, true},
		{"none", color.NRGBA{}, true, false},
		{"", color.NRGBA{}, true, false},
		{"url(#g)", color.NRGBA{}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, none, ok, err := parseColor(tt.in)
			if err != nil {
				t.Fatalf("parseColor(%q): %v", tt.in, err)
			}
			if none != tt.none || ok != tt.ok {
				t.Fatalf("parseColor(%q) none=%v ok=%v, want none=%v ok=%v", tt.in, none, ok, tt.none, tt.ok)
			}
			if ok && c != tt.want {
				t.Errorf("parseColor(%q) = %+v, want %+v", tt.in, c, tt.want)
			}
		})
	}
}
