package dom

import "math"

// Verb is a path command in a PathData stream.
type Verb uint8

const (
	// VerbMoveTo starts a new subpath. Two points follow.
	VerbMoveTo Verb = iota
	// VerbLineTo draws a line from the current point. Two points follow.
	VerbLineTo
	// VerbCubicTo draws a cubic bezier. Six points follow.
	VerbCubicTo
	// VerbClose closes the current subpath. No points follow.
	VerbClose
)

// pointCount returns the number of coordinate values each verb consumes.
func (v Verb) pointCount() int {
	switch v {
	case VerbMoveTo, VerbLineTo:
		return 2
	case VerbCubicTo:
		return 6
	default:
		return 0
	}
}

// PathData is a flat stream of path commands with packed coordinates.
// Only move, line, cubic and close verbs appear: quadratic and arc
// segments are lowered to cubics when the path is built.
type PathData struct {
	Verbs  []Verb
	Points []float64

	curX, curY     float64 // current point
	startX, startY float64 // start of current subpath
}

// IsEmpty reports whether the path contains no commands.
func (p *PathData) IsEmpty() bool {
	return len(p.Verbs) == 0
}

// Pos returns the current point.
func (p *PathData) Pos() (float64, float64) {
	return p.curX, p.curY
}

// MoveTo starts a new subpath at (x, y).
func (p *PathData) MoveTo(x, y float64) {
	p.Verbs = append(p.Verbs, VerbMoveTo)
	p.Points = append(p.Points, x, y)
	p.curX, p.curY = x, y
	p.startX, p.startY = x, y
}

// LineTo draws a line from the current point to (x, y).
func (p *PathData) LineTo(x, y float64) {
	p.Verbs = append(p.Verbs, VerbLineTo)
	p.Points = append(p.Points, x, y)
	p.curX, p.curY = x, y
}

// CubicTo draws a cubic bezier to (x, y) with control points
// (x1, y1) and (x2, y2).
func (p *PathData) CubicTo(x1, y1, x2, y2, x, y float64) {
	p.Verbs = append(p.Verbs, VerbCubicTo)
	p.Points = append(p.Points, x1, y1, x2, y2, x, y)
	p.curX, p.curY = x, y
}

// QuadTo draws a quadratic bezier to (x, y) with control point (cx, cy),
// stored as the equivalent cubic.
func (p *PathData) QuadTo(cx, cy, x, y float64) {
	// Degree elevation: the cubic controls sit 2/3 of the way from the
	// endpoints to the quadratic control point.
	x1 := p.curX + 2.0/3.0*(cx-p.curX)
	y1 := p.curY + 2.0/3.0*(cy-p.curY)
	x2 := x + 2.0/3.0*(cx-x)
	y2 := y + 2.0/3.0*(cy-y)
	p.CubicTo(x1, y1, x2, y2, x, y)
}

// Close closes the current subpath.
func (p *PathData) Close() {
	p.Verbs = append(p.Verbs, VerbClose)
	p.curX, p.curY = p.startX, p.startY
}

// ArcTo draws an elliptical arc from the current point to (x, y) with radii
// rx and ry, x-axis rotation in radians, and the SVG large-arc and sweep
// flags, lowered to one cubic per quarter turn.
func (p *PathData) ArcTo(rx, ry, rot float64, largeArc, sweep bool, x, y float64) {
	x1, y1 := p.curX, p.curY
	if x1 == x && y1 == y {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(x, y)
		return
	}

	// Endpoint to center parameterization (SVG 1.1 appendix B.2.4).
	cosR, sinR := math.Cos(rot), math.Sin(rot)
	dx, dy := (x1-x)/2, (y1-y)/2
	xp := cosR*dx + sinR*dy
	yp := -sinR*dx + cosR*dy

	// Scale radii up if the endpoints cannot be connected otherwise.
	lambda := xp*xp/(rx*rx) + yp*yp/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*yp*yp - ry*ry*xp*xp
	den := rx*rx*yp*yp + ry*ry*xp*xp
	if num < 0 {
		num = 0
	}
	co := math.Sqrt(num / den)
	if largeArc == sweep {
		co = -co
	}
	cxp := co * rx * yp / ry
	cyp := -co * ry * xp / rx
	cx := cosR*cxp - sinR*cyp + (x1+x)/2
	cy := sinR*cxp + cosR*cyp + (y1+y)/2

	theta1 := math.Atan2((yp-cyp)/ry, (xp-cxp)/rx)
	theta2 := math.Atan2((-yp-cyp)/ry, (-xp-cxp)/rx)
	dTheta := theta2 - theta1
	if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	} else if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	}

	// Split into segments no larger than a quarter turn and approximate
	// each with a cubic.
	segments := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	delta := dTheta / float64(segments)
	alpha := 4.0 / 3.0 * math.Tan(delta/4)

	pointAt := func(theta float64) (px, py, tx, ty float64) {
		ct, st := math.Cos(theta), math.Sin(theta)
		px = cosR*rx*ct - sinR*ry*st + cx
		py = sinR*rx*ct + cosR*ry*st + cy
		tx = -cosR*rx*st - sinR*ry*ct
		ty = -sinR*rx*st + cosR*ry*ct
		return
	}

	theta := theta1
	px0, py0, tx0, ty0 := pointAt(theta)
	for i := 0; i < segments; i++ {
		theta += delta
		px1, py1, tx1, ty1 := pointAt(theta)
		if i == segments-1 {
			// land exactly on the endpoint
			px1, py1 = x, y
		}
		p.CubicTo(
			px0+alpha*tx0, py0+alpha*ty0,
			px1-alpha*tx1, py1-alpha*ty1,
			px1, py1,
		)
		px0, py0, tx0, ty0 = px1, py1, tx1, ty1
	}
}

// Ellipse appends a full ellipse as a closed subpath of four cubic arcs.
func (p *PathData) Ellipse(cx, cy, rx, ry float64) {
	// Magic constant for a quarter circle cubic approximation.
	const k = 0.5522847498307933
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+k*ry, cx+k*rx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-k*rx, cy+ry, cx-rx, cy+k*ry, cx-rx, cy)
	p.CubicTo(cx-rx, cy-k*ry, cx-k*rx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+k*rx, cy-ry, cx+rx, cy-k*ry, cx+rx, cy)
	p.Close()
}

// Rect appends a rectangle, with optional rounded corners when rx or ry
// is positive.
func (p *PathData) Rect(x, y, w, h, rx, ry float64) {
	if rx <= 0 && ry <= 0 {
		p.MoveTo(x, y)
		p.LineTo(x+w, y)
		p.LineTo(x+w, y+h)
		p.LineTo(x, y+h)
		p.Close()
		return
	}
	if rx <= 0 {
		rx = ry
	}
	if ry <= 0 {
		ry = rx
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	const k = 0.5522847498307933
	p.MoveTo(x+rx, y)
	p.LineTo(x+w-rx, y)
	p.CubicTo(x+w-rx+k*rx, y, x+w, y+ry-k*ry, x+w, y+ry)
	p.LineTo(x+w, y+h-ry)
	p.CubicTo(x+w, y+h-ry+k*ry, x+w-rx+k*rx, y+h, x+w-rx, y+h)
	p.LineTo(x+rx, y+h)
	p.CubicTo(x+rx-k*rx, y+h, x, y+h-ry+k*ry, x, y+h-ry)
	p.LineTo(x, y+ry)
	p.CubicTo(x, y+ry-k*ry, x+rx-k*rx, y, x+rx, y)
	p.Close()
}
