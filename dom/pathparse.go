package dom

import (
	"fmt"
	"math"
	"strconv"
)

// parsePathData compiles an SVG path "d" attribute into a PathData stream.
// Quadratic and arc segments are lowered to cubics. An empty or blank
// attribute yields an empty path; a malformed one returns an error.
func parsePathData(d string) (PathData, error) {
	var (
		p   PathData
		lex = pathLexer{s: d}

		cmd  byte // current command letter
		open bool // a subpath has been started

		// reflection state for S and T shorthands
		lastCubicX, lastCubicY float64
		lastQuadX, lastQuadY   float64
		lastCmd                byte
	)

	for {
		lex.skipSep()
		if lex.eof() {
			return p, nil
		}

		if c := lex.peek(); isCommandLetter(c) {
			cmd = c
			lex.i++
		} else if cmd == 0 {
			// Start of data, or right after a close.
			return p, fmt.Errorf("dom: expected path command, got %q", c)
		} else if cmd == 'M' {
			// Implicit coordinates after a moveto are linetos.
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}

		rel := cmd >= 'a'
		curX, curY := p.Pos()
		relX, relY := 0.0, 0.0
		if rel {
			relX, relY = curX, curY
		}

		switch cmd {
		case 'M', 'm':
			x, y, err := lex.pair()
			if err != nil {
				return p, err
			}
			p.MoveTo(relX+x, relY+y)
			open = true

		case 'L', 'l':
			x, y, err := lex.pair()
			if err != nil {
				return p, err
			}
			p.LineTo(relX+x, relY+y)

		case 'H', 'h':
			x, err := lex.number()
			if err != nil {
				return p, err
			}
			p.LineTo(relX+x, curY)

		case 'V', 'v':
			y, err := lex.number()
			if err != nil {
				return p, err
			}
			p.LineTo(curX, relY+y)

		case 'C', 'c':
			x1, y1, err := lex.pair()
			if err != nil {
				return p, err
			}
			x2, y2, err := lex.pair()
			if err != nil {
				return p, err
			}
			x, y, err := lex.pair()
			if err != nil {
				return p, err
			}
			p.CubicTo(relX+x1, relY+y1, relX+x2, relY+y2, relX+x, relY+y)
			lastCubicX, lastCubicY = relX+x2, relY+y2

		case 'S', 's':
			x2, y2, err := lex.pair()
			if err != nil {
				return p, err
			}
			x, y, err := lex.pair()
			if err != nil {
				return p, err
			}
			// First control point is the reflection of the previous
			// cubic's second control point, or the current point.
			x1, y1 := curX, curY
			if lastCmd == 'C' || lastCmd == 'c' || lastCmd == 'S' || lastCmd == 's' {
				x1, y1 = 2*curX-lastCubicX, 2*curY-lastCubicY
			}
			p.CubicTo(x1, y1, relX+x2, relY+y2, relX+x, relY+y)
			lastCubicX, lastCubicY = relX+x2, relY+y2

		case 'Q', 'q':
			cx, cy, err := lex.pair()
			if err != nil {
				return p, err
			}
			x, y, err := lex.pair()
			if err != nil {
				return p, err
			}
			p.QuadTo(relX+cx, relY+cy, relX+x, relY+y)
			lastQuadX, lastQuadY = relX+cx, relY+cy

		case 'T', 't':
			x, y, err := lex.pair()
			if err != nil {
				return p, err
			}
			cx, cy := curX, curY
			if lastCmd == 'Q' || lastCmd == 'q' || lastCmd == 'T' || lastCmd == 't' {
				cx, cy = 2*curX-lastQuadX, 2*curY-lastQuadY
			}
			p.QuadTo(cx, cy, relX+x, relY+y)
			lastQuadX, lastQuadY = cx, cy

		case 'A', 'a':
			rx, err := lex.number()
			if err != nil {
				return p, err
			}
			ry, err := lex.number()
			if err != nil {
				return p, err
			}
			rot, err := lex.number()
			if err != nil {
				return p, err
			}
			largeArc, err := lex.flag()
			if err != nil {
				return p, err
			}
			sweep, err := lex.flag()
			if err != nil {
				return p, err
			}
			x, y, err := lex.pair()
			if err != nil {
				return p, err
			}
			p.ArcTo(rx, ry, rot*math.Pi/180, largeArc, sweep, relX+x, relY+y)

		case 'Z', 'z':
			if open {
				p.Close()
			}
			open = false
			// Coordinates may not follow a close; the next token must
			// be a command letter.
			cmd = 0

		default:
			return p, fmt.Errorf("dom: unknown path command %q", cmd)
		}

		lastCmd = cmd
	}
}

func isCommandLetter(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// pathLexer tokenizes SVG path data: command letters, numbers and
// comma/whitespace separators.
type pathLexer struct {
	s string
	i int
}

func (l *pathLexer) eof() bool {
	return l.i >= len(l.s)
}

func (l *pathLexer) peek() byte {
	return l.s[l.i]
}

func (l *pathLexer) skipSep() {
	for l.i < len(l.s) {
		switch l.s[l.i] {
		case ' ', '\t', '\n', '\r', ',':
			l.i++
		default:
			return
		}
	}
}

// number scans one float. SVG allows numbers to run together when the
// following one starts with a sign or a dot ("1.5.5" is "1.5" ".5").
func (l *pathLexer) number() (float64, error) {
	l.skipSep()
	start := l.i
	if l.i < len(l.s) && (l.s[l.i] == '+' || l.s[l.i] == '-') {
		l.i++
	}
	seenDot := false
	for l.i < len(l.s) {
		c := l.s[l.i]
		if c >= '0' && c <= '9' {
			l.i++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			l.i++
			continue
		}
		if (c == 'e' || c == 'E') && l.i > start {
			// exponent: optional sign then digits
			j := l.i + 1
			if j < len(l.s) && (l.s[j] == '+' || l.s[j] == '-') {
				j++
			}
			if j < len(l.s) && l.s[j] >= '0' && l.s[j] <= '9' {
				l.i = j
				continue
			}
		}
		break
	}
	if l.i == start {
		return 0, fmt.Errorf("dom: expected number at offset %d in path data", start)
	}
	v, err := strconv.ParseFloat(l.s[start:l.i], 64)
	if err != nil {
		return 0, fmt.Errorf("dom: bad number %q in path data: %w", l.s[start:l.i], err)
	}
	return v, nil
}

func (l *pathLexer) pair() (float64, float64, error) {
	x, err := l.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := l.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// flag scans an arc flag, which is a bare '0' or '1' that may directly
// abut the next number.
func (l *pathLexer) flag() (bool, error) {
	l.skipSep()
	if l.eof() {
		return false, fmt.Errorf("dom: expected arc flag at end of path data")
	}
	switch l.s[l.i] {
	case '0':
		l.i++
		return false, nil
	case '1':
		l.i++
		return true, nil
	}
	return false, fmt.Errorf("dom: bad arc flag %q in path data", l.s[l.i])
}
