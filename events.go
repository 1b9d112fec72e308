package svgmesh

import "github.com/gogpu/svgmesh/dom"

// eventKind discriminates subpath events.
type eventKind uint8

const (
	evBegin eventKind = iota
	evLine
	evCubic
	evEnd
)

// pathEvent is one well-formed subpath event. Begin carries the subpath
// start in To. Line and Cubic carry an edge From -> To (Cubic also sets
// Ctrl1/Ctrl2). End carries the current point in From, the subpath start
// in To, and whether the subpath closes back onto its start.
type pathEvent struct {
	Kind         eventKind
	From, To     Point
	Ctrl1, Ctrl2 Point
	Close        bool
}

// pathEvents converts a raw command stream into begin/line/cubic/end
// events, one balanced Begin/End pair per subpath. A moveto while a
// subpath is open first ends that subpath unclosed; an open subpath at
// the end of the stream is ended unclosed. Malformed streams degrade to
// fewer subpaths and never panic; drawing verbs before any moveto are
// ignored.
func pathEvents(d *dom.PathData, emit func(pathEvent)) {
	var (
		open       bool
		cur, first Point
		pi         int
	)

	endOpen := func(closed bool) {
		emit(pathEvent{Kind: evEnd, From: cur, To: first, Close: closed})
		open = false
	}

	for _, verb := range d.Verbs {
		n := verbPoints(verb)
		if pi+n > len(d.Points) {
			break // truncated stream
		}
		pts := d.Points[pi : pi+n]
		pi += n

		switch verb {
		case dom.VerbMoveTo:
			if open {
				endOpen(false)
			}
			cur = Pt(pts[0], pts[1])
			first = cur
			emit(pathEvent{Kind: evBegin, To: first})
			open = true

		case dom.VerbLineTo:
			if !open {
				continue // no subpath to draw into
			}
			to := Pt(pts[0], pts[1])
			emit(pathEvent{Kind: evLine, From: cur, To: to})
			cur = to

		case dom.VerbCubicTo:
			if !open {
				continue
			}
			to := Pt(pts[4], pts[5])
			emit(pathEvent{
				Kind:  evCubic,
				From:  cur,
				Ctrl1: Pt(pts[0], pts[1]),
				Ctrl2: Pt(pts[2], pts[3]),
				To:    to,
			})
			cur = to

		case dom.VerbClose:
			if open {
				endOpen(true)
				cur = first
			}
		}
	}
	if open {
		endOpen(false)
	}
}

func verbPoints(v dom.Verb) int {
	switch v {
	case dom.VerbMoveTo, dom.VerbLineTo:
		return 2
	case dom.VerbCubicTo:
		return 6
	default:
		return 0
	}
}
