package svgmesh

// fitKind discriminates the fit policy variants.
type fitKind uint8

const (
	fitNone fitKind = iota
	fitSize
	fitFactor
	fitCover
	fitContain
)

// FitMode decides how an icon's intrinsic size maps onto a target frame.
// The zero value behaves like FitContain(0). Construct values with
// [NoFit], [FitSize], [FitFactor], [FitCover] or [FitContain].
type FitMode struct {
	kind   fitKind
	w, h   float64
	factor float64
	margin float64
}

// NoFit renders the icon at its intrinsic view-box size regardless of
// the frame.
func NoFit() FitMode {
	return FitMode{kind: fitNone}
}

// FitSize renders the icon at exactly w by h, ignoring aspect ratio.
func FitSize(w, h float64) FitMode {
	return FitMode{kind: fitSize, w: w, h: h}
}

// FitFactor renders the icon at its intrinsic size scaled by f.
func FitFactor(f float64) FitMode {
	return FitMode{kind: fitFactor, factor: f}
}

// FitCover scales the icon uniformly until it covers the whole frame.
// One axis may extend past the frame.
func FitCover() FitMode {
	return FitMode{kind: fitCover}
}

// FitContain scales the icon uniformly until it fits entirely inside
// the frame inset by margin on each side. The non-dominant axis is
// letterboxed.
func FitContain(margin float64) FitMode {
	return FitMode{kind: fitContain, margin: margin}
}

// resolveFit computes the render size and the destination rectangle,
// center-aligned inside frame, for an icon with the given intrinsic size.
func (m FitMode) resolveFit(intrinsicW, intrinsicH float64, frame Rect) (w, h float64, dest Rect) {
	switch m.kind {
	case fitNone:
		w, h = intrinsicW, intrinsicH
	case fitSize:
		w, h = m.w, m.h
	case fitFactor:
		w, h = intrinsicW*m.factor, intrinsicH*m.factor
	case fitCover:
		w, h = scaleUniform(intrinsicW, intrinsicH, frame.W(), frame.H(), true)
	default: // fitContain, and the zero value
		inset := frame.Inset(m.margin)
		w, h = scaleUniform(intrinsicW, intrinsicH, inset.W(), inset.H(), false)
		frame = inset
	}

	c := frame.Center()
	dest = RectWH(c.X-w/2, c.Y-h/2, w, h)
	return w, h, dest
}

// scaleUniform scales (w0, h0) preserving aspect ratio so the result
// covers (cover=true) or fits inside (cover=false) the target size.
func scaleUniform(w0, h0, tw, th float64, cover bool) (float64, float64) {
	if w0 <= 0 || h0 <= 0 {
		return 0, 0
	}
	// Which axis binds depends on how the aspect ratios compare; for
	// equal ratios both branches agree.
	wide := tw*h0 > th*w0
	if wide == cover {
		return tw, h0 * tw / w0
	}
	return w0 * th / h0, th
}
