package fractal

import "math"

// Base framing at zoom level 1: the classic window left of the origin,
// wide enough to hold the whole set.
const (
	baseCenterX = -0.75
	baseCenterY = 0.0
	baseRange   = 3.5
)

// View is the visible window of the complex plane. Range is the width of
// the window; the vertical extent follows from the surface aspect ratio at
// render time. Range is always finite and positive.
type View struct {
	CenterX float64
	CenterY float64
	Range   float64
}

// viewFor derives the window from normalized parameters. The zoom factor
// doubles per level above 1 and the center offset slides horizontally.
// Zoom levels extreme enough to overflow float64 fall back to the base
// framing rather than producing a degenerate window.
func viewFor(p Params) View {
	r := baseRange / zoomFactor(p.Zoom)
	if !(r > 0) || math.IsInf(r, 0) {
		r = baseRange
	}
	return View{
		CenterX: baseCenterX + p.CenterOffset,
		CenterY: baseCenterY,
		Range:   r,
	}
}

// zoomFactor converts a zoom level to a magnification: 2^(level-1).
func zoomFactor(level float64) float64 {
	return math.Pow(2, level-1)
}
