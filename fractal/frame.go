package fractal

import "math"

// smoothEps guards the logarithms in the continuous-coloring estimate.
// Values at or below it fall back to the raw iteration count.
const smoothEps = 1e-12

// RenderPass computes one complete frame at w×h for the given view.
//
// Each pixel center maps linearly into the view's bounding box; the
// horizontal extent is view.Range and the vertical extent follows from the
// h/w aspect ratio. Escaped points receive a smoothed iteration index into
// the palette, bounded points the reserved in-set entry at the end of the
// table. The palette must hold maxIter+1 entries.
//
// Returns nil for an empty target area or an undersized palette; it never
// panics for any view or iteration budget.
//
// This is the most expensive call in the package: O(w·h·iterations). The
// progressive ladder in the Renderer exists to keep single calls short.
func RenderPass(w, h int, view View, maxIter int, palette []RGB) *PixelBuffer {
	if w <= 0 || h <= 0 || maxIter < 1 || len(palette) <= maxIter {
		return nil
	}

	buf := &PixelBuffer{W: w, H: h, Divisor: 1, Pix: make([]byte, w*h*4)}

	xStep := view.Range / float64(w)
	yRange := view.Range * float64(h) / float64(w)
	yStep := yRange / float64(h)
	xMin := view.CenterX - view.Range/2
	yMin := view.CenterY - yRange/2

	inSet := palette[maxIter]
	o := 0
	for py := 0; py < h; py++ {
		ci := yMin + (float64(py)+0.5)*yStep
		for px := 0; px < w; px++ {
			cr := xMin + (float64(px)+0.5)*xStep
			res := Evaluate(cr, ci, maxIter)
			c := inSet
			if res.Escaped {
				c = palette[smoothIndex(res, maxIter)]
			}
			buf.Pix[o+0] = c.R
			buf.Pix[o+1] = c.G
			buf.Pix[o+2] = c.B
			buf.Pix[o+3] = 0xFF
			o += 4
		}
	}
	return buf
}

// smoothIndex converts an escape result to a palette slot using the
// normalized iteration estimate
//
//	nu     = log(log(magSq)/2 / log 4) / log 2
//	smooth = iterations + 1 - nu
//
// and indexes the palette with floor(smooth) mod maxIter, clamped to
// [0, maxIter-1]. The mod wrap folds large smoothed counts back to low
// slots and can show as a color seam at deep zooms; the wrap is
// deliberate, not a bug to clamp away.
func smoothIndex(res EscapeResult, maxIter int) int {
	smooth := float64(res.Iterations)
	if res.MagSq > smoothEps {
		if inner := math.Log(res.MagSq) / 2 / math.Log(4); inner > smoothEps {
			if nu := math.Log(inner) / math.Ln2; !math.IsInf(nu, 0) && !math.IsNaN(nu) {
				smooth = float64(res.Iterations) + 1 - nu
			}
		}
	}
	i := int(math.Floor(smooth)) % maxIter
	if i < 0 {
		return 0
	}
	if i > maxIter-1 {
		return maxIter - 1
	}
	return i
}
