package fractal

import "math"

// RGB is one palette entry in 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Color schemes selectable through the colorScheme parameter.
const (
	SchemeBlueGold = 0
	SchemeFire     = 1
	SchemeOcean    = 2
	SchemeRainbow  = 3
	SchemeGray     = 4

	NumSchemes = 5
)

// SchemeName returns the display name of a color scheme. Unknown schemes
// report as Grayscale, matching the palette fallback.
func SchemeName(scheme int) string {
	switch scheme {
	case SchemeBlueGold:
		return "Blue-Gold"
	case SchemeFire:
		return "Fire"
	case SchemeOcean:
		return "Ocean"
	case SchemeRainbow:
		return "Rainbow"
	}
	return "Grayscale"
}

// BuildPalette computes the lookup table for a scheme: maxIter+1 entries,
// one per escape count, with index maxIter reserved for points inside the
// set (always black). An out-of-range scheme renders as grayscale; the
// table is decorative data and building it never fails.
func BuildPalette(scheme, maxIter int) []RGB {
	if maxIter < 1 {
		maxIter = 1
	}
	table := make([]RGB, maxIter+1)
	for i := 0; i < maxIter; i++ {
		t := float64(i) / float64(maxIter)
		switch scheme {
		case SchemeBlueGold:
			table[i] = blueGold(t)
		case SchemeFire:
			table[i] = fire(t)
		case SchemeOcean:
			table[i] = ocean(t)
		case SchemeRainbow:
			table[i] = hueColor(t * 360)
		default:
			table[i] = gray(t)
		}
	}
	table[maxIter] = RGB{}
	return table
}

// paletteCache remembers the most recent table. One slot only: rebuilding
// for a new (scheme, maxIter) key discards the previous table.
type paletteCache struct {
	scheme  int
	maxIter int
	table   []RGB
}

// get returns the cached table when the key matches and rebuilds it
// otherwise. A hit performs no allocation.
func (c *paletteCache) get(scheme, maxIter int) []RGB {
	if c.table != nil && c.scheme == scheme && c.maxIter == maxIter {
		return c.table
	}
	c.scheme = scheme
	c.maxIter = maxIter
	c.table = BuildPalette(scheme, maxIter)
	return c.table
}

// blueGold blends blue into gold over the first half of the ramp and gold
// into near-white over the second.
func blueGold(t float64) RGB {
	if t < 0.5 {
		return lerpRGB(RGB{R: 0, G: 24, B: 120}, RGB{R: 255, G: 200, B: 64}, t*2)
	}
	return lerpRGB(RGB{R: 255, G: 200, B: 64}, RGB{R: 250, G: 250, B: 235}, (t-0.5)*2)
}

// fire saturates red first, then green, then blue.
func fire(t float64) RGB {
	return RGB{
		R: channel(t * 3),
		G: channel(t*3 - 1),
		B: channel(t*3 - 2),
	}
}

// ocean keeps red suppressed and leads with blue.
func ocean(t float64) RGB {
	return RGB{
		R: channel(t * t * 0.6),
		G: channel(t * 0.85),
		B: channel(0.35 + t*0.65),
	}
}

func gray(t float64) RGB {
	v := channel(t)
	return RGB{R: v, G: v, B: v}
}

// hueColor maps a hue in degrees to RGB at full saturation and half
// lightness, using the six-sector HSL conversion.
func hueColor(h float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	hp := h / 60
	x := 1 - math.Abs(math.Mod(hp, 2)-1)
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = 1, x, 0
	case hp < 2:
		r, g, b = x, 1, 0
	case hp < 3:
		r, g, b = 0, 1, x
	case hp < 4:
		r, g, b = 0, x, 1
	case hp < 5:
		r, g, b = x, 0, 1
	default:
		r, g, b = 1, 0, x
	}
	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: channel(lerp(float64(a.R)/255, float64(b.R)/255, t)),
		G: channel(lerp(float64(a.G)/255, float64(b.G)/255, t)),
		B: channel(lerp(float64(a.B)/255, float64(b.B)/255, t)),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// channel clamps a 0..1 value and rounds it to an 8-bit channel.
func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
