package fractal

import (
	"fmt"
	"math"
)

// Parameter map keys shared with the host drivers. Unknown keys are
// ignored; missing or non-finite values fall back to the defaults.
const (
	ParamMaxIterations = "maxIterations"
	ParamColorScheme   = "colorScheme"
	ParamZoomLevel     = "zoomLevel"
	ParamCenterOffset  = "centerOffset"
)

// Defaults and clamp bounds for the parameter schema.
const (
	DefaultMaxIter = 100
	MinMaxIter     = 10
	MaxMaxIter     = 1000

	DefaultScheme       = SchemeBlueGold
	DefaultZoom         = 1.0
	DefaultCenterOffset = 0.0
)

// Params is a normalized render configuration. Values produced by
// ParamsFrom are always inside the schema bounds; a malformed slider value
// degrades to the nearest valid one instead of failing.
type Params struct {
	MaxIter      int
	Scheme       int
	Zoom         float64
	CenterOffset float64
}

// ParamsFrom normalizes a raw parameter map. The map may be nil.
func ParamsFrom(raw map[string]float64) Params {
	p := Params{
		MaxIter:      DefaultMaxIter,
		Scheme:       DefaultScheme,
		Zoom:         DefaultZoom,
		CenterOffset: DefaultCenterOffset,
	}
	if v, ok := finite(raw, ParamMaxIterations); ok {
		p.MaxIter = int(clampFloat(v, MinMaxIter, MaxMaxIter))
	}
	if v, ok := finite(raw, ParamColorScheme); ok {
		p.Scheme = int(clampFloat(v, 0, NumSchemes-1))
	}
	if v, ok := finite(raw, ParamZoomLevel); ok {
		p.Zoom = v
	}
	if v, ok := finite(raw, ParamCenterOffset); ok {
		p.CenterOffset = v
	}
	return p
}

// Key is the composite identity used to detect parameter changes between
// frames. The float fields are rounded to four decimal places so that
// frame-to-frame float noise does not restart the progressive sequence;
// negative zero folds into zero so noise flipping sign around zero stays
// on one key.
func (p Params) Key() string {
	return fmt.Sprintf("%d|%d|%.4f|%.4f", p.MaxIter, p.Scheme, keyRound(p.Zoom), keyRound(p.CenterOffset))
}

// Map renders the parameters back into schema form, for drivers that hold
// their state as Params and feed Update with a map.
func (p Params) Map() map[string]float64 {
	return map[string]float64{
		ParamMaxIterations: float64(p.MaxIter),
		ParamColorScheme:   float64(p.Scheme),
		ParamZoomLevel:     p.Zoom,
		ParamCenterOffset:  p.CenterOffset,
	}
}

func finite(raw map[string]float64, key string) (float64, bool) {
	v, ok := raw[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// keyRound rounds v to the key precision and folds negative zero into zero.
func keyRound(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return 0
	}
	return r
}
