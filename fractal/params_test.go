package fractal

import (
	"math"
	"testing"
)

func TestParamsDefaults(t *testing.T) {
	p := ParamsFrom(nil)
	if p.MaxIter != 100 || p.Scheme != SchemeBlueGold || p.Zoom != 1 || p.CenterOffset != 0 {
		t.Fatalf("defaults wrong: %+v", p)
	}
}

func TestParamsClamping(t *testing.T) {
	p := ParamsFrom(map[string]float64{
		ParamMaxIterations: 5000,
		ParamColorScheme:   -1,
	})
	if p.MaxIter != 1000 {
		t.Fatalf("maxIter %d, want 1000", p.MaxIter)
	}
	if p.Scheme != 0 {
		t.Fatalf("scheme %d, want 0", p.Scheme)
	}

	p = ParamsFrom(map[string]float64{
		ParamMaxIterations: 3,
		ParamColorScheme:   12,
	})
	if p.MaxIter != 10 {
		t.Fatalf("maxIter %d, want 10", p.MaxIter)
	}
	if p.Scheme != NumSchemes-1 {
		t.Fatalf("scheme %d, want %d", p.Scheme, NumSchemes-1)
	}
}

func TestParamsNonFinite(t *testing.T) {
	p := ParamsFrom(map[string]float64{
		ParamMaxIterations: math.NaN(),
		ParamZoomLevel:     math.NaN(),
		ParamCenterOffset:  math.Inf(1),
	})
	if p.MaxIter != DefaultMaxIter {
		t.Fatalf("NaN maxIter not defaulted: %d", p.MaxIter)
	}
	if p.Zoom != DefaultZoom || p.CenterOffset != DefaultCenterOffset {
		t.Fatalf("non-finite values not defaulted: %+v", p)
	}
}

func TestParamsKeyRounding(t *testing.T) {
	a := ParamsFrom(map[string]float64{ParamZoomLevel: 2, ParamCenterOffset: 0.5})
	b := ParamsFrom(map[string]float64{ParamZoomLevel: 2 + 1e-8, ParamCenterOffset: 0.5 - 1e-9})
	if a.Key() != b.Key() {
		t.Fatalf("keys differ under float noise: %q vs %q", a.Key(), b.Key())
	}
	c := ParamsFrom(map[string]float64{ParamZoomLevel: 2.001, ParamCenterOffset: 0.5})
	if a.Key() == c.Key() {
		t.Fatalf("distinct zoom levels share key %q", a.Key())
	}
}

func TestParamsKeyFoldsNegativeZero(t *testing.T) {
	a := ParamsFrom(map[string]float64{ParamZoomLevel: 1e-9, ParamCenterOffset: 1e-9})
	b := ParamsFrom(map[string]float64{ParamZoomLevel: -1e-9, ParamCenterOffset: -1e-9})
	if a.Key() != b.Key() {
		t.Fatalf("noise straddling zero splits the key: %q vs %q", a.Key(), b.Key())
	}
	c := ParamsFrom(map[string]float64{ParamCenterOffset: -1e-9})
	if c.Key() != ParamsFrom(nil).Key() {
		t.Fatalf("near-zero offset key differs from default: %q vs %q", c.Key(), ParamsFrom(nil).Key())
	}
}

func TestParamsMapRoundTrip(t *testing.T) {
	p := ParamsFrom(map[string]float64{
		ParamMaxIterations: 300,
		ParamColorScheme:   SchemeOcean,
		ParamZoomLevel:     2.5,
		ParamCenterOffset:  -0.3,
	})
	q := ParamsFrom(p.Map())
	if p != q {
		t.Fatalf("map round trip changed params: %+v vs %+v", p, q)
	}
}
