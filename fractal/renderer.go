package fractal

import "fmt"

// passDivisors is the progressive resolution ladder, coarse to fine. Each
// Update call advances one rung; the last rung renders at full target
// resolution.
var passDivisors = [...]int{8, 4, 2, 1}

// TotalPasses is the length of the progressive resolution ladder.
const TotalPasses = len(passDivisors)

// Renderer owns the progressive state for one render target: the position
// on the pass ladder, the single-slot palette cache, and the most recently
// completed buffer.
//
// Create it once per surface and drive it from one goroutine.
type Renderer struct {
	targetW int
	targetH int

	pass      int
	converged bool
	lastKey   string
	params    Params

	palettes paletteCache
	latest   *PixelBuffer
}

// NewRenderer creates a renderer for a target surface. Zero or negative
// dimensions are allowed; passes are skipped until Resize delivers a real
// size.
func NewRenderer(w, h int) *Renderer {
	r := &Renderer{params: ParamsFrom(nil)}
	r.lastKey = r.params.Key()
	r.Resize(w, h)
	return r
}

// Init sizes the target surface. Safe to call repeatedly; only an actual
// size change restarts the pass ladder.
func (r *Renderer) Init(w, h int) {
	if w == r.targetW && h == r.targetH {
		return
	}
	r.Resize(w, h)
}

// Resize changes the target surface size and restarts the ladder at the
// coarsest pass. A zero-area size parks the renderer: the ladder resets
// but the last completed buffer stays available for display, so a window
// collapsing mid-drag never blanks or crashes the host.
func (r *Renderer) Resize(w, h int) {
	r.targetW = w
	r.targetH = h
	r.pass = 0
	r.converged = false
	if w > 0 && h > 0 {
		r.latest = nil
	}
}

// Update advances the renderer by at most one progressive pass, the core
// responsiveness contract: a call never blocks for longer than one pass at
// the current (possibly coarse) resolution.
//
// The raw parameter map may be nil or partial; values are defaulted and
// clamped per the schema and no combination of them fails. A parameter
// identity change cancels the sequence in progress and restarts at the
// coarsest pass. dt is accepted for driver symmetry; scheduling counts
// passes, not time.
func (r *Renderer) Update(dt float64, raw map[string]float64) {
	p := ParamsFrom(raw)
	if key := p.Key(); key != r.lastKey {
		r.lastKey = key
		r.params = p
		r.pass = 0
		r.converged = false
		r.latest = nil
	}
	if r.converged {
		return
	}
	r.step()
}

// step computes the pass the ladder points at and publishes its buffer.
// Zero-area targets skip the pass and leave the previous buffer untouched.
func (r *Renderer) step() {
	if r.targetW <= 0 || r.targetH <= 0 {
		return
	}
	div := passDivisors[r.pass]
	w := r.targetW / div
	h := r.targetH / div
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	table := r.palettes.get(r.params.Scheme, r.params.MaxIter)
	buf := RenderPass(w, h, viewFor(r.params), r.params.MaxIter, table)
	if buf == nil {
		return
	}
	buf.Divisor = div

	r.latest = buf
	r.pass++
	if r.pass >= TotalPasses {
		r.converged = true
	}
}

// Latest returns the most recently completed buffer, or nil when no pass
// has finished since the last restart. The buffer is complete and will
// never be written again.
func (r *Renderer) Latest() *PixelBuffer { return r.latest }

// Converged reports whether the full-resolution pass has completed for the
// current parameters.
func (r *Renderer) Converged() bool { return r.converged }

// Progress returns the number of completed passes in the current sequence
// and the total length of the ladder, for progress overlays.
func (r *Renderer) Progress() (done, total int) { return r.pass, TotalPasses }

// Size returns the target surface dimensions.
func (r *Renderer) Size() (w, h int) { return r.targetW, r.targetH }

// View returns the window of the complex plane for the current parameters.
func (r *Renderer) View() View { return viewFor(r.params) }

// StateDescription reports the current view and settings in one line. It
// reads but never mutates renderer state.
func (r *Renderer) StateDescription() string {
	v := viewFor(r.params)
	return fmt.Sprintf("center=(%.6f, %.6f) range=%.6f zoom=%.4gx iter=%d scheme=%s",
		v.CenterX, v.CenterY, v.Range,
		zoomFactor(r.params.Zoom), r.params.MaxIter, SchemeName(r.params.Scheme))
}
