// Package viewer is the interactive fractal explorer task. It consumes
// the HAL directly: keyboard events steer the view, every host frame
// advances the renderer by at most one progressive pass, and the latest
// completed pass is stretched over the framebuffer with a HUD on top.
package viewer

import (
	"fmt"
	"runtime/debug"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"mandelscope/fractal"
	"mandelscope/hal"
)

// Control tunables.
const (
	panSpeed  = 0.45 // view widths per second while a pan arrow is held
	zoomSpeed = 0.9  // zoom levels per second while a zoom arrow is held
	zoomTap   = 0.25 // zoom levels per i/o key press
	iterStep  = 50   // iteration budget change per [ or ] press
)

// Config selects the initial render parameters. Zero values mean the
// schema defaults. LogPasses reports every completed pass on the log,
// which is how headless runs stay observable.
type Config struct {
	MaxIter   int
	Scheme    int
	Zoom      float64
	Offset    float64
	HideHUD   bool
	LogPasses bool
}

// Task owns one progressive renderer and the control state steering it.
type Task struct {
	h     hal.HAL
	fb    hal.Framebuffer
	kbd   <-chan hal.KeyEvent
	ticks <-chan uint64

	font       tinyfont.Fonter
	fontHeight int16

	r      *fractal.Renderer
	params map[string]float64

	iter   int
	scheme int
	zoom   float64
	offset float64

	holdLeft  bool
	holdRight bool
	holdUp    bool
	holdDown  bool

	showHUD      bool
	logPasses    bool
	lastDone     int
	wasConverged bool
	quit         bool
}

// New wires a viewer with default parameters and returns its step
// function for the host loop.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig wires a viewer and returns its step function. Without a
// usable display the step is a no-op, so smoke runs on odd hosts stay
// harmless.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	t := newTask(h, cfg)
	if t == nil {
		return func() error { return nil }
	}
	return t.guardedStep
}

// guardedStep turns a panic in the frame path into a step error, with the
// stack on the log, so the host loop shuts down instead of dying mid-draw.
func (t *Task) guardedStep() (err error) {
	defer func() {
		if v := recover(); v != nil {
			t.logLine(fmt.Sprintf("viewer panic: %v", v))
			for _, line := range strings.Split(string(debug.Stack()), "\n") {
				if line != "" {
					t.logLine(line)
				}
			}
			err = fmt.Errorf("viewer panic: %v", v)
		}
	}()
	return t.step()
}

func newTask(h hal.HAL, cfg Config) *Task {
	if h == nil || h.Display() == nil {
		return nil
	}
	fb := h.Display().Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}

	t := &Task{
		h:         h,
		fb:        fb,
		iter:      fractal.DefaultMaxIter,
		scheme:    fractal.DefaultScheme,
		zoom:      fractal.DefaultZoom,
		offset:    cfg.Offset,
		showHUD:   !cfg.HideHUD,
		logPasses: cfg.LogPasses,
	}
	if cfg.MaxIter != 0 {
		t.iter = clampInt(cfg.MaxIter, fractal.MinMaxIter, fractal.MaxMaxIter)
	}
	if cfg.Scheme != 0 {
		t.scheme = clampInt(cfg.Scheme, 0, fractal.NumSchemes-1)
	}
	if cfg.Zoom != 0 {
		t.zoom = cfg.Zoom
	}

	if in := h.Input(); in != nil && in.Keyboard() != nil {
		t.kbd = in.Keyboard().Events()
	}
	if ht := h.Time(); ht != nil {
		t.ticks = ht.Ticks()
	}
	if !t.initFont() {
		t.showHUD = false
	}

	t.r = fractal.NewRenderer(fb.Width(), fb.Height())
	t.params = map[string]float64{}
	t.logLine("controls: arrows pan/zoom, i/o zoom, [ ] iterations, c scheme, r reset, tab hud, esc quit")
	return t
}

func (t *Task) initFont() bool {
	t.font = &proggy.TinySZ8pt7b
	t.fontHeight = 10
	_, w := tinyfont.LineWidth(t.font, "0")
	return w > 0
}

func (t *Task) logLine(s string) {
	if l := t.h.Logger(); l != nil {
		l.WriteLineString(s)
	}
}

// step runs once per host frame.
func (t *Task) step() error {
	dt := t.drainTicks()
	t.drainInput()
	if t.quit {
		return hal.ErrQuit
	}
	t.applyHeld(dt)

	t.r.Init(t.fb.Width(), t.fb.Height())
	t.params[fractal.ParamMaxIterations] = float64(t.iter)
	t.params[fractal.ParamColorScheme] = float64(t.scheme)
	t.params[fractal.ParamZoomLevel] = t.zoom
	t.params[fractal.ParamCenterOffset] = t.offset
	t.r.Update(dt, t.params)

	if done, total := t.r.Progress(); done != t.lastDone {
		t.lastDone = done
		if t.logPasses && done > 0 {
			t.logLine(fmt.Sprintf("pass %d/%d %s", done, total, t.r.StateDescription()))
		}
	}
	if c := t.r.Converged(); c != t.wasConverged {
		t.wasConverged = c
		if c {
			t.logLine("converged: " + t.r.StateDescription())
		}
	}

	t.compose()
	return t.fb.Present()
}

// drainTicks converts queued millisecond ticks into this frame's delta
// time. Hosts without a tick source fall back to the nominal frame.
func (t *Task) drainTicks() float64 {
	if t.ticks == nil {
		return 1.0 / 60
	}
	var n int
	for {
		select {
		case <-t.ticks:
			n++
		default:
			return float64(n) / 1000
		}
	}
}

func (t *Task) drainInput() {
	if t.kbd == nil {
		return
	}
	for {
		select {
		case ev := <-t.kbd:
			t.handleKey(ev)
		default:
			return
		}
	}
}

func (t *Task) handleKey(ev hal.KeyEvent) {
	if ev.Rune != 0 {
		if ev.Press {
			t.handleRune(ev.Rune)
		}
		return
	}
	switch ev.Code {
	case hal.KeyLeft:
		t.holdLeft = ev.Press
	case hal.KeyRight:
		t.holdRight = ev.Press
	case hal.KeyUp:
		t.holdUp = ev.Press
	case hal.KeyDown:
		t.holdDown = ev.Press
	case hal.KeyTab:
		if ev.Press {
			t.showHUD = !t.showHUD
		}
	case hal.KeyEscape:
		if ev.Press {
			t.quit = true
		}
	}
}

func (t *Task) handleRune(r rune) {
	switch r {
	case 'i', 'I', '+':
		t.zoom += zoomTap
	case 'o', 'O', '-':
		t.zoom -= zoomTap
	case '[':
		t.iter = clampInt(t.iter-iterStep, fractal.MinMaxIter, fractal.MaxMaxIter)
	case ']':
		t.iter = clampInt(t.iter+iterStep, fractal.MinMaxIter, fractal.MaxMaxIter)
	case 'c', 'C':
		t.scheme = (t.scheme + 1) % fractal.NumSchemes
	case 'r', 'R':
		t.iter = fractal.DefaultMaxIter
		t.scheme = fractal.DefaultScheme
		t.zoom = fractal.DefaultZoom
		t.offset = fractal.DefaultCenterOffset
	case 'q', 'Q':
		t.quit = true
	}
}

// applyHeld turns held arrow keys into continuous pan and zoom. The pan
// step scales with the visible range so movement feels the same at every
// zoom level.
func (t *Task) applyHeld(dt float64) {
	if dt <= 0 {
		return
	}
	if t.holdLeft != t.holdRight {
		step := panSpeed * dt * t.r.View().Range
		if t.holdLeft {
			t.offset -= step
		} else {
			t.offset += step
		}
	}
	if t.holdUp != t.holdDown {
		if t.holdUp {
			t.zoom += zoomSpeed * dt
		} else {
			t.zoom -= zoomSpeed * dt
		}
	}
}

func (t *Task) compose() {
	if buf := t.r.Latest(); buf != nil {
		blitScaled(t.fb, buf)
	} else if b := t.fb.Buffer(); b != nil {
		clearRGB565(b, 0)
	}
	if t.showHUD {
		t.drawHUD()
	}
}
