package viewer

import (
	"strings"
	"testing"

	"mandelscope/fractal"
	"mandelscope/hal"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) ClearRGB(r, g, b uint8)  { clearRGB565(f.buf, rgb565From888(r, g, b)) }
func (f *testFB) Present() error          { f.presents++; return nil }

// testHAL implements the whole HAL surface in one struct so tasks can be
// driven without a window.
type testHAL struct {
	fb  *testFB
	kbd chan hal.KeyEvent
	log []string
}

func newTestHAL(w, h int) *testHAL {
	return &testHAL{fb: newTestFB(w, h), kbd: make(chan hal.KeyEvent, 64)}
}

func (t *testHAL) WriteLineString(s string)     { t.log = append(t.log, s) }
func (t *testHAL) WriteLineBytes(b []byte)      { t.log = append(t.log, string(b)) }
func (t *testHAL) Logger() hal.Logger           { return t }
func (t *testHAL) Display() hal.Display         { return t }
func (t *testHAL) Framebuffer() hal.Framebuffer { return t.fb }
func (t *testHAL) Input() hal.Input             { return t }
func (t *testHAL) Keyboard() hal.Keyboard       { return t }
func (t *testHAL) Events() <-chan hal.KeyEvent  { return t.kbd }
func (t *testHAL) Time() hal.Time               { return nil }

func runePress(r rune) hal.KeyEvent {
	return hal.KeyEvent{Press: true, Rune: r}
}

func mustTask(t *testing.T, h *testHAL, cfg Config) *Task {
	t.Helper()
	task := newTask(h, cfg)
	if task == nil {
		t.Fatalf("task construction failed")
	}
	return task
}

func stepOK(t *testing.T, task *Task) {
	t.Helper()
	if err := task.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestStepConvergesAndPresents(t *testing.T) {
	h := newTestHAL(64, 48)
	task := mustTask(t, h, Config{})

	for i := 0; i < fractal.TotalPasses; i++ {
		stepOK(t, task)
	}
	if !task.r.Converged() {
		t.Fatalf("renderer not converged after %d steps", fractal.TotalPasses)
	}
	if h.fb.presents != fractal.TotalPasses {
		t.Fatalf("presents: got %d, want %d", h.fb.presents, fractal.TotalPasses)
	}

	nonZero := false
	for _, b := range h.fb.buf {
		if b != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatalf("framebuffer still blank after convergence")
	}
}

func TestSchemeCycleWrapsAround(t *testing.T) {
	h := newTestHAL(16, 12)
	task := mustTask(t, h, Config{HideHUD: true})

	for i := 0; i < 2; i++ {
		h.kbd <- runePress('c')
	}
	stepOK(t, task)
	if task.scheme != 2 {
		t.Fatalf("scheme after 2 presses: got %d, want 2", task.scheme)
	}

	for i := 0; i < 3; i++ {
		h.kbd <- runePress('c')
	}
	stepOK(t, task)
	if task.scheme != 0 {
		t.Fatalf("scheme after full cycle: got %d, want 0", task.scheme)
	}
}

func TestIterationKeysClamp(t *testing.T) {
	h := newTestHAL(16, 12)
	task := mustTask(t, h, Config{HideHUD: true})

	h.kbd <- runePress('[')
	h.kbd <- runePress('[')
	h.kbd <- runePress('[')
	stepOK(t, task)
	if task.iter != fractal.MinMaxIter {
		t.Fatalf("iter floor: got %d, want %d", task.iter, fractal.MinMaxIter)
	}

	task2 := mustTask(t, newTestHAL(16, 12), Config{MaxIter: 980, HideHUD: true})
	task2.handleRune(']')
	task2.handleRune(']')
	if task2.iter != fractal.MaxMaxIter {
		t.Fatalf("iter ceiling: got %d, want %d", task2.iter, fractal.MaxMaxIter)
	}
}

func TestConfigClampsAtConstruction(t *testing.T) {
	task := mustTask(t, newTestHAL(16, 12), Config{MaxIter: 5000, Scheme: 9, HideHUD: true})
	if task.iter != fractal.MaxMaxIter {
		t.Fatalf("iter: got %d, want %d", task.iter, fractal.MaxMaxIter)
	}
	if task.scheme != fractal.NumSchemes-1 {
		t.Fatalf("scheme: got %d, want %d", task.scheme, fractal.NumSchemes-1)
	}
}

func TestZoomKeysAdjustLevel(t *testing.T) {
	h := newTestHAL(16, 12)
	task := mustTask(t, h, Config{HideHUD: true})

	task.handleRune('i')
	if task.zoom != fractal.DefaultZoom+zoomTap {
		t.Fatalf("zoom in: got %v", task.zoom)
	}
	task.handleRune('o')
	task.handleRune('o')
	if task.zoom != fractal.DefaultZoom-zoomTap {
		t.Fatalf("zoom out: got %v", task.zoom)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	h := newTestHAL(16, 12)
	task := mustTask(t, h, Config{MaxIter: 500, Scheme: 2, Zoom: 3, Offset: 0.5, HideHUD: true})

	task.handleRune('r')
	if task.iter != fractal.DefaultMaxIter || task.scheme != fractal.DefaultScheme {
		t.Fatalf("reset: iter=%d scheme=%d", task.iter, task.scheme)
	}
	if task.zoom != fractal.DefaultZoom || task.offset != fractal.DefaultCenterOffset {
		t.Fatalf("reset: zoom=%v offset=%v", task.zoom, task.offset)
	}
}

func TestEscapeQuits(t *testing.T) {
	h := newTestHAL(16, 12)
	task := mustTask(t, h, Config{HideHUD: true})

	h.kbd <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	if err := task.step(); err != hal.ErrQuit {
		t.Fatalf("escape: got %v, want ErrQuit", err)
	}
}

func TestTabTogglesHUDOnPressOnly(t *testing.T) {
	h := newTestHAL(16, 12)
	task := mustTask(t, h, Config{})
	if !task.showHUD {
		t.Fatalf("HUD should start visible")
	}

	h.kbd <- hal.KeyEvent{Code: hal.KeyTab, Press: true}
	h.kbd <- hal.KeyEvent{Code: hal.KeyTab, Press: false}
	stepOK(t, task)
	if task.showHUD {
		t.Fatalf("HUD still visible after toggle")
	}

	h.kbd <- hal.KeyEvent{Code: hal.KeyTab, Press: false}
	stepOK(t, task)
	if task.showHUD {
		t.Fatalf("release alone must not toggle")
	}
}

func TestHeldPanMovesOffset(t *testing.T) {
	h := newTestHAL(16, 12)
	task := mustTask(t, h, Config{HideHUD: true})

	h.kbd <- hal.KeyEvent{Code: hal.KeyRight, Press: true}
	stepOK(t, task)
	if task.offset <= 0 {
		t.Fatalf("offset after held pan: got %v, want > 0", task.offset)
	}

	moved := task.offset
	h.kbd <- hal.KeyEvent{Code: hal.KeyRight, Press: false}
	stepOK(t, task)
	if task.offset != moved {
		t.Fatalf("offset moved after release: got %v, want %v", task.offset, moved)
	}
}

func TestParameterChangeRestartsLadder(t *testing.T) {
	h := newTestHAL(64, 48)
	task := mustTask(t, h, Config{HideHUD: true})

	for i := 0; i < fractal.TotalPasses; i++ {
		stepOK(t, task)
	}
	if !task.r.Converged() {
		t.Fatalf("not converged")
	}

	h.kbd <- runePress('c')
	stepOK(t, task)
	done, total := task.r.Progress()
	if done != 1 || total != fractal.TotalPasses {
		t.Fatalf("progress after restart: got %d/%d", done, total)
	}
	if task.r.Converged() {
		t.Fatalf("still converged after parameter change")
	}
}

func TestPassLoggingReportsLadder(t *testing.T) {
	h := newTestHAL(32, 24)
	task := mustTask(t, h, Config{HideHUD: true, LogPasses: true})

	for i := 0; i < fractal.TotalPasses; i++ {
		stepOK(t, task)
	}

	var passes, converged int
	for _, line := range h.log {
		if strings.HasPrefix(line, "pass ") {
			passes++
		}
		if strings.HasPrefix(line, "converged: ") {
			converged++
		}
	}
	if passes != fractal.TotalPasses {
		t.Fatalf("pass log lines: got %d, want %d", passes, fractal.TotalPasses)
	}
	if converged != 1 {
		t.Fatalf("converged log lines: got %d, want 1", converged)
	}

	stepOK(t, task)
	if got := len(h.log); got != 1+fractal.TotalPasses+1 {
		t.Fatalf("log lines after converged no-op: got %d", got)
	}
}

func TestNilHostIsHarmless(t *testing.T) {
	step := NewWithConfig(nil, Config{})
	if err := step(); err != nil {
		t.Fatalf("no-op step: %v", err)
	}
}
