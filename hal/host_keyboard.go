//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// keyBindings maps the navigation keys. Character keys arrive separately
// as runes through AppendInputChars.
var keyBindings = [...]struct {
	src  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyTab, KeyTab},
}

// poll runs once per host frame and forwards edges. Events drop when the
// channel is full rather than stalling the frame.
func (k *hostKeyboard) poll() {
	emit := func(ev KeyEvent) {
		select {
		case k.ch <- ev:
		default:
		}
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		emit(KeyEvent{Press: true, Rune: r})
	}
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.src) {
			emit(KeyEvent{Code: b.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(b.src) {
			emit(KeyEvent{Code: b.code, Press: false})
		}
	}
}
