//go:build cgo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"mandelscope/internal/buildinfo"
)

// RunWindow opens a desktop window that displays the framebuffer at 2x
// scale and forwards keyboard input. It blocks until the window closes or
// the app step returns an error; ErrQuit from the step closes the window
// cleanly.
func RunWindow(width, height int, newApp func(HAL) func() error) error {
	h := New(width, height).(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("mandelscope (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			if err == ErrQuit {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for p := 0; p*2+1 < len(src); p++ {
		r, gg, b := rgb888From565(uint16(src[p*2]) | uint16(src[p*2+1])<<8)
		dst[p*4+0] = r
		dst[p*4+1] = gg
		dst[p*4+2] = b
		dst[p*4+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
