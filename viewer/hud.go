package viewer

import (
	"fmt"
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"mandelscope/fractal"
	"mandelscope/hal"
	"mandelscope/internal/buildinfo"
)

var (
	hudBack  = color.RGBA{R: 0x08, G: 0x0A, B: 0x14, A: 0xFF}
	hudTitle = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	hudText  = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	hudBusy  = color.RGBA{R: 0xFF, G: 0xD1, B: 0x4A, A: 0xFF}
)

func (t *Task) drawHUD() {
	if t.font == nil {
		return
	}
	v := t.r.View()
	factor := math.Pow(2, t.zoom-1)

	lines := 3
	if !t.r.Converged() {
		lines = 4
	}
	d := &fbDisplayer{fb: t.fb}
	band := int16(6 + lines*int(t.fontHeight) + 4)
	_ = d.FillRectangle(0, 0, int16(t.fb.Width()), band, hudBack)

	y := 6
	t.drawText(6, y, "mandelscope "+buildinfo.Short(), hudTitle)
	y += int(t.fontHeight)
	t.drawText(6, y, fmt.Sprintf("center %.6f%+.6fi  range %.6f", v.CenterX, v.CenterY, v.Range), hudText)
	y += int(t.fontHeight)
	t.drawText(6, y, fmt.Sprintf("zoom %.4gx  iter %d  %s", factor, t.iter, fractal.SchemeName(t.scheme)), hudText)
	y += int(t.fontHeight)
	if !t.r.Converged() {
		done, total := t.r.Progress()
		t.drawText(6, y, fmt.Sprintf("pass %d/%d", done, total), hudBusy)
	}
}

func (t *Task) drawText(x, y int, s string, c color.RGBA) {
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	d := &fbDisplayer{fb: t.fb}
	tinyfont.WriteLine(d, t.font, int16(x), int16(y)+t.fontHeight, s, c)
}

// fbDisplayer adapts the raw framebuffer to the displayer contract
// tinyfont draws through. Presenting is left to the frame loop.
type fbDisplayer struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplayer)(nil)

func (d *fbDisplayer) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || int(x) >= d.fb.Width() || int(y) >= d.fb.Height() {
		return
	}
	buf := d.fb.Buffer()
	off := int(y)*d.fb.StrideBytes() + int(x)*2
	if buf == nil || off+1 >= len(buf) {
		return
	}
	pix := rgb565From888(c.R, c.G, c.B)
	buf[off] = byte(pix)
	buf[off+1] = byte(pix >> 8)
}

func (d *fbDisplayer) Display() error {
	return nil
}

// FillRectangle paints the clipped rectangle in one packed color. Used
// for the HUD backdrop band.
func (d *fbDisplayer) FillRectangle(x, y, w, h int16, c color.RGBA) error {
	buf := d.fb.Buffer()
	if buf == nil || w <= 0 || h <= 0 {
		return nil
	}
	x0 := clampInt(int(x), 0, d.fb.Width())
	y0 := clampInt(int(y), 0, d.fb.Height())
	x1 := clampInt(int(x)+int(w), 0, d.fb.Width())
	y1 := clampInt(int(y)+int(h), 0, d.fb.Height())

	pix := rgb565From888(c.R, c.G, c.B)
	lo := byte(pix)
	hi := byte(pix >> 8)
	stride := d.fb.StrideBytes()
	for yy := y0; yy < y1; yy++ {
		row := yy * stride
		for xx := x0; xx < x1; xx++ {
			off := row + xx*2
			if off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}
