package fractal

import "image"

// PixelBuffer is one completed pass: RGBA pixels at a possibly reduced
// resolution, plus the divisor it was rendered at relative to the target
// surface. Completed buffers are published whole and never written again,
// so a reader may keep one across later passes without seeing tearing.
type PixelBuffer struct {
	W, H    int
	Divisor int
	Pix     []byte // RGBA, 4 bytes per pixel, row-major
}

// Image wraps the pixels as an image.RGBA sharing the same memory. The
// buffer is published read-only; callers that want to draw on the image
// must copy it first.
func (b *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.W * 4,
		Rect:   image.Rect(0, 0, b.W, b.H),
	}
}
