package viewer

import (
	"mandelscope/fractal"
	"mandelscope/hal"
)

// blitScaled stretches a completed pass over the whole framebuffer with
// nearest-neighbor sampling and packs each pixel to RGB565. Coarse passes
// show their blocks on screen; that is the progressive ladder made
// visible, not an artifact to smooth away.
func blitScaled(fb hal.Framebuffer, buf *fractal.PixelBuffer) {
	if fb == nil || buf == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	dst := fb.Buffer()
	if dst == nil {
		return
	}
	dstW, dstH := fb.Width(), fb.Height()
	stride := fb.StrideBytes()
	if dstW <= 0 || dstH <= 0 || stride <= 0 {
		return
	}
	srcW, srcH := buf.W, buf.H
	if srcW <= 0 || srcH <= 0 || len(buf.Pix) < srcW*srcH*4 {
		return
	}

	for y := 0; y < dstH; y++ {
		sy := int((int64(y) * int64(srcH)) / int64(dstH))
		srcRow := sy * srcW * 4
		row := y * stride
		for x := 0; x < dstW; x++ {
			sx := int((int64(x) * int64(srcW)) / int64(dstW))
			i := srcRow + sx*4
			pix := rgb565From888(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2])
			off := row + x*2
			if off+1 >= len(dst) {
				continue
			}
			dst[off] = byte(pix)
			dst[off+1] = byte(pix >> 8)
		}
	}
}

// clearRGB565 fills a little-endian RGB565 buffer with one packed pixel.
func clearRGB565(buf []byte, pixel uint16) {
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = lo
		buf[i+1] = hi
	}
}

func rgb565From888(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
