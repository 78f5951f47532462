package web

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"mandelscope/fractal"
)

// encodeFrame stretches a pass to the target size with nearest-neighbor
// sampling and returns it as a base64 PNG. Coarse passes keep their
// blocky look; the browser just draws a fixed-size image.
func encodeFrame(buf *fractal.PixelBuffer, w, h int) (string, error) {
	if buf == nil || w <= 0 || h <= 0 {
		return "", fmt.Errorf("encode frame: empty input")
	}
	img := buf.Image()
	if buf.W != w || buf.H != h {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(out.Bytes()), nil
}
