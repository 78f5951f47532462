// Package fractal renders the Mandelbrot set progressively.
//
// The renderer trades resolution for responsiveness: each Update call
// computes at most one pass over the image, starting at one eighth of the
// target resolution and doubling until the final full-resolution pass.
// Every completed pass is published as a fresh buffer that is never written
// again, so a display loop always draws a complete frame even while the
// next pass is being computed.
//
// Pipeline (fixed):
//
//	Params → View → per-pixel escape iteration → palette lookup → PixelBuffer.
//
// The package is single-threaded by design: all computation happens inside
// Update, bounded to one pass. A Renderer must not be shared across
// goroutines; hosts that serve several surfaces create one Renderer per
// surface.
package fractal
