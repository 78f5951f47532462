// Command mkframe renders a single Mandelbrot frame to a PNG file. By
// default it runs the progressive ladder to convergence; -pass stops it
// early to capture a coarse intermediate.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"mandelscope/fractal"
	"mandelscope/internal/buildinfo"
)

func main() {
	var (
		width       int
		height      int
		iter        int
		scheme      int
		zoom        float64
		offset      float64
		pass        int
		outPath     string
		showVersion bool
	)
	flag.IntVar(&width, "width", 1024, "Image width in pixels.")
	flag.IntVar(&height, "height", 768, "Image height in pixels.")
	flag.IntVar(&iter, "iter", fractal.DefaultMaxIter, "Iteration budget (10-1000).")
	flag.IntVar(&scheme, "scheme", fractal.DefaultScheme, "Color scheme (0-4).")
	flag.Float64Var(&zoom, "zoom", fractal.DefaultZoom, "Zoom level (each step above 1 doubles magnification).")
	flag.Float64Var(&offset, "offset", fractal.DefaultCenterOffset, "Horizontal center offset.")
	flag.IntVar(&pass, "pass", 0, "Stop after this pass (0 = render to convergence).")
	flag.StringVar(&outPath, "out", "mandel.png", "Output PNG path.")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.Long())
		return
	}
	if width <= 0 || height <= 0 {
		fmt.Fprintln(os.Stderr, "error: -width and -height must be positive")
		os.Exit(2)
	}

	if err := run(width, height, iter, scheme, zoom, offset, pass, outPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(width, height, iter, scheme int, zoom, offset float64, pass int, outPath string) error {
	r := fractal.NewRenderer(width, height)
	params := fractal.Params{
		MaxIter:      iter,
		Scheme:       scheme,
		Zoom:         zoom,
		CenterOffset: offset,
	}.Map()

	for !r.Converged() {
		r.Update(0, params)
		if done, _ := r.Progress(); pass > 0 && done >= pass {
			break
		}
	}

	buf := r.Latest()
	if buf == nil {
		return fmt.Errorf("renderer produced no image")
	}
	img := image.Image(buf.Image())
	if buf.W != width || buf.H != height {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %q: %w", outPath, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", outPath, err)
	}

	fmt.Printf("wrote %s: %dx%d (pass divisor %d) %s\n", outPath, width, height, buf.Divisor, r.StateDescription())
	return nil
}
