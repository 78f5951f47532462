package fractal

// EscapeResult is the outcome of iterating one point of the complex plane.
//
// MagSq carries |z|² at the moment the orbit left the bailout disk; the
// smooth-coloring step in frame.go needs it. For bounded points it holds
// the magnitude after the final iteration.
type EscapeResult struct {
	Iterations int
	Escaped    bool
	MagSq      float64
}

// Evaluate iterates z ← z² + c from z = 0 and reports the iteration at
// which the orbit leaves the disk of radius 2 (|z|² > 4), up to maxIter.
// A point that never leaves comes back with Escaped false and Iterations
// equal to maxIter.
//
// The loop tracks the squared components so each iteration costs three
// multiplications. Deterministic: equal inputs give equal results.
func Evaluate(cr, ci float64, maxIter int) EscapeResult {
	var zr, zi, zr2, zi2 float64
	for i := 0; i < maxIter; i++ {
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2 = zr * zr
		zi2 = zi * zi
		if zr2+zi2 > 4 {
			return EscapeResult{Iterations: i + 1, Escaped: true, MagSq: zr2 + zi2}
		}
	}
	return EscapeResult{Iterations: maxIter, Escaped: false, MagSq: zr2 + zi2}
}
