package fractal

import "testing"

func TestEvaluateDeterministic(t *testing.T) {
	a := Evaluate(-0.1056, 0.9023, 500)
	b := Evaluate(-0.1056, 0.9023, 500)
	if a != b {
		t.Fatalf("same input produced %+v and %+v", a, b)
	}
}

func TestEvaluateOriginNeverEscapes(t *testing.T) {
	for _, n := range []int{1, 2, 10, 100, 1000} {
		res := Evaluate(0, 0, n)
		if res.Escaped {
			t.Fatalf("origin escaped at maxIter=%d", n)
		}
		if res.Iterations != n {
			t.Fatalf("origin iterations=%d, want %d", res.Iterations, n)
		}
	}
}

func TestEvaluateImmediateEscape(t *testing.T) {
	res := Evaluate(3, 0, 50)
	if !res.Escaped {
		t.Fatalf("c=3 did not escape")
	}
	if res.Iterations != 1 {
		t.Fatalf("c=3 escaped at iteration %d, want 1", res.Iterations)
	}
	if res.MagSq != 9 {
		t.Fatalf("c=3 magSq=%v, want 9", res.MagSq)
	}
}

func TestEvaluateKnownOrbit(t *testing.T) {
	// c = 0.5+0.5i leaves the bailout disk on the fifth iteration; every
	// intermediate value is an exact dyadic, so the count is stable.
	res := Evaluate(0.5, 0.5, 50)
	if !res.Escaped {
		t.Fatalf("c=0.5+0.5i did not escape")
	}
	if res.Iterations != 5 {
		t.Fatalf("escaped at iteration %d, want 5", res.Iterations)
	}
	if res.MagSq <= 4 {
		t.Fatalf("escape magSq=%v, want > 4", res.MagSq)
	}
}

func TestEvaluateBoundaryStaysBounded(t *testing.T) {
	// c=-2 orbits 0, -2, 2, 2, ... with |z| exactly at the bailout radius;
	// the strict > test keeps it in the set.
	res := Evaluate(-2, 0, 200)
	if res.Escaped {
		t.Fatalf("c=-2 escaped at iteration %d", res.Iterations)
	}
	if res.Iterations != 200 {
		t.Fatalf("bounded point iterations=%d, want 200", res.Iterations)
	}
}
