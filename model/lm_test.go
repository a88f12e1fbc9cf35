package model

import (
	"errors"
	"math"
	"testing"
)

func TestLMFitLinearResiduals(t *testing.T) {
	t.Parallel()

	xs := []float64{0, 1, 2, 3, 4}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2.0 + 3.0*x
	}

	f := func(p []float64) []float64 {
		r := make([]float64, len(xs))
		for i, x := range xs {
			r[i] = p[0] + p[1]*x - ys[i]
		}
		return r
	}

	res, err := lmFit(f, []float64{0, 0}, []float64{-100, -100}, []float64{100, 100}, 20000)
	if err != nil {
		t.Fatalf("lmFit error: %v", err)
	}
	if math.Abs(res.params[0]-2.0) > 1e-4 || math.Abs(res.params[1]-3.0) > 1e-4 {
		t.Fatalf("lmFit params = %v, want [2, 3]", res.params)
	}
	if res.ssr > 1e-6 {
		t.Fatalf("lmFit ssr = %v, want near 0", res.ssr)
	}
}

func TestLMFitRespectsBounds(t *testing.T) {
	t.Parallel()

	// Best unconstrained fit is p0 = 10; the box caps it at 5.
	f := func(p []float64) []float64 {
		return []float64{p[0] - 10, p[0] - 10}
	}

	res, err := lmFit(f, []float64{0}, []float64{-5}, []float64{5}, 20000)
	if err != nil {
		t.Fatalf("lmFit error: %v", err)
	}
	if res.params[0] > 5+1e-12 {
		t.Fatalf("lmFit param = %v, exceeds upper bound 5", res.params[0])
	}
}

func TestLMFitInfeasibleBounds(t *testing.T) {
	t.Parallel()

	f := func(p []float64) []float64 { return []float64{p[0]} }
	if _, err := lmFit(f, []float64{0}, []float64{1}, []float64{-1}, 20000); !errors.Is(err, ErrFitFailed) {
		t.Fatalf("lmFit infeasible bounds: want ErrFitFailed, got %v", err)
	}
}

func TestLMFitClampsInitialGuess(t *testing.T) {
	t.Parallel()

	f := func(p []float64) []float64 {
		return []float64{p[0] - 1, p[0] - 1}
	}
	res, err := lmFit(f, []float64{50}, []float64{0}, []float64{2}, 20000)
	if err != nil {
		t.Fatalf("lmFit error: %v", err)
	}
	if math.Abs(res.params[0]-1.0) > 1e-6 {
		t.Fatalf("lmFit param = %v, want 1", res.params[0])
	}
}
