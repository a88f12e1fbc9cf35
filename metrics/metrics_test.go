package metrics_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/yieldcurve/curve"
	"github.com/meenmo/yieldcurve/metrics"
	"github.com/meenmo/yieldcurve/model"
)

func TestSlope(t *testing.T) {
	t.Parallel()

	c := curve.Curve{"2Y": 3.57, "10Y": 4.11}
	got, err := metrics.Slope(c, metrics.DefaultShort, metrics.DefaultLong)
	if err != nil {
		t.Fatalf("Slope error: %v", err)
	}
	if math.Abs(got-0.54) > 1e-9 {
		t.Fatalf("Slope = %v, want 0.54", got)
	}
}

func TestSlopeMissingTag(t *testing.T) {
	t.Parallel()

	c := curve.Curve{"2Y": 3.57}
	if _, err := metrics.Slope(c, "2Y", "10Y"); !errors.Is(err, metrics.ErrMissingTag) {
		t.Fatalf("Slope: want ErrMissingTag, got %v", err)
	}
	if _, err := metrics.Slope(c, "3M", "2Y"); !errors.Is(err, metrics.ErrMissingTag) {
		t.Fatalf("Slope: want ErrMissingTag, got %v", err)
	}
}

func TestCurvature(t *testing.T) {
	t.Parallel()

	c := curve.Curve{"2Y": 3.57, "5Y": 3.69, "10Y": 4.11}
	got, err := metrics.Curvature(c, metrics.DefaultShort, metrics.DefaultMedium, metrics.DefaultLong)
	if err != nil {
		t.Fatalf("Curvature error: %v", err)
	}
	// 2*3.69 - 3.57 - 4.11
	if math.Abs(got-(-0.30)) > 1e-9 {
		t.Fatalf("Curvature = %v, want -0.30", got)
	}
}

func TestCurvatureMissingTag(t *testing.T) {
	t.Parallel()

	c := curve.Curve{"2Y": 3.57, "10Y": 4.11}
	if _, err := metrics.Curvature(c, "2Y", "5Y", "10Y"); !errors.Is(err, metrics.ErrMissingTag) {
		t.Fatalf("Curvature: want ErrMissingTag, got %v", err)
	}
}

func TestForwardRatesFlatAnalytic(t *testing.T) {
	t.Parallel()

	// Flat curve: y'(t) = 0 everywhere, so f(t) = y(t).
	c := curve.Curve{"1Y": 4.0, "2Y": 4.0, "5Y": 4.0, "10Y": 4.0}
	s, err := model.NewSpline(c)
	if err != nil {
		t.Fatalf("NewSpline error: %v", err)
	}

	grid := []float64{1, 2, 3.5, 5, 10}
	forwards, err := metrics.ForwardRates(s, grid)
	if err != nil {
		t.Fatalf("ForwardRates error: %v", err)
	}
	for i, f := range forwards {
		if math.Abs(f-4.0) > 1e-9 {
			t.Fatalf("forwards[%d] = %v, want 4.0", i, f)
		}
	}
}

// linearModel has no analytic derivative, forcing the numerical-gradient
// branch of ForwardRates.
type linearModel struct{ a, b float64 }

func (m linearModel) Evaluate(t float64) (float64, error) { return m.a + m.b*t, nil }

func (m linearModel) EvaluateAll(ts []float64) ([]float64, error) {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = m.a + m.b*t
	}
	return out, nil
}

func TestForwardRatesNumericFallback(t *testing.T) {
	t.Parallel()

	m := linearModel{a: 2.0, b: 0.1}
	grid := []float64{1, 2, 4, 7, 10}
	forwards, err := metrics.ForwardRates(m, grid)
	if err != nil {
		t.Fatalf("ForwardRates error: %v", err)
	}
	// Central differences are exact on a linear curve: f(t) = a + 2bt.
	for i, ty := range grid {
		want := 2.0 + 0.2*ty
		if math.Abs(forwards[i]-want) > 1e-9 {
			t.Fatalf("forwards[%d] = %v, want %v", i, forwards[i], want)
		}
	}
}

func TestForwardRatesShortGrid(t *testing.T) {
	t.Parallel()

	if _, err := metrics.ForwardRates(linearModel{a: 2, b: 0.1}, []float64{1}); err == nil {
		t.Fatal("ForwardRates: want error for 1-point grid without derivative, got nil")
	}
}

func TestDurationFlatCurve(t *testing.T) {
	t.Parallel()

	// Zero-coupon modified duration approximately equals maturity for small
	// yields, so a flat curve at maturity t returns close to t.
	c := curve.Curve{"1Y": 4.0, "2Y": 4.0, "5Y": 4.0, "10Y": 4.0}
	s, err := model.NewSpline(c)
	if err != nil {
		t.Fatalf("NewSpline error: %v", err)
	}

	for _, ty := range []float64{1, 2, 5, 10} {
		dur, err := metrics.DurationApprox(s, ty, 0.01)
		if err != nil {
			t.Fatalf("DurationApprox(%v) error: %v", ty, err)
		}
		if math.Abs(dur-ty)/ty > 0.03 {
			t.Fatalf("DurationApprox(%v) = %v, want within 3%% of %v", ty, dur, ty)
		}
	}
}

func TestDurationZeroPerturbation(t *testing.T) {
	t.Parallel()

	s, err := model.NewSpline(curve.Curve{"1Y": 4.0, "10Y": 4.0})
	if err != nil {
		t.Fatalf("NewSpline error: %v", err)
	}
	if _, err := metrics.DurationApprox(s, 5, 0); err == nil {
		t.Fatal("DurationApprox: want error for zero perturbation, got nil")
	}
}
