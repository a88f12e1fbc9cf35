package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/meenmo/yieldcurve/curve"
)

// Spline interpolates a yield curve with a natural cubic spline: zero second
// derivative at both boundary nodes, passing through every observed point
// exactly. Immutable after construction.
type Spline struct {
	years  []float64
	yields []float64
	nc     interp.NaturalCubic
}

// NewSpline fits a natural cubic spline through the curve's points, sorted
// ascending by maturity. At least two distinct maturities are required.
func NewSpline(c curve.Curve) (*Spline, error) {
	years, yields, err := c.Points()
	if err != nil {
		return nil, fmt.Errorf("NewSpline: %w", err)
	}
	if len(years) < 2 {
		return nil, fmt.Errorf("NewSpline: got %d points: %w", len(years), ErrTooFewPoints)
	}

	s := &Spline{years: years, yields: yields}
	if err := s.nc.Fit(years, yields); err != nil {
		return nil, fmt.Errorf("NewSpline: %w", err)
	}
	return s, nil
}

// Evaluate returns the interpolated yield in percent at maturity t (years).
// Maturities outside the node range extrapolate under the natural boundary
// conditions; negative maturities are rejected.
func (s *Spline) Evaluate(t float64) (float64, error) {
	if t < 0 {
		return 0, fmt.Errorf("Spline.Evaluate: t=%g: %w", t, ErrNegativeMaturity)
	}
	return s.nc.Predict(t), nil
}

// EvaluateAll evaluates the spline over a slice of maturities.
func (s *Spline) EvaluateAll(ts []float64) ([]float64, error) {
	out := make([]float64, len(ts))
	for i, t := range ts {
		y, err := s.Evaluate(t)
		if err != nil {
			return nil, err
		}
		out[i] = y
	}
	return out, nil
}

// Derivative returns the spline's analytic first derivative at maturity t,
// in percent per year. Used for instantaneous forward rates.
func (s *Spline) Derivative(t float64) (float64, error) {
	if t < 0 {
		return 0, fmt.Errorf("Spline.Derivative: t=%g: %w", t, ErrNegativeMaturity)
	}
	return s.nc.PredictDerivative(t), nil
}

// Nodes returns the sorted node maturities and yields the spline was built
// from.
func (s *Spline) Nodes() (years, yields []float64) {
	years = make([]float64, len(s.years))
	yields = make([]float64, len(s.yields))
	copy(years, s.years)
	copy(yields, s.yields)
	return years, yields
}

// GenerateCurve evaluates the spline on num evenly spaced maturities between
// the first and last node. Convenience for plotting.
func (s *Spline) GenerateCurve(num int) (ts, ys []float64, err error) {
	if num < 2 {
		return nil, nil, fmt.Errorf("Spline.GenerateCurve: num=%d, want >= 2", num)
	}
	ts = make([]float64, num)
	floats.Span(ts, s.years[0], s.years[len(s.years)-1])
	ys, err = s.EvaluateAll(ts)
	if err != nil {
		return nil, nil, err
	}
	return ts, ys, nil
}

var (
	_ Model          = (*Spline)(nil)
	_ Differentiable = (*Spline)(nil)
)
