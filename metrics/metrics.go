// Package metrics computes slope, curvature, forward-rate and duration
// measures from a raw yield curve or a fitted model.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/meenmo/yieldcurve/curve"
	"github.com/meenmo/yieldcurve/model"
)

// ErrMissingTag reports a maturity tag absent from the supplied curve.
var ErrMissingTag = errors.New("maturity not found in curve")

// Conventional tags for slope and curvature.
const (
	DefaultShort  = "2Y"
	DefaultMedium = "5Y"
	DefaultLong   = "10Y"
)

// Slope returns curve[long] - curve[short] in percentage points. The 2s10s
// slope uses DefaultShort and DefaultLong.
func Slope(c curve.Curve, short, long string) (float64, error) {
	s, ok := c[short]
	if !ok {
		return 0, fmt.Errorf("Slope: %q: %w", short, ErrMissingTag)
	}
	l, ok := c[long]
	if !ok {
		return 0, fmt.Errorf("Slope: %q: %w", long, ErrMissingTag)
	}
	return l - s, nil
}

// Curvature returns 2*curve[medium] - curve[short] - curve[long]. Positive
// values indicate a humped curve (belly above the ends), negative a bowed
// one.
func Curvature(c curve.Curve, short, medium, long string) (float64, error) {
	s, ok := c[short]
	if !ok {
		return 0, fmt.Errorf("Curvature: %q: %w", short, ErrMissingTag)
	}
	m, ok := c[medium]
	if !ok {
		return 0, fmt.Errorf("Curvature: %q: %w", medium, ErrMissingTag)
	}
	l, ok := c[long]
	if !ok {
		return 0, fmt.Errorf("Curvature: %q: %w", long, ErrMissingTag)
	}
	return 2*m - s - l, nil
}

// ForwardRates computes the instantaneous forward rate f(t) = y(t) + t*y'(t)
// at each maturity in grid (years, ascending).
//
// Models exposing an analytic derivative (model.Differentiable) use it
// directly. Anything else falls back to a central-difference gradient over
// the supplied grid, one-sided at the edges — accuracy then depends on grid
// spacing, and sparse or irregular grids degrade it.
func ForwardRates(m model.Model, grid []float64) ([]float64, error) {
	yields, err := m.EvaluateAll(grid)
	if err != nil {
		return nil, fmt.Errorf("ForwardRates: %w", err)
	}

	forwards := make([]float64, len(grid))

	if d, ok := m.(model.Differentiable); ok {
		for i, t := range grid {
			dy, err := d.Derivative(t)
			if err != nil {
				return nil, fmt.Errorf("ForwardRates: %w", err)
			}
			forwards[i] = yields[i] + t*dy
		}
		return forwards, nil
	}

	if len(grid) < 2 {
		return nil, fmt.Errorf("ForwardRates: numerical gradient needs >= 2 grid points, got %d", len(grid))
	}
	for i, t := range grid {
		var dy float64
		switch {
		case i == 0:
			dy = (yields[1] - yields[0]) / (grid[1] - grid[0])
		case i == len(grid)-1:
			dy = (yields[i] - yields[i-1]) / (grid[i] - grid[i-1])
		default:
			dy = (yields[i+1] - yields[i-1]) / (grid[i+1] - grid[i-1])
		}
		forwards[i] = yields[i] + t*dy
	}
	return forwards, nil
}

// DurationApprox estimates modified duration at the given maturity by
// treating the point as a zero-coupon bond, P(y) = exp(-y/100*t), and
// perturbing the model yield by yieldChange percentage points (0.01 = 1bp).
//
// The perturbation is converted to decimal in the denominator so the result
// is in years: a flat curve at maturity t returns approximately t. The
// one-sided difference carries first-order bias, accepted here.
func DurationApprox(m model.Model, maturity, yieldChange float64) (float64, error) {
	if yieldChange == 0 {
		return 0, fmt.Errorf("DurationApprox: yieldChange must be nonzero")
	}

	y0, err := m.Evaluate(maturity)
	if err != nil {
		return 0, fmt.Errorf("DurationApprox: %w", err)
	}
	p0 := math.Exp(-y0 / 100.0 * maturity)
	p1 := math.Exp(-(y0 + yieldChange) / 100.0 * maturity)

	dPdy := (p1 - p0) / (yieldChange / 100.0)
	return -dPdy / p0, nil
}
