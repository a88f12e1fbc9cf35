package model

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/meenmo/yieldcurve/curve"
)

// NSSParams holds the six Nelson–Siegel–Svensson parameters.
//
//	y(t) = β0 + β1·term1(t,τ1) + β2·(term1(t,τ1) − exp(−t/τ1))
//	          + β3·(term1(t,τ2) − exp(−t/τ2))
//	term1(t,τ) = (1 − exp(−t/τ)) / (t/τ)
type NSSParams struct {
	Beta0 float64 // long-term level
	Beta1 float64 // short-term slope
	Beta2 float64 // medium-term curvature
	Beta3 float64 // second curvature factor
	Tau1  float64 // first decay, > 0
	Tau2  float64 // second decay, > 0
}

// FitReport summarizes the quality of an NSS fit.
type FitReport struct {
	RMSE       float64 // root mean squared residual, percent
	RSquared   float64 // coefficient of determination
	Points     int     // observations fitted
	Iterations int     // accepted Levenberg–Marquardt steps
	FuncEvals  int     // residual-vector evaluations spent
}

// NSS is a fitted Nelson–Siegel–Svensson yield curve. Immutable after
// construction via FitNSS.
type NSS struct {
	params NSSParams
	report FitReport
}

// Default range for GenerateCurve.
const (
	NSSCurveMinYears = 0.0
	NSSCurveMaxYears = 30.0
	NSSCurvePoints   = 300
)

// nssEpsilon replaces t = 0 to avoid the 0/0 in term1. The formula is
// otherwise defined for all real t.
const nssEpsilon = 1e-6

// NSSYield evaluates the closed-form NSS equation at maturity t (years) for
// the given parameters.
func NSSYield(t float64, p NSSParams) float64 {
	if t == 0 {
		t = nssEpsilon
	}

	e1 := math.Exp(-t / p.Tau1)
	e2 := math.Exp(-t / p.Tau2)
	term1 := (1 - e1) / (t / p.Tau1)
	term3 := (1 - e2) / (t / p.Tau2)

	return p.Beta0 + p.Beta1*term1 + p.Beta2*(term1-e1) + p.Beta3*(term3-e2)
}

// Fit bounds: betas are capped to keep curvature terms from running away,
// taus are floored at 0.01 to prevent the t/τ → ∞ singularity.
var (
	nssLower = []float64{-10, -20, -20, -20, 0.01, 0.01}
	nssUpper = []float64{20, 20, 20, 20, 50, 50}
)

// FitNSS solves the bounded nonlinear least-squares problem for the six NSS
// parameters over the curve's (maturity, yield) points. The initial guess
// anchors the level to the longest-maturity yield and the slope to the
// short-minus-long spread; this heuristic is load-bearing for convergence.
func FitNSS(c curve.Curve) (*NSS, error) {
	years, yields, err := c.Points()
	if err != nil {
		return nil, fmt.Errorf("FitNSS: %w", err)
	}
	if len(years) < 2 {
		return nil, fmt.Errorf("FitNSS: got %d points: %w", len(years), ErrTooFewPoints)
	}

	p0 := []float64{
		yields[len(yields)-1],            // beta0: long-term level
		yields[0] - yields[len(yields)-1], // beta1: slope
		-1.0,                             // beta2: curvature
		1.0,                              // beta3: curvature 2
		1.0,                              // tau1
		3.0,                              // tau2
	}

	residuals := func(p []float64) []float64 {
		q := NSSParams{p[0], p[1], p[2], p[3], p[4], p[5]}
		r := make([]float64, len(years))
		for i, t := range years {
			r[i] = NSSYield(t, q) - yields[i]
		}
		return r
	}

	res, err := lmFit(residuals, p0, nssLower, nssUpper, lmMaxFuncEvals)
	if err != nil {
		return nil, fmt.Errorf("FitNSS: %w", err)
	}

	m := &NSS{
		params: NSSParams{res.params[0], res.params[1], res.params[2],
			res.params[3], res.params[4], res.params[5]},
	}

	fitted := make([]float64, len(years))
	for i, t := range years {
		fitted[i] = NSSYield(t, m.params)
	}
	m.report = FitReport{
		RMSE:       math.Sqrt(res.ssr / float64(len(years))),
		RSquared:   stat.RSquaredFrom(fitted, yields, nil),
		Points:     len(years),
		Iterations: res.iterations,
		FuncEvals:  res.funcEvals,
	}
	return m, nil
}

// Evaluate returns the NSS yield in percent at maturity t (years).
//
// Unlike Spline.Evaluate, negative maturities are not rejected: the formula
// is defined for all real t, and the original model kept that behavior.
// Values below 0 are economically meaningless.
func (m *NSS) Evaluate(t float64) (float64, error) {
	return NSSYield(t, m.params), nil
}

// EvaluateAll evaluates the model over a slice of maturities.
func (m *NSS) EvaluateAll(ts []float64) ([]float64, error) {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = NSSYield(t, m.params)
	}
	return out, nil
}

// Params returns the fitted parameters.
func (m *NSS) Params() NSSParams { return m.params }

// Report returns the fit diagnostics recorded at construction.
func (m *NSS) Report() FitReport { return m.report }

// GenerateCurve evaluates the model on num evenly spaced maturities in
// [minT, maxT]. The conventional plotting range is 0–30 years, 300 points
// (NSSCurveMinYears, NSSCurveMaxYears, NSSCurvePoints).
func (m *NSS) GenerateCurve(minT, maxT float64, num int) (ts, ys []float64, err error) {
	if num < 2 {
		return nil, nil, fmt.Errorf("NSS.GenerateCurve: num=%d, want >= 2", num)
	}
	if maxT <= minT {
		return nil, nil, fmt.Errorf("NSS.GenerateCurve: empty range [%g, %g]", minT, maxT)
	}
	ts = make([]float64, num)
	floats.Span(ts, minT, maxT)
	ys, _ = m.EvaluateAll(ts)
	return ts, ys, nil
}

// Summary formats the fitted parameters and diagnostics for display.
func (m *NSS) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nelson-Siegel-Svensson parameters:\n")
	fmt.Fprintf(&b, "  beta0 (level):      %10.6f\n", m.params.Beta0)
	fmt.Fprintf(&b, "  beta1 (slope):      %10.6f\n", m.params.Beta1)
	fmt.Fprintf(&b, "  beta2 (curvature):  %10.6f\n", m.params.Beta2)
	fmt.Fprintf(&b, "  beta3 (curvature2): %10.6f\n", m.params.Beta3)
	fmt.Fprintf(&b, "  tau1  (decay):      %10.6f\n", m.params.Tau1)
	fmt.Fprintf(&b, "  tau2  (decay2):     %10.6f\n", m.params.Tau2)
	fmt.Fprintf(&b, "  fit: rmse=%.6f r2=%.6f points=%d iters=%d evals=%d\n",
		m.report.RMSE, m.report.RSquared, m.report.Points,
		m.report.Iterations, m.report.FuncEvals)
	return b.String()
}

var _ Model = (*NSS)(nil)
