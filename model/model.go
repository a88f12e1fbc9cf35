// Package model fits continuous yield functions to discrete maturity/yield
// observations. Two implementations are provided: a natural cubic spline
// interpolant (Spline) and the parametric Nelson–Siegel–Svensson regression
// (NSS). Both evaluate yields in percent at maturities in years.
package model

import "errors"

// Errors shared by both model constructors and evaluators.
var (
	// ErrTooFewPoints reports a curve with fewer than two distinct maturities.
	ErrTooFewPoints = errors.New("need at least 2 curve points")
	// ErrNegativeMaturity reports an evaluation request below t = 0.
	ErrNegativeMaturity = errors.New("maturity must be >= 0")
	// ErrFitFailed reports a nonlinear fit that did not converge within its
	// function evaluation budget.
	ErrFitFailed = errors.New("curve fit did not converge")
)

// Model is a fitted yield curve evaluable at arbitrary maturities in years.
type Model interface {
	// Evaluate returns the model yield in percent at maturity t.
	Evaluate(t float64) (float64, error)
	// EvaluateAll evaluates the model over a slice of maturities.
	EvaluateAll(ts []float64) ([]float64, error)
}

// Differentiable is implemented by models that expose an analytic first
// derivative. Forward-rate computation branches on this capability rather
// than on concrete model type: models without it fall back to a numerical
// gradient.
type Differentiable interface {
	// Derivative returns dy/dt in percent per year at maturity t.
	Derivative(t float64) (float64, error)
}
