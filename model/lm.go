package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Levenberg–Marquardt solver with box constraints, used by FitNSS. Steps are
// taken on the damped normal equations and projected back into the bounds.
const (
	lmMaxFuncEvals = 20000 // residual-vector evaluation budget
	lmInitLambda   = 1e-3
	lmLambdaUp     = 10.0
	lmLambdaDown   = 10.0
	lmMaxLambda    = 1e12
	lmCostTol      = 1e-12 // relative SSR improvement below which we stop
	lmGradTol      = 1e-10 // infinity norm of J'r at a solution
	lmDiffStep     = 1e-7  // relative forward-difference step for the Jacobian
)

type lmResult struct {
	params     []float64
	ssr        float64 // sum of squared residuals at params
	iterations int     // accepted steps
	funcEvals  int
}

// lmFit minimizes sum(f(p)^2) over p within [lower, upper]. f returns the
// residual vector; its length must not change between calls. p0 is clamped
// into the bounds before the first evaluation.
func lmFit(f func(p []float64) []float64, p0, lower, upper []float64, maxEvals int) (lmResult, error) {
	m := len(p0)
	if len(lower) != m || len(upper) != m {
		return lmResult{}, fmt.Errorf("lmFit: bounds length mismatch: %d params, %d/%d bounds",
			m, len(lower), len(upper))
	}
	for j := 0; j < m; j++ {
		if lower[j] > upper[j] {
			return lmResult{}, fmt.Errorf("lmFit: infeasible bounds for parameter %d: [%g, %g]: %w",
				j, lower[j], upper[j], ErrFitFailed)
		}
	}

	p := make([]float64, m)
	copy(p, p0)
	for j := range p {
		p[j] = clamp(p[j], lower[j], upper[j])
	}

	res := lmResult{params: p}
	r := f(p)
	res.funcEvals++
	n := len(r)
	if n == 0 {
		return lmResult{}, fmt.Errorf("lmFit: empty residual vector: %w", ErrFitFailed)
	}
	// n < m is allowed: the damping keeps the normal equations solvable for
	// underdetermined problems, as a bounded trust-region solver would.
	res.ssr = sumSquares(r)

	lambda := lmInitLambda
	jac := mat.NewDense(n, m, nil)
	rVec := mat.NewVecDense(n, nil)

	for res.funcEvals < maxEvals {
		// Forward-difference Jacobian, stepping inward at an active bound.
		for j := 0; j < m; j++ {
			h := lmDiffStep * math.Max(1.0, math.Abs(p[j]))
			if p[j]+h > upper[j] {
				h = -h
			}
			pj := p[j]
			p[j] = clamp(pj+h, lower[j], upper[j])
			rj := f(p)
			res.funcEvals++
			p[j] = pj
			for i := 0; i < n; i++ {
				jac.Set(i, j, (rj[i]-r[i])/h)
			}
		}

		for i := 0; i < n; i++ {
			rVec.SetVec(i, r[i])
		}

		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)
		var grad mat.VecDense
		grad.MulVec(jac.T(), rVec)

		if mat.Norm(&grad, math.Inf(1)) < lmGradTol {
			return res, nil
		}

		// Damped step: (J'J + lambda*diag(J'J)) dp = -J'r, retried with a
		// larger lambda until the step reduces the SSR.
		improved := false
		for lambda <= lmMaxLambda && res.funcEvals < maxEvals {
			var damped mat.Dense
			damped.CloneFrom(&jtj)
			for j := 0; j < m; j++ {
				d := jtj.At(j, j)
				if d < 1e-12 {
					d = 1e-12
				}
				damped.Set(j, j, d*(1+lambda))
			}

			var dp mat.VecDense
			if err := dp.SolveVec(&damped, &grad); err != nil {
				lambda *= lmLambdaUp
				continue
			}

			trial := make([]float64, m)
			for j := 0; j < m; j++ {
				trial[j] = clamp(p[j]-dp.AtVec(j), lower[j], upper[j])
			}

			rTrial := f(trial)
			res.funcEvals++
			ssrTrial := sumSquares(rTrial)

			if ssrTrial < res.ssr {
				relDrop := (res.ssr - ssrTrial) / (res.ssr + lmCostTol)
				copy(p, trial)
				r = rTrial
				res.ssr = ssrTrial
				res.iterations++
				lambda = math.Max(lambda/lmLambdaDown, 1e-12)
				improved = true
				if relDrop < lmCostTol {
					return res, nil
				}
				break
			}
			lambda *= lmLambdaUp
		}

		if !improved {
			if lambda > lmMaxLambda {
				// Stalled at a stationary point; accept it as converged.
				return res, nil
			}
			break
		}
	}

	if res.funcEvals >= maxEvals {
		return res, fmt.Errorf("lmFit: %d evaluations exhausted (ssr=%.6g): %w",
			res.funcEvals, res.ssr, ErrFitFailed)
	}
	return res, nil
}

func sumSquares(r []float64) float64 {
	var s float64
	for _, v := range r {
		s += v * v
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
