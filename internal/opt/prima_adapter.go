package opt

import (
	"log/slog"

	"github.com/cwbudde/goprima/prima"
)

// PrimaAdapter wraps the PRIMA bridge to conform to our Optimizer interface.
// It covers the unconstrained and bound-constrained solvers; COBYLA's joint
// objective/constraint callback does not fit the plain eval signature.
type PrimaAdapter struct {
	algorithm prima.Algorithm
	maxFun    int
	rhoEnd    float64
}

// NewPrima creates a new PRIMA optimizer adapter
func NewPrima(algorithm prima.Algorithm, maxFun int, rhoEnd float64) Optimizer {
	return &PrimaAdapter{
		algorithm: algorithm,
		maxFun:    maxFun,
		rhoEnd:    rhoEnd,
	}
}

// Run executes the optimization through the foreign PRIMA solver
func (a *PrimaAdapter) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	problem := prima.NewProblem(dim)

	// Start at the box center
	x0 := make([]float64, dim)
	for i := range x0 {
		x0[i] = (lower[i] + upper[i]) / 2
	}
	problem.X0 = x0
	problem.Objective = func(x []float64, _ any) float64 {
		return eval(x)
	}

	// Bounds only for the solvers that accept them; the others search the
	// whole space from the box center.
	if a.algorithm == prima.BOBYQA || a.algorithm == prima.LINCOA {
		problem.XL = lower
		problem.XU = upper
	}

	opts := prima.NewOptions()
	opts.MaxFun = a.maxFun
	opts.RhoEnd = a.rhoEnd

	result, err := prima.Minimize(a.algorithm, problem, opts)
	if err != nil {
		// Fallback to the box center if the solve fails outright
		slog.Warn("PRIMA solve failed", "algorithm", a.algorithm.String(), "error", err)
		if result != nil {
			result.Free()
		}
		return x0, eval(x0)
	}
	defer result.Free()

	return result.X(), result.F()
}
