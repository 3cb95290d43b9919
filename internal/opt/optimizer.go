package opt

// Optimizer defines a derivative-free minimization algorithm interface
type Optimizer interface {
	// Run executes the optimization
	// eval: objective function to minimize
	// lower, upper: parameter bounds
	// dim: dimensionality of parameter space
	// Returns: best parameters and best objective value
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}
