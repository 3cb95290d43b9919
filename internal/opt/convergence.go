package opt

import (
	"log/slog"
	"math"

	"github.com/cwbudde/goprima/prima"
)

// ConvergenceConfig defines parameters for detecting a stalled solve
type ConvergenceConfig struct {
	// Patience is the number of progress reports with no improvement
	// before the solve is stopped
	Patience int

	// Threshold is the minimum relative improvement required to count as
	// progress. Example: 0.001 = 0.1% improvement required.
	// Relative improvement = (oldF - newF) / |oldF|
	Threshold float64
}

// DefaultConvergenceConfig returns sensible defaults for stall detection
func DefaultConvergenceConfig() ConvergenceConfig {
	return ConvergenceConfig{
		Patience:  5,
		Threshold: 0.001, // 0.1% improvement
	}
}

// ConvergenceTracker tracks the objective history across progress reports
// and detects when a solve has stopped making progress
type ConvergenceTracker struct {
	config          ConvergenceConfig
	bestF           float64 // Best objective ever seen
	lastSignificant float64 // Last objective that was a significant improvement
	staleCount      int     // Number of reports without significant improvement
	reports         int
}

// NewConvergenceTracker creates a new tracker with the given config
func NewConvergenceTracker(config ConvergenceConfig) *ConvergenceTracker {
	return &ConvergenceTracker{
		config:          config,
		bestF:           math.Inf(1),
		lastSignificant: math.Inf(1),
	}
}

// Update records a new objective value and returns true once the solve has
// stalled for longer than the configured patience
func (c *ConvergenceTracker) Update(f float64) bool {
	c.reports++

	if f < c.bestF {
		c.bestF = f
	}

	// First report - initialize the reference point
	if c.reports == 1 {
		c.lastSignificant = f
		return false
	}

	relativeImprovement := (c.lastSignificant - f) / math.Abs(c.lastSignificant)

	if relativeImprovement >= c.config.Threshold {
		c.lastSignificant = f
		c.staleCount = 0
		return false
	}

	c.staleCount++
	if c.staleCount >= c.config.Patience {
		slog.Info("Solve stalled - stopping early",
			"stale_count", c.staleCount,
			"patience", c.config.Patience,
			"best_f", c.bestF,
		)
		return true
	}
	return false
}

// BestF returns the best objective value seen so far
func (c *ConvergenceTracker) BestF() float64 {
	return c.bestF
}

// StaleCount returns the current number of reports without improvement
func (c *ConvergenceTracker) StaleCount() int {
	return c.staleCount
}

// EarlyStop builds a progress callback that terminates the solve once the
// tracker detects a stall. The solver reports the termination as
// "stopped by callback", never as convergence.
func EarlyStop(config ConvergenceConfig) prima.ProgressFunc {
	tracker := NewConvergenceTracker(config)
	return func(p prima.Progress, _ any) bool {
		return tracker.Update(p.F)
	}
}
