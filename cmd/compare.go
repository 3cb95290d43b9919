package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/goprima/internal/opt"
	"github.com/cwbudde/goprima/prima"
	"github.com/spf13/cobra"
)

var (
	compareAlg string
	cmpMaxFun  int
	cmpIters   int
	cmpPop     int
	cmpSeed    int64
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a PRIMA solver against the pure-Go mayfly optimizer",
	Long: `Runs the built-in demonstration objective through a PRIMA solver and
through the mayfly evolutionary optimizer with matching budgets, and
reports both minima.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareAlg, "algorithm", "BOBYQA", "PRIMA solver to compare against")
	compareCmd.Flags().IntVar(&cmpMaxFun, "maxfun", 1000, "PRIMA function evaluation budget")
	compareCmd.Flags().IntVar(&cmpIters, "iters", 100, "Mayfly iterations")
	compareCmd.Flags().IntVar(&cmpPop, "pop", 30, "Mayfly population size")
	compareCmd.Flags().Int64Var(&cmpSeed, "seed", 42, "Mayfly random seed")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	algorithm, err := prima.ParseAlgorithm(compareAlg)
	if err != nil {
		return err
	}

	const dim = 2
	lower := []float64{-10, -10}
	upper := []float64{10, 10}
	eval := demoObjective

	optimizers := []struct {
		name string
		opt  opt.Optimizer
	}{
		{algorithm.String(), opt.NewPrima(algorithm, cmpMaxFun, 1e-6)},
		{"mayfly", opt.NewMayfly(cmpIters, cmpPop, cmpSeed)},
	}

	for _, o := range optimizers {
		start := time.Now()
		x, f := o.opt.Run(eval, lower, upper, dim)
		elapsed := time.Since(start)

		slog.Info("Optimizer finished", "optimizer", o.name, "f", f, "elapsed", elapsed)
		fmt.Printf("%-8s x=%v f=%g (%s)\n", o.name, x, f, elapsed)
	}

	return nil
}
