package main

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/goprima/internal/opt"
	"github.com/cwbudde/goprima/internal/trace"
	"github.com/cwbudde/goprima/prima"
	"github.com/spf13/cobra"
)

var (
	algName     string
	x0Spec      string
	constrained bool
	bounded     bool
	rhoBeg      float64
	rhoEnd      float64
	maxFun      int
	fTarget     float64
	npt         int
	ctol        float64
	tracePath   string
	patience    int
	threshold   float64
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the built-in demonstration problem",
	Long: `Minimizes f(x) = sum_i (x_i - t_i)^2 with targets t = (5, 4, 3, ...),
optionally subject to the nonlinear constraint x_1^2 <= 9 (COBYLA) or the
box bounds [-1, 4.5]^n (BOBYQA, LINCOA, COBYLA).`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&algName, "algorithm", "NEWUOA", "Solver: COBYLA, UOBYQA, NEWUOA, BOBYQA, LINCOA")
	solveCmd.Flags().StringVar(&x0Spec, "x0", "0,0", "Initial point, comma-separated")
	solveCmd.Flags().BoolVar(&constrained, "constrained", false, "Add the nonlinear constraint x_1^2 <= 9 (forces COBYLA)")
	solveCmd.Flags().BoolVar(&bounded, "bounded", false, "Add box bounds [-1, 4.5] on every variable")
	solveCmd.Flags().Float64Var(&rhoBeg, "rhobeg", math.NaN(), "Initial trust-region radius (NaN = solver default)")
	solveCmd.Flags().Float64Var(&rhoEnd, "rhoend", 1e-6, "Final trust-region radius")
	solveCmd.Flags().IntVar(&maxFun, "maxfun", 0, "Max function evaluations (0 = 500*n)")
	solveCmd.Flags().Float64Var(&fTarget, "ftarget", math.Inf(-1), "Stop once the objective reaches this value")
	solveCmd.Flags().IntVar(&npt, "npt", 0, "Interpolation points (0 = 2n+1)")
	solveCmd.Flags().Float64Var(&ctol, "ctol", math.NaN(), "Constraint violation tolerance (NaN = solver default)")
	solveCmd.Flags().StringVar(&tracePath, "trace", "", "Write a JSONL progress trace to this path")
	solveCmd.Flags().IntVar(&patience, "patience", 0, "Stop after this many stalled progress reports (0 = disabled)")
	solveCmd.Flags().Float64Var(&threshold, "threshold", 0.001, "Relative improvement below which a report counts as stalled")

	rootCmd.AddCommand(solveCmd)
}

// demoTargets returns the shifted-quadratic targets (5, 4, 3, ...).
func demoTargets(n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(5 - i)
	}
	return t
}

func demoObjective(x []float64) float64 {
	sum := 0.0
	for i, t := range demoTargets(len(x)) {
		sum += (x[i] - t) * (x[i] - t)
	}
	return sum
}

// parseVector parses a comma-separated list of floats.
func parseVector(spec string) ([]float64, error) {
	parts := strings.Split(spec, ",")
	v := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", part, err)
		}
		v = append(v, f)
	}
	return v, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	x0, err := parseVector(x0Spec)
	if err != nil {
		return err
	}
	n := len(x0)

	algorithm, err := prima.ParseAlgorithm(algName)
	if err != nil {
		return err
	}
	if constrained && algorithm != prima.COBYLA {
		slog.Info("Nonlinear constraint requested, switching to COBYLA")
		algorithm = prima.COBYLA
	}

	problem := prima.NewProblem(n)
	problem.X0 = x0

	if constrained {
		problem.MNlcon = 1
		problem.ObjectiveCon = func(x, con []float64, _ any) float64 {
			con[0] = x[0]*x[0] - 9
			return demoObjective(x)
		}
		if err := problem.EvaluateInitial(nil); err != nil {
			return err
		}
	} else {
		problem.Objective = func(x []float64, _ any) float64 {
			return demoObjective(x)
		}
	}

	if bounded {
		problem.XL = make([]float64, n)
		problem.XU = make([]float64, n)
		for i := 0; i < n; i++ {
			problem.XL[i] = -1
			problem.XU[i] = 4.5
		}
	}

	options := prima.NewOptions()
	options.RhoBeg = rhoBeg
	options.RhoEnd = rhoEnd
	options.MaxFun = maxFun
	options.FTarget = fTarget
	options.NPT = npt
	options.CTol = ctol

	var traceWriter *trace.Writer
	if tracePath != "" {
		traceWriter, err = trace.NewWriter(tracePath)
		if err != nil {
			return err
		}
		defer traceWriter.Close()
	}

	var stall prima.ProgressFunc
	if patience > 0 {
		stall = opt.EarlyStop(opt.ConvergenceConfig{Patience: patience, Threshold: threshold})
	}

	options.Callback = func(p prima.Progress, data any) bool {
		slog.Debug("Solver progress", "nf", p.NF, "f", p.F, "cstrv", p.CStrv)
		if traceWriter != nil {
			entry := trace.Entry{
				NF:        p.NF,
				F:         p.F,
				CStrv:     p.CStrv,
				Timestamp: time.Now().UTC(),
				// The progress point is a borrowed view; copy before retaining
				X: append([]float64(nil), p.X...),
			}
			if err := traceWriter.Write(entry); err != nil {
				slog.Warn("Failed to write trace entry", "error", err)
			}
		}
		return stall != nil && stall(p, data)
	}

	slog.Info("Starting solve", "algorithm", algorithm.String(), "n", n, "constrained", constrained, "bounded", bounded)
	start := time.Now()

	result, solveErr := prima.Minimize(algorithm, problem, options)
	if result == nil {
		return solveErr
	}
	defer result.Free()

	elapsed := time.Since(start)
	slog.Info("Solve finished",
		"elapsed", elapsed,
		"status", result.Status().String(),
		"success", result.Success(),
		"f", result.F(),
		"cstrv", result.ConstrViolation(),
		"nf", result.NF(),
	)
	if solveErr != nil {
		slog.Warn("Solver reported a failure, best point may be partial", "error", solveErr)
	}

	fmt.Printf("%s: x=%v f=%g nf=%d (%s)\n",
		algorithm.String(), result.X(), result.F(), result.NF(), result.Message())

	return nil
}
