// Package prima provides Go bindings for the PRIMA optimization library,
// modern implementations of M. J. D. Powell's derivative-free optimization
// methods (COBYLA, UOBYQA, NEWUOA, BOBYQA and LINCOA).
//
// PRIMA's C interface follows an allocate-then-initialize struct protocol
// and hands out raw buffers with externally supplied lengths. This package
// hides both behind builders that always return fully-defined descriptors,
// bounds-checked slice views created at the boundary, and a Result wrapper
// that releases the solver-allocated memory exactly once.
//
// A minimal unconstrained solve looks like:
//
//	problem := prima.NewProblem(2)
//	problem.X0 = []float64{0, 0}
//	problem.Objective = func(x []float64, _ any) float64 {
//		return math.Pow(x[0]-5, 2) + math.Pow(x[1]-4, 2)
//	}
//
//	result, err := prima.Minimize(prima.NEWUOA, problem, prima.NewOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer result.Free()
//	fmt.Println(result.X(), result.F())
//
// Solves are serialized within the process: the progress callback of the C
// interface carries no user-data argument, so callback dispatch relies on
// package state guarded by a mutex held for the duration of the solve.
package prima

/*
#cgo LDFLAGS: -lprimac -lm
#include <stdlib.h>
#include <string.h>
#include <stdbool.h>
#include "prima/prima.h"

extern void goprimaObj(double *x, double *f, void *data);
extern void goprimaObjCon(double *x, double *f, double *constr, void *data);
extern void goprimaProgress(int n, double *x, double f, int nf, int tr,
                            double cstrv, int m_nlcon, double *nlconstr,
                            bool *terminate);

static void goprima_obj_bridge(const double x[], double *f, const void *data)
{
	goprimaObj((double *)x, f, (void *)data);
}

static void goprima_objcon_bridge(const double x[], double *f, double constr[], const void *data)
{
	goprimaObjCon((double *)x, f, constr, (void *)data);
}

static void goprima_progress_bridge(int n, const double x[], double f, int nf, int tr,
                                    double cstrv, int m_nlcon, const double nlconstr[],
                                    bool *terminate)
{
	goprimaProgress(n, (double *)x, f, nf, tr, cstrv, m_nlcon, (double *)nlconstr, terminate);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

// Precondition violations detected before the foreign library is invoked.
var (
	// ErrMissingX0 indicates that the problem has no initial point or that
	// its length does not match the variable count.
	ErrMissingX0 = errors.New("prima: x0 must have length n")

	// ErrMissingObjective indicates that the callback required by the
	// chosen algorithm is absent, or that the wrong callback kind is set.
	ErrMissingObjective = errors.New("prima: callback does not match algorithm")

	// ErrConstraintMismatch indicates constraints or bounds that the chosen
	// algorithm cannot handle, or inconsistently sized constraint buffers.
	ErrConstraintMismatch = errors.New("prima: constraints do not match algorithm")
)

// Minimize runs the selected PRIMA algorithm on the given problem.
//
// The problem and options descriptors are consumed by value; buffers they
// reference stay owned by the caller and are copied into C memory for the
// duration of the call. The returned Result owns all solver-allocated
// memory and must be released with Free (a finalizer releases it if the
// caller forgets).
//
// A *Result is returned even when err is non-nil, as long as the solver was
// actually invoked: a failed solve may still carry the best point found
// before the failure. err is nil for every ordinary solve outcome
// (convergence, target reached, evaluation budget exhausted, callback
// termination); inspect Result.Status to tell those apart. Foreign failure
// codes (invalid input, NaN/Inf detected, internal errors) are reported as
// *SolveError.
func Minimize(algorithm Algorithm, problem Problem, options Options) (*Result, error) {
	if err := checkProblem(algorithm, &problem); err != nil {
		return nil, err
	}

	n := problem.N()

	cp := problem.c
	cp.x0 = cDoubles(problem.X0)
	defer C.free(unsafe.Pointer(cp.x0))
	cp.xl = cDoubles(problem.XL)
	defer C.free(unsafe.Pointer(cp.xl))
	cp.xu = cDoubles(problem.XU)
	defer C.free(unsafe.Pointer(cp.xu))
	cp.m_ineq = C.int(len(problem.Bineq))
	cp.Aineq = cDoubles(problem.Aineq)
	defer C.free(unsafe.Pointer(cp.Aineq))
	cp.bineq = cDoubles(problem.Bineq)
	defer C.free(unsafe.Pointer(cp.bineq))
	cp.m_eq = C.int(len(problem.Beq))
	cp.Aeq = cDoubles(problem.Aeq)
	defer C.free(unsafe.Pointer(cp.Aeq))
	cp.beq = cDoubles(problem.Beq)
	defer C.free(unsafe.Pointer(cp.beq))
	cp.m_nlcon = C.int(problem.MNlcon)
	cp.f0 = C.double(problem.F0)
	cp.nlconstr0 = cDoubles(problem.NLConstr0)
	defer C.free(unsafe.Pointer(cp.nlconstr0))

	if problem.ObjectiveCon != nil {
		cp.calcfc = C.prima_objcon_t(unsafe.Pointer(C.goprima_objcon_bridge))
	} else {
		cp.calfun = C.prima_obj_t(unsafe.Pointer(C.goprima_obj_bridge))
	}

	co := options.c
	co.rhobeg = C.double(options.RhoBeg)
	co.rhoend = C.double(options.RhoEnd)
	co.maxfun = C.int(options.MaxFun)
	co.iprint = C.int(options.IPrint)
	co.ftarget = C.double(options.FTarget)
	co.npt = C.int(options.NPT)
	co.ctol = C.double(options.CTol)
	if options.Callback != nil {
		co.callback = C.prima_callback_t(unsafe.Pointer(C.goprima_progress_bridge))
	}

	res := &Result{n: n, mNlcon: problem.MNlcon}

	solveMu.Lock()
	active = &solveState{
		objective: problem.Objective,
		objcon:    problem.ObjectiveCon,
		progress:  options.Callback,
		data:      options.Data,
		n:         n,
		mNlcon:    problem.MNlcon,
	}
	rc := C.prima_minimize(algorithm.toC(), &cp, &co, &res.c)
	active = nil
	solveMu.Unlock()

	// The result may hold solver-allocated buffers even on failure; it must
	// be releasable exactly once on every path.
	runtime.SetFinalizer(res, (*Result).Free)

	status := Status(rc)
	if status.failed() {
		return res, &SolveError{Status: status, Message: status.String()}
	}
	return res, nil
}

// checkProblem mirrors the foreign library's consistency checks locally, so
// that caller mistakes surface as Go errors before any foreign call.
func checkProblem(algorithm Algorithm, p *Problem) error {
	if !algorithm.valid() {
		return fmt.Errorf("%w: unknown algorithm %d", ErrMissingObjective, int(algorithm))
	}
	n := p.N()
	if len(p.X0) != n {
		return fmt.Errorf("%w: got %d values for n=%d", ErrMissingX0, len(p.X0), n)
	}
	if algorithm.supportsNonlinear() {
		if p.ObjectiveCon == nil {
			return fmt.Errorf("%w: %s requires ObjectiveCon", ErrMissingObjective, algorithm)
		}
		if p.Objective != nil {
			return fmt.Errorf("%w: %s uses ObjectiveCon, Objective must be nil", ErrMissingObjective, algorithm)
		}
		if p.MNlcon < 0 {
			return fmt.Errorf("%w: negative nonlinear constraint count %d", ErrConstraintMismatch, p.MNlcon)
		}
		if len(p.NLConstr0) != 0 && len(p.NLConstr0) != p.MNlcon {
			return fmt.Errorf("%w: NLConstr0 has %d values for m_nlcon=%d", ErrConstraintMismatch, len(p.NLConstr0), p.MNlcon)
		}
	} else {
		if p.Objective == nil {
			return fmt.Errorf("%w: %s requires Objective", ErrMissingObjective, algorithm)
		}
		if p.ObjectiveCon != nil || p.MNlcon > 0 || len(p.NLConstr0) > 0 {
			return fmt.Errorf("%w: %s cannot handle nonlinear constraints", ErrConstraintMismatch, algorithm)
		}
	}
	if !algorithm.supportsLinear() && (len(p.Aineq) > 0 || len(p.Bineq) > 0 || len(p.Aeq) > 0 || len(p.Beq) > 0) {
		return fmt.Errorf("%w: %s cannot handle linear constraints", ErrConstraintMismatch, algorithm)
	}
	if len(p.Aineq) != len(p.Bineq)*n {
		return fmt.Errorf("%w: Aineq has %d entries, want %d rows of %d", ErrConstraintMismatch, len(p.Aineq), len(p.Bineq), n)
	}
	if len(p.Aeq) != len(p.Beq)*n {
		return fmt.Errorf("%w: Aeq has %d entries, want %d rows of %d", ErrConstraintMismatch, len(p.Aeq), len(p.Beq), n)
	}
	if !algorithm.supportsBounds() && (p.XL != nil || p.XU != nil) {
		return fmt.Errorf("%w: %s cannot handle variable bounds", ErrConstraintMismatch, algorithm)
	}
	if p.XL != nil && len(p.XL) != n {
		return fmt.Errorf("%w: xl has length %d, want %d", ErrConstraintMismatch, len(p.XL), n)
	}
	if p.XU != nil && len(p.XU) != n {
		return fmt.Errorf("%w: xu has length %d, want %d", ErrConstraintMismatch, len(p.XU), n)
	}
	return nil
}

// cDoubles copies a Go slice into a freshly malloc'd C double array. A nil
// or empty slice maps to a null pointer, which the foreign library reads as
// "absent". The caller frees the array.
func cDoubles(v []float64) *C.double {
	if len(v) == 0 {
		return nil
	}
	p := (*C.double)(C.malloc(C.size_t(len(v)) * C.size_t(unsafe.Sizeof(C.double(0)))))
	copy(unsafe.Slice((*float64)(unsafe.Pointer(p)), len(v)), v)
	return p
}
