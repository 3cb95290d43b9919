package prima

/*
#include "prima/prima.h"
*/
import "C"

import "fmt"

// Problem describes one optimization problem instance.
//
// A Problem is only valid when obtained from NewProblem, which runs the
// foreign initialization protocol so that no field ever holds uninitialized
// memory. All buffers stay owned by the caller; Minimize copies them for
// the duration of the solve.
type Problem struct {
	// c is the foreign record produced by prima_init_problem. It carries
	// the variable count and the initialized scalar defaults; pointer
	// fields are only ever filled on a transient copy inside Minimize.
	c C.prima_problem_t

	// X0 is the initial point. Required, length N.
	X0 []float64

	// XL and XU are optional variable bounds, length N each. Nil means
	// unbounded (COBYLA, LINCOA and BOBYQA only).
	XL, XU []float64

	// Aineq and Bineq describe the linear inequality system
	// Aineq*x <= Bineq. Aineq is row-major with len(Bineq) rows of N
	// entries (COBYLA and LINCOA only). Aeq and Beq describe the equality
	// system the same way.
	Aineq, Bineq []float64
	Aeq, Beq     []float64

	// MNlcon is the number of nonlinear constraints evaluated by
	// ObjectiveCon (COBYLA only).
	MNlcon int

	// F0 is the objective value at X0. Initialized to NaN by the foreign
	// protocol; populate it with EvaluateInitial or by hand before solving
	// constrained problems.
	F0 float64

	// NLConstr0 holds the nonlinear constraint values at X0, length
	// MNlcon. Optional; nil lets the solver evaluate them itself.
	NLConstr0 []float64

	// Objective is the plain objective callback, required by every
	// algorithm except COBYLA.
	Objective Objective

	// ObjectiveCon is the joint objective/constraint callback, required by
	// COBYLA. Exactly one of Objective and ObjectiveCon may be set.
	ObjectiveCon ObjectiveCon
}

// NewProblem builds a problem descriptor for n variables by running the
// foreign two-phase initialization on a zeroed placeholder. The returned
// descriptor is fully defined: no caller can observe the intermediate
// state.
//
// NewProblem panics if n is not positive; the foreign library's behavior
// for non-positive sizes is undefined, so the placeholder is never handed
// to it.
func NewProblem(n int) Problem {
	if n <= 0 {
		panic(fmt.Sprintf("prima: variable count must be positive, got %d", n))
	}
	var p Problem
	C.prima_init_problem(&p.c, C.int(n))
	p.F0 = float64(p.c.f0) // NaN, the foreign "not evaluated yet" sentinel
	return p
}

// N returns the variable count the descriptor was initialized with.
func (p *Problem) N() int {
	return int(p.c.n)
}

// AddLinIneq appends one dense row to the linear inequality system
// row*x <= rhs. The row must have N entries.
func (p *Problem) AddLinIneq(row []float64, rhs float64) {
	if len(row) != p.N() {
		panic(fmt.Sprintf("prima: inequality row has %d entries, want %d", len(row), p.N()))
	}
	p.Aineq = append(p.Aineq, row...)
	p.Bineq = append(p.Bineq, rhs)
}

// AddLinEq appends one dense row to the linear equality system row*x = rhs.
func (p *Problem) AddLinEq(row []float64, rhs float64) {
	if len(row) != p.N() {
		panic(fmt.Sprintf("prima: equality row has %d entries, want %d", len(row), p.N()))
	}
	p.Aeq = append(p.Aeq, row...)
	p.Beq = append(p.Beq, rhs)
}

// EvaluateInitial evaluates the attached callback at X0 and stores the
// objective value in F0 and, for constrained problems, the constraint
// values in NLConstr0. The foreign interface expects these to be supplied
// by the caller when available; the reference examples perform exactly
// this pre-evaluation by hand.
func (p *Problem) EvaluateInitial(data any) error {
	if len(p.X0) != p.N() {
		return fmt.Errorf("%w: got %d values for n=%d", ErrMissingX0, len(p.X0), p.N())
	}
	switch {
	case p.ObjectiveCon != nil:
		con := make([]float64, p.MNlcon)
		p.F0 = p.ObjectiveCon(p.X0, con, data)
		p.NLConstr0 = con
	case p.Objective != nil:
		p.F0 = p.Objective(p.X0, data)
	default:
		return fmt.Errorf("%w: no callback attached", ErrMissingObjective)
	}
	return nil
}
