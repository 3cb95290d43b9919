package prima

/*
#include <stdbool.h>
*/
import "C"

import (
	"sync"
	"unsafe"
)

// Objective evaluates the objective function at x and returns f(x).
//
// x is a view into solver memory, valid only for the duration of the call;
// copy it if it must be retained. data is the Options.Data value, passed
// through unmodified.
type Objective func(x []float64, data any) float64

// ObjectiveCon evaluates the objective and the nonlinear constraints at x.
// It returns f(x) and writes the MNlcon constraint values c_i(x) <= 0 into
// con. The ordering of con is the caller's choice but must be identical on
// every invocation; the final constraint values reported by the Result use
// the same ordering. Both slices are valid only for the duration of the
// call.
type ObjectiveCon func(x, con []float64, data any) float64

// ProgressFunc receives the solver's progress between iterations.
// Returning true requests cooperative termination: the solver stops at the
// next check and the Result reports CallbackTerminate, not convergence.
type ProgressFunc func(p Progress, data any) (terminate bool)

// Progress is a snapshot of the solver state handed to a ProgressFunc. The
// slice fields are views into solver memory and are invalidated when the
// callback returns.
type Progress struct {
	// X is the best point so far.
	X []float64
	// F is the objective value at X.
	F float64
	// NF is the cumulative number of function evaluations.
	NF int
	// TR is the trust-region iteration counter.
	TR int
	// CStrv is the constraint violation at X.
	CStrv float64
	// NLConstr holds the nonlinear constraint values at X; empty for
	// unconstrained problems.
	NLConstr []float64
}

// solveState carries the Go callbacks and counts for the solve currently
// executing. The progress callback of the C interface has no user-data
// argument, so the trampolines dispatch through this package variable;
// solveMu serializes solves to keep it single-owner.
type solveState struct {
	objective Objective
	objcon    ObjectiveCon
	progress  ProgressFunc
	data      any
	n         int
	mNlcon    int
}

var (
	solveMu sync.Mutex
	active  *solveState
)

// floatsView wraps a foreign pointer+length pair in a bounds-checked Go
// slice. This is the single place where raw solver buffers become slices;
// the views borrow the memory and must not outlive the foreign call that
// produced them.
func floatsView(p *C.double, n int) []float64 {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(p)), n)
}

//export goprimaObj
func goprimaObj(x *C.double, f *C.double, data unsafe.Pointer) {
	s := active
	*f = C.double(s.objective(floatsView(x, s.n), s.data))
}

//export goprimaObjCon
func goprimaObjCon(x *C.double, f *C.double, constr *C.double, data unsafe.Pointer) {
	s := active
	*f = C.double(s.objcon(floatsView(x, s.n), floatsView(constr, s.mNlcon), s.data))
}

//export goprimaProgress
func goprimaProgress(n C.int, x *C.double, f C.double, nf C.int, tr C.int,
	cstrv C.double, mNlcon C.int, nlconstr *C.double, terminate *C.bool) {
	s := active
	// The per-call n is authoritative; it is not assumed to match the
	// declared variable count.
	p := Progress{
		X:        floatsView(x, int(n)),
		F:        float64(f),
		NF:       int(nf),
		TR:       int(tr),
		CStrv:    float64(cstrv),
		NLConstr: floatsView(nlconstr, int(mNlcon)),
	}
	*terminate = C.bool(s.progress(p, s.data))
}
