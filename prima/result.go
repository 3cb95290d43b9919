package prima

/*
#include "prima/prima.h"
*/
import "C"

import (
	"runtime"
	"sync"
)

// Result owns the record populated by a solver call, including the
// solver-allocated point and constraint buffers inside it. The record
// itself carries no buffer lengths, so the Result remembers the variable
// and constraint counts of the originating problem and sizes every view
// from them.
//
// Free releases the foreign memory; it is idempotent, so calling it from a
// defer alongside an explicit release path is safe. A finalizer performs
// the release if the Result is collected without Free having been called,
// guaranteeing exactly-once release on every path. Reading any field after
// Free is a programming error and panics.
type Result struct {
	c      C.prima_result_t
	n      int
	mNlcon int

	mu    sync.Mutex
	freed bool
}

// Free releases the solver-allocated buffers inside the record. After Free
// the Result is inert: further Free calls are no-ops and accessors panic.
func (r *Result) Free() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.freed {
		return
	}
	r.freed = true
	runtime.SetFinalizer(r, nil)
	C.prima_free_result(&r.c)
}

func (r *Result) checkLive() {
	if r.freed {
		panic("prima: result accessed after Free")
	}
}

// X returns a copy of the final point.
func (r *Result) X() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkLive()
	return copyFloats(r.c.x, r.n)
}

// F returns the objective value at the final point.
func (r *Result) F() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkLive()
	return float64(r.c.f)
}

// ConstrViolation returns the constraint violation measure at the final
// point (zero for unconstrained problems).
func (r *Result) ConstrViolation() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkLive()
	return float64(r.c.cstrv)
}

// NLConstr returns a copy of the nonlinear constraint values at the final
// point, in the ordering used by the ObjectiveCon callback. Nil when the
// problem had no nonlinear constraints.
func (r *Result) NLConstr() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkLive()
	return copyFloats(r.c.nlconstr, r.mNlcon)
}

// NF returns the number of objective evaluations performed.
func (r *Result) NF() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkLive()
	return int(r.c.nf)
}

// Status returns the raw solver status code.
func (r *Result) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkLive()
	return Status(r.c.status)
}

// Success reports whether the solver converged: the trust-region radius
// reached its lower bound or the target objective value was achieved.
// Early termination through the progress callback is not a success.
func (r *Result) Success() bool {
	return r.Status().success()
}

// Message returns the solver's human-readable termination message. The
// underlying string is foreign static storage; the returned copy is plain
// Go memory.
func (r *Result) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkLive()
	if r.c.message == nil {
		return ""
	}
	return C.GoString(r.c.message)
}

// copyFloats copies a foreign buffer of known length into fresh Go memory
// through a bounds-checked view, so the copy stays valid after the record
// is released.
func copyFloats(p *C.double, n int) []float64 {
	view := floatsView(p, n)
	if view == nil {
		return nil
	}
	out := make([]float64, len(view))
	copy(out, view)
	return out
}
