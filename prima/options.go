package prima

/*
#include "prima/prima.h"
*/
import "C"

import "math"

// Options holds the solver tuning parameters.
//
// The floating-point fields use NaN (and -Inf for FTarget) as the "let the
// solver choose" sentinel rather than zero, since zero is a legitimate
// tuning value. NewOptions obtains these sentinels from the foreign
// initialization protocol, so caller omission is always distinguishable
// from a caller-supplied zero.
type Options struct {
	// c is the foreign record produced by prima_init_options; Minimize
	// writes the Go fields back onto a transient copy of it.
	c C.prima_options_t

	// RhoBeg and RhoEnd are the initial and final trust-region radii.
	// NaN selects the solver default.
	RhoBeg, RhoEnd float64

	// MaxFun caps the number of objective evaluations. Zero selects the
	// solver default of 500*n.
	MaxFun int

	// IPrint selects the solver's own verbosity.
	IPrint MessageLevel

	// FTarget stops the solve early once the objective reaches it.
	// Defaults to -Inf, meaning "never trigger".
	FTarget float64

	// NPT is the number of interpolation points (NEWUOA, BOBYQA, LINCOA).
	// Zero selects the solver default of 2n+1.
	NPT int

	// CTol is the constraint-violation tolerance used when judging
	// feasibility. NaN selects the solver default.
	CTol float64

	// Data is an opaque value passed through unmodified to every callback
	// invocation. The bridge never interprets it.
	Data any

	// Callback is invoked with the solver's progress after iterations;
	// returning true terminates the solve early.
	Callback ProgressFunc
}

// NewOptions builds an options descriptor via the foreign two-phase
// initialization and mirrors the resulting defaults into the Go fields.
func NewOptions() Options {
	var o Options
	C.prima_init_options(&o.c)
	o.RhoBeg = float64(o.c.rhobeg)   // NaN
	o.RhoEnd = float64(o.c.rhoend)   // NaN
	o.MaxFun = int(o.c.maxfun)       // 0, meaning 500*n
	o.IPrint = MessageLevel(o.c.iprint)
	o.FTarget = float64(o.c.ftarget) // -Inf
	o.NPT = int(o.c.npt)             // 0, meaning 2n+1
	// Older primac leaves ctol zeroed instead of marking it unset; force
	// the sentinel so zero always means a caller-chosen tolerance.
	o.CTol = math.NaN()
	return o
}
