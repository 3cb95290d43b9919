package prima

/*
#include "prima/prima.h"
*/
import "C"

import "fmt"

// Status is the foreign solver's return code. Every code the solver can
// produce is observable through Result.Status; Minimize additionally
// reports the failure codes as a *SolveError.
type Status int

const (
	// StatusDefault is the pristine value of a result record.
	StatusDefault = Status(C.PRIMA_RC_DFT)
	// SmallTRRadius: the trust-region radius reached its lower bound.
	SmallTRRadius = Status(C.PRIMA_SMALL_TR_RADIUS)
	// FTargetAchieved: the target objective value was reached.
	FTargetAchieved = Status(C.PRIMA_FTARGET_ACHIEVED)
	// TRSubproblemFailed: a trust-region step failed to reduce the model.
	TRSubproblemFailed = Status(C.PRIMA_TRSUBP_FAILED)
	// MaxFunReached: the evaluation budget was exhausted.
	MaxFunReached = Status(C.PRIMA_MAXFUN_REACHED)
	// MaxTRReached: the trust-region iteration budget was exhausted.
	MaxTRReached = Status(C.PRIMA_MAXTR_REACHED)
	// NaNInfX: the input point contained NaN or Inf.
	NaNInfX = Status(C.PRIMA_NAN_INF_X)
	// NaNInfF: the objective or constraints returned NaN or +Inf.
	NaNInfF = Status(C.PRIMA_NAN_INF_F)
	// NaNInfModel: NaN or Inf occurred in the interpolation model.
	NaNInfModel = Status(C.PRIMA_NAN_INF_MODEL)
	// NoSpaceBetweenBounds: a lower bound meets or exceeds its upper bound.
	NoSpaceBetweenBounds = Status(C.PRIMA_NO_SPACE_BETWEEN_BOUNDS)
	// DamagingRounding: rounding errors became damaging and the solver
	// stopped with the best point found.
	DamagingRounding = Status(C.PRIMA_DAMAGING_ROUNDING)
	// ZeroLinearConstraint: a linear constraint has a zero gradient.
	ZeroLinearConstraint = Status(C.PRIMA_ZERO_LINEAR_CONSTRAINT)
	// CallbackTerminate: the progress callback requested termination.
	CallbackTerminate = Status(C.PRIMA_CALLBACK_TERMINATE)
	// InvalidInput: the solver rejected its inputs.
	InvalidInput = Status(C.PRIMA_INVALID_INPUT)
	// AssertionFails: an internal assertion failed.
	AssertionFails = Status(C.PRIMA_ASSERTION_FAILS)
	// ValidationFails: internal validation failed.
	ValidationFails = Status(C.PRIMA_VALIDATION_FAILS)
	// MemoryAllocationFails: the solver could not allocate memory.
	MemoryAllocationFails = Status(C.PRIMA_MEMORY_ALLOCATION_FAILS)
	// NullOptions through NullFunction are the foreign null-argument
	// guards; the bridge never passes null, so they indicate a bug.
	NullOptions  = Status(C.PRIMA_NULL_OPTIONS)
	NullProblem  = Status(C.PRIMA_NULL_PROBLEM)
	NullX0       = Status(C.PRIMA_NULL_X0)
	NullResult   = Status(C.PRIMA_NULL_RESULT)
	NullFunction = Status(C.PRIMA_NULL_FUNCTION)
	// MismatchNonlinearConstraints through MismatchBounds report problem
	// features the chosen algorithm cannot handle. The bridge performs the
	// same checks locally before calling the solver.
	MismatchNonlinearConstraints = Status(C.PRIMA_PROBLEM_SOLVER_MISMATCH_NONLINEAR_CONSTRAINTS)
	MismatchLinearConstraints    = Status(C.PRIMA_PROBLEM_SOLVER_MISMATCH_LINEAR_CONSTRAINTS)
	MismatchBounds               = Status(C.PRIMA_PROBLEM_SOLVER_MISMATCH_BOUNDS)
)

// String returns the foreign library's message for the code.
func (s Status) String() string {
	return C.GoString(C.prima_get_rc_string(C.prima_rc_t(s)))
}

// success reports convergence. Stopping early through the callback, or
// running out of budget, is a valid outcome but not a success.
func (s Status) success() bool {
	return s == SmallTRRadius || s == FTargetAchieved
}

// failed reports codes meaning the solve itself went wrong, as opposed to
// terminating with a usable (if not converged) point.
func (s Status) failed() bool {
	switch s {
	case StatusDefault, SmallTRRadius, FTargetAchieved, TRSubproblemFailed,
		MaxFunReached, MaxTRReached, DamagingRounding, CallbackTerminate:
		return false
	default:
		return true
	}
}

// SolveError is a structured failure reported by the foreign solver. The
// Result returned alongside it remains valid and releasable; it may carry
// the best point found before the failure.
type SolveError struct {
	// Status is the raw foreign failure code.
	Status Status
	// Message is the foreign library's description of the code.
	Message string
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("prima: %s (status %d)", e.Message, int(e.Status))
}
