package prima

import (
	"strings"
	"testing"
)

func TestStatusSuccess(t *testing.T) {
	successes := map[Status]bool{
		SmallTRRadius:     true,
		FTargetAchieved:   true,
		CallbackTerminate: false,
		MaxFunReached:     false,
		InvalidInput:      false,
	}
	for status, want := range successes {
		if got := status.success(); got != want {
			t.Errorf("%v.success() = %v, want %v", status, got, want)
		}
	}
}

func TestStatusFailedClassification(t *testing.T) {
	// Ordinary solve outcomes keep err == nil from Minimize; only genuine
	// failures surface as SolveError.
	outcomes := []Status{
		SmallTRRadius, FTargetAchieved, TRSubproblemFailed,
		MaxFunReached, MaxTRReached, DamagingRounding, CallbackTerminate,
	}
	for _, status := range outcomes {
		if status.failed() {
			t.Errorf("%v classified as failure", status)
		}
	}

	failures := []Status{
		NaNInfX, NaNInfF, NaNInfModel, NoSpaceBetweenBounds,
		ZeroLinearConstraint, InvalidInput, AssertionFails,
		ValidationFails, MemoryAllocationFails, NullProblem,
		MismatchNonlinearConstraints, MismatchLinearConstraints, MismatchBounds,
	}
	for _, status := range failures {
		if !status.failed() {
			t.Errorf("%v not classified as failure", status)
		}
	}
}

func TestStatusString(t *testing.T) {
	if got := CallbackTerminate.String(); !strings.Contains(got, "termination") {
		t.Errorf("CallbackTerminate.String() = %q, want the foreign termination message", got)
	}
	for _, status := range []Status{SmallTRRadius, MaxFunReached, InvalidInput} {
		if status.String() == "" {
			t.Errorf("%d.String() is empty", int(status))
		}
	}
}

func TestSolveErrorMessage(t *testing.T) {
	err := &SolveError{Status: InvalidInput, Message: InvalidInput.String()}
	if !strings.Contains(err.Error(), "Invalid input") {
		t.Errorf("Error() = %q, want it to carry the foreign message", err.Error())
	}
}
