package prima

/*
#include "prima/prima.h"
*/
import "C"

import "fmt"

// Algorithm selects one of the five Powell solvers.
type Algorithm int

const (
	// COBYLA handles nonlinear and linear constraints plus bounds.
	COBYLA Algorithm = iota
	// UOBYQA is fully unconstrained.
	UOBYQA
	// NEWUOA is fully unconstrained.
	NEWUOA
	// BOBYQA handles variable bounds.
	BOBYQA
	// LINCOA handles linear constraints plus bounds.
	LINCOA
)

var algorithmNames = []string{"COBYLA", "UOBYQA", "NEWUOA", "BOBYQA", "LINCOA"}

// String returns the solver name.
func (a Algorithm) String() string {
	if a.valid() {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm maps a solver name (case-sensitive, as printed by String)
// to its Algorithm value.
func ParseAlgorithm(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("prima: unknown algorithm %q", name)
}

func (a Algorithm) valid() bool {
	return a >= COBYLA && a <= LINCOA
}

// supportsNonlinear reports whether the solver evaluates nonlinear
// constraints jointly with the objective, which decides the required
// callback kind.
func (a Algorithm) supportsNonlinear() bool {
	return a == COBYLA
}

func (a Algorithm) supportsLinear() bool {
	return a == COBYLA || a == LINCOA
}

func (a Algorithm) supportsBounds() bool {
	return a == COBYLA || a == LINCOA || a == BOBYQA
}

func (a Algorithm) toC() C.prima_algorithm_t {
	switch a {
	case COBYLA:
		return C.PRIMA_COBYLA
	case UOBYQA:
		return C.PRIMA_UOBYQA
	case NEWUOA:
		return C.PRIMA_NEWUOA
	case BOBYQA:
		return C.PRIMA_BOBYQA
	case LINCOA:
		return C.PRIMA_LINCOA
	default:
		return C.PRIMA_NEWUOA
	}
}

// MessageLevel controls the verbosity of the solver's own output.
type MessageLevel int

const (
	// MsgNone suppresses all solver output.
	MsgNone = MessageLevel(C.PRIMA_MSG_NONE)
	// MsgExit prints a message at termination.
	MsgExit = MessageLevel(C.PRIMA_MSG_EXIT)
	// MsgRho additionally reports trust-region radius updates.
	MsgRho = MessageLevel(C.PRIMA_MSG_RHO)
	// MsgFevl additionally reports every function evaluation.
	MsgFevl = MessageLevel(C.PRIMA_MSG_FEVL)
)
