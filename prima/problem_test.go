package prima

import (
	"math"
	"testing"
)

func TestNewProblemDefaults(t *testing.T) {
	p := NewProblem(3)

	if p.N() != 3 {
		t.Errorf("N() = %d, want 3", p.N())
	}
	// The initialization protocol must leave every field at its documented
	// default, never at uninitialized garbage.
	if !math.IsNaN(p.F0) {
		t.Errorf("F0 = %v, want NaN sentinel", p.F0)
	}
	if p.X0 != nil || p.XL != nil || p.XU != nil {
		t.Error("fresh problem should have no buffers attached")
	}
	if p.Aineq != nil || p.Bineq != nil || p.Aeq != nil || p.Beq != nil {
		t.Error("fresh problem should have no linear constraints")
	}
	if p.MNlcon != 0 {
		t.Errorf("MNlcon = %d, want 0", p.MNlcon)
	}
	if p.NLConstr0 != nil {
		t.Error("fresh problem should have no initial constraint values")
	}
	if p.Objective != nil || p.ObjectiveCon != nil {
		t.Error("fresh problem should have no callbacks")
	}
}

func TestNewProblemRejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewProblem(%d) did not panic", n)
				}
			}()
			NewProblem(n)
		}()
	}
}

func TestAddLinIneq(t *testing.T) {
	p := NewProblem(2)
	p.AddLinIneq([]float64{1, 1}, 5)
	p.AddLinIneq([]float64{2, -1}, 3)

	if len(p.Bineq) != 2 {
		t.Fatalf("got %d inequality rows, want 2", len(p.Bineq))
	}
	want := []float64{1, 1, 2, -1}
	for i, v := range want {
		if p.Aineq[i] != v {
			t.Errorf("Aineq[%d] = %v, want %v", i, p.Aineq[i], v)
		}
	}
	if p.Bineq[0] != 5 || p.Bineq[1] != 3 {
		t.Errorf("Bineq = %v, want [5 3]", p.Bineq)
	}
}

func TestAddLinIneqRejectsWrongWidth(t *testing.T) {
	p := NewProblem(2)
	defer func() {
		if recover() == nil {
			t.Error("AddLinIneq with a 3-entry row on n=2 did not panic")
		}
	}()
	p.AddLinIneq([]float64{1, 2, 3}, 0)
}

func TestEvaluateInitial(t *testing.T) {
	p := NewProblem(2)
	p.X0 = []float64{0, 0}
	p.Objective = func(x []float64, _ any) float64 {
		return math.Pow(x[0]-5, 2) + math.Pow(x[1]-4, 2)
	}

	if err := p.EvaluateInitial(nil); err != nil {
		t.Fatalf("EvaluateInitial: %v", err)
	}
	if p.F0 != 41 {
		t.Errorf("F0 = %v, want 41", p.F0)
	}
}

func TestEvaluateInitialConstrained(t *testing.T) {
	p := NewProblem(2)
	p.X0 = []float64{0, 0}
	p.MNlcon = 1
	p.ObjectiveCon = func(x, con []float64, _ any) float64 {
		con[0] = x[0]*x[0] - 9
		return math.Pow(x[0]-5, 2) + math.Pow(x[1]-4, 2)
	}

	if err := p.EvaluateInitial(nil); err != nil {
		t.Fatalf("EvaluateInitial: %v", err)
	}
	if p.F0 != 41 {
		t.Errorf("F0 = %v, want 41", p.F0)
	}
	if len(p.NLConstr0) != 1 || p.NLConstr0[0] != -9 {
		t.Errorf("NLConstr0 = %v, want [-9]", p.NLConstr0)
	}
}

func TestEvaluateInitialWithoutCallback(t *testing.T) {
	p := NewProblem(1)
	p.X0 = []float64{0}
	if err := p.EvaluateInitial(nil); err == nil {
		t.Error("EvaluateInitial without a callback should fail")
	}
}
