package prima

import "testing"

func solveDemo(t *testing.T) *Result {
	t.Helper()
	opts := NewOptions()
	opts.MaxFun = 500
	res, err := Minimize(NEWUOA, demoProblem(), opts)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	return res
}

func TestResultFreeIsIdempotent(t *testing.T) {
	res := solveDemo(t)

	// Repeated release must be a no-op, never a double-free.
	res.Free()
	res.Free()
	res.Free()
}

func TestResultUseAfterFreePanics(t *testing.T) {
	res := solveDemo(t)
	res.Free()

	defer func() {
		if recover() == nil {
			t.Error("reading a released result did not panic")
		}
	}()
	res.X()
}

func TestResultAccessorsCopy(t *testing.T) {
	res := solveDemo(t)
	defer res.Free()

	x := res.X()
	x[0] = -1000
	if res.X()[0] == -1000 {
		t.Error("X() exposed the foreign buffer instead of a copy")
	}
}
