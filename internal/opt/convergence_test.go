package opt

import "testing"

func TestTrackerStopsAfterStall(t *testing.T) {
	tracker := NewConvergenceTracker(ConvergenceConfig{Patience: 3, Threshold: 0.001})

	// Steady improvement never triggers a stop
	values := []float64{100, 90, 80, 70}
	for _, f := range values {
		if tracker.Update(f) {
			t.Fatalf("tracker stopped during steady improvement at f=%v", f)
		}
	}

	// Three flat reports exhaust the patience
	if tracker.Update(70) {
		t.Fatal("stopped after 1 stale report, patience is 3")
	}
	if tracker.Update(70) {
		t.Fatal("stopped after 2 stale reports, patience is 3")
	}
	if !tracker.Update(70) {
		t.Fatal("did not stop after 3 stale reports")
	}
}

func TestTrackerResetsOnImprovement(t *testing.T) {
	tracker := NewConvergenceTracker(ConvergenceConfig{Patience: 2, Threshold: 0.01})

	tracker.Update(100)
	tracker.Update(100) // stale 1
	if tracker.StaleCount() != 1 {
		t.Errorf("StaleCount() = %d, want 1", tracker.StaleCount())
	}
	tracker.Update(50) // significant improvement resets the counter
	if tracker.StaleCount() != 0 {
		t.Errorf("StaleCount() = %d after improvement, want 0", tracker.StaleCount())
	}
	if tracker.BestF() != 50 {
		t.Errorf("BestF() = %v, want 50", tracker.BestF())
	}
}

func TestTrackerIgnoresInsignificantImprovement(t *testing.T) {
	tracker := NewConvergenceTracker(ConvergenceConfig{Patience: 2, Threshold: 0.1})

	tracker.Update(100)
	// 1% improvement is below the 10% threshold
	if tracker.Update(99) {
		t.Fatal("stopped after a single stale report")
	}
	if !tracker.Update(98) {
		t.Fatal("did not stop after patience was exhausted")
	}
}
