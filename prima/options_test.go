package prima

import (
	"math"
	"testing"
)

func TestNewOptionsDefaults(t *testing.T) {
	o := NewOptions()

	// The float sentinels must be NaN/-Inf, never zero: zero is a valid
	// tuning value and must remain distinguishable from "unset".
	if !math.IsNaN(o.RhoBeg) {
		t.Errorf("RhoBeg = %v, want NaN sentinel", o.RhoBeg)
	}
	if !math.IsNaN(o.RhoEnd) {
		t.Errorf("RhoEnd = %v, want NaN sentinel", o.RhoEnd)
	}
	if !math.IsNaN(o.CTol) {
		t.Errorf("CTol = %v, want NaN sentinel", o.CTol)
	}
	if !math.IsInf(o.FTarget, -1) {
		t.Errorf("FTarget = %v, want -Inf", o.FTarget)
	}
	if o.MaxFun != 0 {
		t.Errorf("MaxFun = %d, want 0 (solver default)", o.MaxFun)
	}
	if o.NPT != 0 {
		t.Errorf("NPT = %d, want 0 (solver default)", o.NPT)
	}
	if o.IPrint != MsgNone {
		t.Errorf("IPrint = %d, want MsgNone", o.IPrint)
	}
	if o.Data != nil || o.Callback != nil {
		t.Error("fresh options should carry no data or callback")
	}
}
