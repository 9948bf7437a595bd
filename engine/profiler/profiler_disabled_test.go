//go:build !profile

package profiler

import "testing"

func TestDisabledIsInert(t *testing.T) {
	Init(16)
	if Enabled() {
		t.Error("Enabled() = true without the profile tag")
	}
	Start("frame")()
	if _, err := Dump(); err == nil {
		t.Error("Dump succeeded without the profile tag")
	}
	if NumGoroutine() < 1 || MemoryUsage() == 0 {
		t.Error("runtime stats not reported")
	}
}
