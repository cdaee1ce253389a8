package thermal

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSimPrinter_StartsAtAmbientWithMotorsOn(t *testing.T) {
	p := NewSimPrinter(25)
	if got := p.ReadProbe(); got != 25 {
		t.Errorf("probe = %.1f, want 25", got)
	}
	if !p.MotorsOn() {
		t.Errorf("motors should start energized")
	}
	if p.ProbeTarget() != 0 {
		t.Errorf("probe target should start clear")
	}
}

func TestSimPrinter_ZeroAmbientFallsBackToDefault(t *testing.T) {
	p := NewSimPrinter(0)
	if got := p.ReadProbe(); got != DefaultAmbientC {
		t.Errorf("probe = %.1f, want default ambient %.1f", got, DefaultAmbientC)
	}
}

func TestSimPrinter_ProbeWarmsTowardBedEquilibrium(t *testing.T) {
	p := NewSimPrinter(25)
	p.SetBedTarget(60)

	// Long enough for the bed to settle and the probe to converge.
	p.Advance(3600)

	snap := p.Snapshot(0)
	if !almostEqual(snap.BedC, 60) {
		t.Errorf("bed = %.2f, want 60", snap.BedC)
	}
	wantProbe := 25 + BedCoupling*(60-25)
	if !almostEqual(snap.ProbeC, wantProbe) {
		t.Errorf("probe = %.2f, want equilibrium %.2f", snap.ProbeC, wantProbe)
	}
}

func TestSimPrinter_ProbeCoolsToAmbientWhenHeatersOff(t *testing.T) {
	p := NewSimPrinter(25)
	p.SetBedTarget(60)
	p.Advance(3600)
	if p.ReadProbe() <= 25 {
		t.Fatalf("probe did not warm above ambient")
	}

	p.SetBedTarget(0)
	p.Advance(3600)

	snap := p.Snapshot(0)
	if !almostEqual(snap.BedC, 25) {
		t.Errorf("bed = %.2f, want ambient 25", snap.BedC)
	}
	if !almostEqual(snap.ProbeC, 25) {
		t.Errorf("probe = %.2f, want ambient 25", snap.ProbeC)
	}
}

func TestSimPrinter_AdvanceIgnoresNonPositiveElapsed(t *testing.T) {
	p := NewSimPrinter(25)
	p.SetBedTarget(60)
	p.Advance(0)
	p.Advance(-5)
	if got := p.Snapshot(0).BedC; got != 25 {
		t.Errorf("bed moved on non-positive elapsed: %.2f", got)
	}
}

func TestSimPrinter_MotorsCutOffAfterIdleTimeout(t *testing.T) {
	p := NewSimPrinter(25)
	p.Advance(MotorIdleTimeoutSec)
	if p.MotorsOn() {
		t.Fatalf("motors still on after idle timeout")
	}
	p.ResetIdleTimeout()
	if !p.MotorsOn() {
		t.Fatalf("keep-alive did not re-energize motors")
	}
}

func TestSimPrinter_KeepAlivePreventsCutoff(t *testing.T) {
	p := NewSimPrinter(25)
	half := MotorIdleTimeoutSec / 2
	p.Advance(half + 1)
	p.ResetIdleTimeout()
	p.Advance(half + 1)
	if !p.MotorsOn() {
		t.Errorf("motors cut off despite keep-alive")
	}
}

func TestSimPrinter_HotendTargetIgnoresToolIndex(t *testing.T) {
	p := NewSimPrinter(25)
	p.SetHotendTarget(210)
	if p.HotendTarget(0) != 210 || p.HotendTarget(3) != 210 {
		t.Errorf("hotend target should be identical for every tool index")
	}
}

func TestSnapshot_String(t *testing.T) {
	s := Snapshot{
		HotendC: 24.8, HotendTargetC: 0,
		BedC: 60.12, BedTargetC: 60,
		ProbeC: 41.26, ProbeTargetC: 50,
	}
	want := "T:24.8 /0 B:60.1 /60 P:41.3 /50"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
