package thermal

import "sync"

// ----------- Simulation constants -----------
const (
	DefaultAmbientC     = 25.0 // ambient temperature °C
	HotendRampCPerSec   = 2.0  // °C per second toward hotend target
	HotendCoolCPerSec   = 1.5  // °C per second toward ambient when off
	BedRampCPerSec      = 0.8  // °C per second toward bed target
	BedCoolCPerSec      = 0.3  // °C per second toward ambient when off
	ProbeFollowCPerSec  = 0.6  // °C per second toward probe equilibrium
	BedCoupling         = 0.7  // fraction of bed heat reaching the probe
	HotendCoupling      = 0.1  // fraction of hotend heat reaching the probe
	MotorIdleTimeoutSec = 120.0
)

// SimPrinter is an in-memory stand-in for the machine: bed and hotend
// heaters, the probe thermistor, and the stepper idle timeout. It satisfies
// Controller and MotionGuard so the wait loop and the background simulator
// share one state.
type SimPrinter struct {
	mu sync.Mutex

	ambientC     float64
	probeC       float64
	probeTarget  int
	bedC         float64
	bedTarget    float64
	hotendC      float64
	hotendTarget float64

	motorsOn bool
	idleFor  float64 // seconds since the last keep-alive poke
}

// NewSimPrinter returns a printer at ambient temperature with all heaters
// off and motors energized.
func NewSimPrinter(ambientC float64) *SimPrinter {
	if ambientC == 0 {
		ambientC = DefaultAmbientC
	}
	return &SimPrinter{
		ambientC: ambientC,
		probeC:   ambientC,
		bedC:     ambientC,
		hotendC:  ambientC,
		motorsOn: true,
	}
}

var (
	_ Controller  = (*SimPrinter)(nil)
	_ MotionGuard = (*SimPrinter)(nil)
)

func (p *SimPrinter) ReadProbe() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.probeC
}

func (p *SimPrinter) SetProbeTarget(targetC int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probeTarget = targetC
}

func (p *SimPrinter) ProbeTarget() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.probeTarget
}

func (p *SimPrinter) BedTarget() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bedTarget
}

// HotendTarget returns the hotend target. The simulated machine has a single
// nozzle, so the tool index is accepted for interface parity and ignored.
func (p *SimPrinter) HotendTarget(int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hotendTarget
}

// SetBedTarget sets the bed heater target; 0 turns the bed off.
func (p *SimPrinter) SetBedTarget(targetC float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bedTarget = targetC
}

// SetHotendTarget sets the hotend target; 0 turns the hotend off.
func (p *SimPrinter) SetHotendTarget(targetC float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hotendTarget = targetC
}

func (p *SimPrinter) Snapshot(tool int) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		HotendC:       p.hotendC,
		HotendTargetC: p.hotendTarget,
		BedC:          p.bedC,
		BedTargetC:    p.bedTarget,
		ProbeC:        p.probeC,
		ProbeTargetC:  p.probeTarget,
	}
}

// ResetIdleTimeout marks stepper activity so the idle cutoff does not fire.
func (p *SimPrinter) ResetIdleTimeout() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idleFor = 0
	p.motorsOn = true
}

// MotorsOn reports whether the steppers are still energized.
func (p *SimPrinter) MotorsOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.motorsOn
}

// Advance moves the thermal model forward by elapsed seconds: heaters ramp
// toward their targets (or ambient when off), the probe drifts toward its
// equilibrium, and the stepper idle timeout counts down.
func (p *SimPrinter) Advance(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.hotendC = approach(p.hotendC, heaterGoal(p.hotendTarget, p.ambientC), rampRate(p.hotendTarget, HotendRampCPerSec, HotendCoolCPerSec)*elapsed)
	p.bedC = approach(p.bedC, heaterGoal(p.bedTarget, p.ambientC), rampRate(p.bedTarget, BedRampCPerSec, BedCoolCPerSec)*elapsed)

	// The probe sits near the bed, so it mostly sees bed heat plus a little
	// radiated hotend heat.
	equilibrium := p.ambientC +
		BedCoupling*(p.bedC-p.ambientC) +
		HotendCoupling*(p.hotendC-p.ambientC)
	p.probeC = approach(p.probeC, equilibrium, ProbeFollowCPerSec*elapsed)

	if p.motorsOn {
		p.idleFor += elapsed
		if p.idleFor >= MotorIdleTimeoutSec {
			p.motorsOn = false
		}
	}
}

// heaterGoal is the temperature a heater converges to: its target when set,
// ambient when off.
func heaterGoal(target, ambient float64) float64 {
	if target > 0 {
		return target
	}
	return ambient
}

// rampRate picks the heating or cooling rate for a heater.
func rampRate(target, heatRate, coolRate float64) float64 {
	if target > 0 {
		return heatRate
	}
	return coolRate
}

// approach moves cur toward goal by at most step, clamping at goal.
func approach(cur, goal, step float64) float64 {
	switch {
	case cur < goal:
		cur += step
		if cur > goal {
			cur = goal
		}
	case cur > goal:
		cur -= step
		if cur < goal {
			cur = goal
		}
	}
	return cur
}
