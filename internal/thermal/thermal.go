package thermal

import (
	"context"
	"fmt"
	"time"
)

// Controller is the narrow view of the machine's thermal state used by the
// probe wait. Implementations own the sensor hardware (or its simulation);
// callers must not change the probe target while a wait is active.
type Controller interface {
	// ReadProbe samples the probe thermistor.
	ReadProbe() float64
	// SetProbeTarget sets the probe comparison target; 0 clears it.
	SetProbeTarget(targetC int)
	// ProbeTarget returns the currently set probe target.
	ProbeTarget() int
	// BedTarget returns the bed heater's target temperature.
	BedTarget() float64
	// HotendTarget returns the target of the addressed hotend.
	HotendTarget(tool int) float64
	// Snapshot returns an aggregate reading of all heaters and the probe.
	Snapshot(tool int) Snapshot
}

// Clock provides monotonic device time.
type Clock interface {
	Now() time.Duration
}

// Idler is the cooperative suspension point: each call hands control to the
// rest of the system for one poll interval before the wait loop resumes.
type Idler interface {
	Idle(ctx context.Context)
}

// MotionGuard keeps the stepper drivers energized while a blocking
// operation holds the machine still.
type MotionGuard interface {
	ResetIdleTimeout()
}

// Snapshot is an M105-style aggregate of heater and probe readings.
type Snapshot struct {
	HotendC       float64
	HotendTargetC float64
	BedC          float64
	BedTargetC    float64
	ProbeC        float64
	ProbeTargetC  int
}

// String renders the snapshot in the conventional console form,
// e.g. "T:24.8 /0 B:60.1 /60 P:41.2 /50".
func (s Snapshot) String() string {
	return fmt.Sprintf("T:%.1f /%.0f B:%.1f /%.0f P:%.1f /%d",
		s.HotendC, s.HotendTargetC, s.BedC, s.BedTargetC, s.ProbeC, s.ProbeTargetC)
}

// monotonicClock reports time elapsed since construction.
type monotonicClock struct {
	start time.Time
}

// NewClock returns a monotonic Clock starting at zero.
func NewClock() Clock {
	return monotonicClock{start: time.Now()}
}

func (c monotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// sleepIdler yields by sleeping one poll interval, which lets the rest of
// the process (HTTP serving, the simulator tick, websocket pushes) run.
type sleepIdler struct {
	interval time.Duration
}

// NewSleepIdler returns an Idler that sleeps a full interval on every call.
func NewSleepIdler(interval time.Duration) Idler {
	return sleepIdler{interval: interval}
}

// Idle always pays the full interval, even when ctx is already canceled.
// A wait has no external cancel signal; returning early here would turn
// the poll loop into a hot spin for its remaining lifetime.
func (i sleepIdler) Idle(_ context.Context) {
	time.Sleep(i.interval)
}
