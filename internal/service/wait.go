package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"printer_probe/internal/logger"
	"printer_probe/internal/models"
	"printer_probe/internal/repository"
	"printer_probe/internal/sink"
	"printer_probe/internal/thermal"

	"github.com/google/uuid"
)

// Direction is whether the probe is expected to rise or fall to reach its
// target. Resolved once per wait; never changes mid-operation.
type Direction int

const (
	Warming Direction = iota
	Cooling
)

// Phrase is the announce wording ("warm up" / "cool down").
func (d Direction) Phrase() string {
	if d == Cooling {
		return "cool down"
	}
	return "warm up"
}

// Slug is the timeout-message wording ("warm-up" / "cool-down").
func (d Direction) Slug() string {
	if d == Cooling {
		return "cool-down"
	}
	return "warm-up"
}

// Verb is the display wording ("heating" / "cooling").
func (d Direction) Verb() string {
	if d == Cooling {
		return "cooling"
	}
	return "heating"
}

// pending reports whether the wait must continue for the given reading.
func (d Direction) pending(currentC float64, targetC int) bool {
	if d == Cooling {
		return currentC > float64(targetC)
	}
	return currentC < float64(targetC)
}

// ResolveDirection decides the wait direction. Explicit flags win, warm-up
// over cool-down when both are given; otherwise idle heaters (bed and the
// addressed hotend both at target 0) imply the probe will fall to ambient.
func ResolveDirection(forceCool, forceWarm bool, bedTargetC, hotendTargetC float64) Direction {
	switch {
	case forceWarm:
		return Warming
	case forceCool:
		return Cooling
	case bedTargetC == 0 && hotendTargetC == 0:
		return Cooling
	default:
		return Warming
	}
}

// Event types appended by the wait and simulator services.
const (
	EventWaitStart   = "WAIT_START"
	EventWaitReached = "WAIT_REACHED"
	EventWaitTimeout = "WAIT_TIMEOUT"
	EventMotorsOff   = "MOTORS_OFF"
	EventTelemetry   = "TELEMETRY"
)

// ErrWaitActive is returned when a second wait is attempted while one is in
// progress. The operation is reentrancy-unsafe against itself.
var ErrWaitActive = errors.New("a probe wait is already active")

// WaitConfig collects the injected collaborators of the wait state machine.
type WaitConfig struct {
	Controller   thermal.Controller
	Motion       thermal.MotionGuard
	Clock        thermal.Clock
	Idler        thermal.Idler
	Display      sink.Display
	Formatter    *sink.StatusFormatter
	Events       repository.EventRepo
	Log          *logger.Logger
	ReportPeriod time.Duration
	SingleNozzle bool
	DryRun       bool
}

// WaitService implements the blocking wait-for-probe-temperature operation.
type WaitService struct {
	ctrl   thermal.Controller
	motion thermal.MotionGuard
	clock  thermal.Clock
	idler  thermal.Idler

	display sink.Display
	format  *sink.StatusFormatter
	events  repository.EventRepo
	log     *logger.Logger

	reportPeriod time.Duration
	singleNozzle bool

	dryRun atomic.Bool
	busy   sync.Mutex
}

func NewWaitService(cfg WaitConfig) *WaitService {
	if cfg.ReportPeriod <= 0 {
		cfg.ReportPeriod = time.Second
	}
	if cfg.Display == nil {
		cfg.Display = sink.Nop{}
	}
	if cfg.Formatter == nil {
		cfg.Formatter, _ = sink.NewStatusFormatter("") // default template always compiles
	}
	if cfg.Log == nil {
		cfg.Log = logger.Get(logger.InfoLevel)
	}
	s := &WaitService{
		ctrl:         cfg.Controller,
		motion:       cfg.Motion,
		clock:        cfg.Clock,
		idler:        cfg.Idler,
		display:      cfg.Display,
		format:       cfg.Formatter,
		events:       cfg.Events,
		log:          cfg.Log,
		reportPeriod: cfg.ReportPeriod,
		singleNozzle: cfg.SingleNozzle,
	}
	s.dryRun.Store(cfg.DryRun)
	return s
}

var _ ProbeWait = (*WaitService)(nil)

// SetDryRun toggles the diagnostic mode in which waits are skipped entirely.
func (s *WaitService) SetDryRun(on bool) {
	s.dryRun.Store(on)
	s.log.Infow("dry run mode changed", "enabled", on)
}

func (s *WaitService) DryRun() bool {
	return s.dryRun.Load()
}

// Wait blocks until the probe has warmed or cooled to the target, or the
// optional timeout elapses. Both endings run the same cleanup: the probe
// target is cleared and the display restored. A missing target or an active
// dry run turns the whole call into a no-op.
func (s *WaitService) Wait(ctx context.Context, p WaitParams) (WaitResult, error) {
	if s.dryRun.Load() {
		// Diagnostic mode: no direction resolution, no target mutation,
		// no output.
		return WaitResult{Outcome: OutcomeSkipped}, nil
	}
	if !p.HasTarget {
		return WaitResult{Outcome: OutcomeSkipped}, nil
	}
	if !s.busy.TryLock() {
		return WaitResult{}, ErrWaitActive
	}
	defer s.busy.Unlock()

	tool := p.Tool
	if s.singleNozzle {
		tool = 0
	}
	dir := ResolveDirection(p.ForceCool, p.ForceWarm, s.ctrl.BedTarget(), s.ctrl.HotendTarget(tool))

	s.log.Infow("wait for sensor "+dir.Phrase()+" to target temperature", "target_c", p.TargetC)

	start := s.clock.Now()
	now := start
	var deadline time.Duration
	if p.TimeoutSec > 0 {
		deadline = now + time.Duration(p.TimeoutSec)*time.Second
	}
	nextReport := now + s.reportPeriod

	s.ctrl.SetProbeTarget(p.TargetC)
	defer func() {
		// Cleanup runs exactly once on every exit path, timeout included.
		s.ctrl.SetProbeTarget(0)
		s.display.Reset()
	}()

	s.appendEvent(ctx, EventWaitStart, "wait for probe "+dir.Phrase(), map[string]any{
		"target_c":  p.TargetC,
		"timeout_s": p.TimeoutSec,
	})

	// The first reading is unknown until sampled, so the loop always runs
	// at least once before any termination check.
	outcome := OutcomeReached
	iterations := 0
	var probe float64
	for {
		iterations++
		probe = s.ctrl.ReadProbe()

		if now >= nextReport {
			nextReport = now + s.reportPeriod
			s.report(dir, probe, p.TargetC, tool)
		}

		// Hand control to the rest of the system, and keep the steppers
		// powered while the machine sits still.
		s.idler.Idle(ctx)
		s.motion.ResetIdleTimeout()

		now = s.clock.Now()

		if deadline > 0 && now >= deadline {
			s.log.Warnw("TIMEOUT on sensor "+dir.Slug(), "target_c", p.TargetC, "probe_c", probe)
			outcome = OutcomeTimedOut
			break
		}
		if !dir.pending(probe, p.TargetC) {
			break
		}
	}

	res := WaitResult{
		Outcome:    outcome,
		Direction:  dir.Phrase(),
		ProbeC:     probe,
		TargetC:    p.TargetC,
		Elapsed:    now - start,
		Iterations: iterations,
	}
	typ, desc := EventWaitReached, "probe reached target"
	if outcome == OutcomeTimedOut {
		typ, desc = EventWaitTimeout, "timeout on sensor "+dir.Slug()
	}
	s.appendEvent(ctx, typ, desc, map[string]any{
		"target_c":  p.TargetC,
		"probe_c":   probe,
		"elapsed_s": res.Elapsed.Seconds(),
	})
	return res, nil
}

// report emits the once-per-second progress: the aggregate heater snapshot
// to the log and the short progress line to the display.
func (s *WaitService) report(dir Direction, probeC float64, targetC, tool int) {
	snap := s.ctrl.Snapshot(tool)
	s.log.Infow("heater status", "state", snap.String())
	s.display.ShowStatus(s.format.Format(probeC, targetC, dir.Verb()))
}

// appendEvent records a wait lifecycle event, best effort.
func (s *WaitService) appendEvent(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.events == nil {
		return
	}
	err := s.events.Append(ctx, models.ProbeEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Warnw("event append failed", "type", typ, "err", err)
	}
}
