package service

import (
	"context"
	"time"

	"printer_probe/internal/logger"
	"printer_probe/internal/models"
	"printer_probe/internal/repository"
	"printer_probe/internal/sink"
	"printer_probe/internal/thermal"

	"github.com/google/uuid"
)

// telemetryEveryTicks spaces TELEMETRY events so the log is not flooded.
const telemetryEveryTicks = 60

// SimulatorService advances the thermal model in the background and
// persists snapshots, standing in for the firmware's periodic temperature
// management task.
type SimulatorService struct {
	machine   *thermal.SimPrinter
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	panel     *sink.StatusPanel
	log       *logger.Logger

	ticks int
}

func NewSimulatorService(machine *thermal.SimPrinter, stateRepo repository.StateRepo, eventRepo repository.EventRepo, panel *sink.StatusPanel, log *logger.Logger) *SimulatorService {
	if log == nil {
		log = logger.Get(logger.InfoLevel)
	}
	return &SimulatorService{
		machine:   machine,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		panel:     panel,
		log:       log,
	}
}

var _ Simulator = (*SimulatorService)(nil)

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(ctx, now, now.Sub(last).Seconds())
			last = now
		}
	}
}

// step advances the model by elapsed seconds and persists the snapshot.
// Split out from Run so tests can drive it deterministically.
func (s *SimulatorService) step(ctx context.Context, now time.Time, elapsed float64) {
	if elapsed <= 0 {
		return
	}

	motorsBefore := s.machine.MotorsOn()
	s.machine.Advance(elapsed)

	if motorsBefore && !s.machine.MotorsOn() {
		s.append(ctx, now, EventMotorsOff, "stepper idle timeout expired", nil)
	}

	snap := s.machine.Snapshot(0)
	st := models.ProbeState{
		ID:            1,
		ProbeC:        snap.ProbeC,
		ProbeTargetC:  snap.ProbeTargetC,
		BedC:          snap.BedC,
		BedTargetC:    snap.BedTargetC,
		HotendC:       snap.HotendC,
		HotendTargetC: snap.HotendTargetC,
		MotorsOn:      s.machine.MotorsOn(),
		Waiting:       snap.ProbeTargetC != 0,
		UpdatedAt:     now.UTC(),
	}
	if s.panel != nil {
		st.StatusLine = s.panel.Line()
	}
	if err := s.stateRepo.Save(ctx, st); err != nil {
		s.log.Warnw("state save failed", "err", err)
	}

	s.ticks++
	if s.ticks%telemetryEveryTicks == 0 {
		s.append(ctx, now, EventTelemetry, "periodic snapshot", map[string]any{
			"probe_c":  snap.ProbeC,
			"bed_c":    snap.BedC,
			"hotend_c": snap.HotendC,
		})
	}
}

// append records a simulator event, best effort.
func (s *SimulatorService) append(ctx context.Context, now time.Time, typ, desc string, meta map[string]any) {
	err := s.eventRepo.Append(ctx, models.ProbeEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now.UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Warnw("event append failed", "type", typ, "err", err)
	}
}
