package service

import (
	"context"
	"time"

	"printer_probe/internal/models"
	"printer_probe/internal/repository"
	"printer_probe/internal/sink"
	"printer_probe/internal/thermal"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
	panel     *sink.StatusPanel
}

func NewMonitoringService(stateRepo repository.StateRepo, panel *sink.StatusPanel) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo, panel: panel}
}

var _ Monitoring = (*MonitoringService)(nil)

// GetState returns the latest persisted machine state with the live display
// panel line overlaid. If nothing is persisted yet, returns a baseline
// ambient snapshot.
func (s *MonitoringService) GetState(ctx context.Context) (models.ProbeState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.ProbeState{}, err
	}
	if state.ID == 0 {
		state = s.baselineState()
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	state.Waiting = state.ProbeTargetC != 0
	if s.panel != nil {
		state.StatusLine = s.panel.Line()
	}
	return state, nil
}

// baselineState returns a sensible default snapshot for an uninitialized DB.
func (s *MonitoringService) baselineState() models.ProbeState {
	return models.ProbeState{
		ID:        1, // DB schema enforces single-row state with id=1
		ProbeC:    thermal.DefaultAmbientC,
		BedC:      thermal.DefaultAmbientC,
		HotendC:   thermal.DefaultAmbientC,
		MotorsOn:  true,
		UpdatedAt: time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
