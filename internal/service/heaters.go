package service

import (
	"context"
	"fmt"

	"printer_probe/internal/logger"
	"printer_probe/internal/models"
	"printer_probe/internal/repository"
	"printer_probe/internal/thermal"

	"github.com/google/uuid"
)

// MaxSafeC bounds heater targets accepted over the API.
const MaxSafeC = 300.0

// HeaterService sets the bed/hotend targets whose on/off state drives
// direction inference. The heater control loop itself lives in the thermal
// model; this only validates and applies targets.
type HeaterService struct {
	machine   *thermal.SimPrinter
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewHeaterService(machine *thermal.SimPrinter, eventRepo repository.EventRepo, log *logger.Logger) *HeaterService {
	if log == nil {
		log = logger.Get(logger.InfoLevel)
	}
	return &HeaterService{machine: machine, eventRepo: eventRepo, log: log}
}

var _ Heaters = (*HeaterService)(nil)

// SetTargets applies both heater targets; 0 turns a heater off.
func (s *HeaterService) SetTargets(ctx context.Context, bedC, hotendC float64) error {
	if bedC < 0 || hotendC < 0 {
		return fmt.Errorf("heater targets must be >= 0, got bed=%.1f hotend=%.1f", bedC, hotendC)
	}
	if bedC > MaxSafeC || hotendC > MaxSafeC {
		return fmt.Errorf("heater target exceeds max safe limit %.0f", MaxSafeC)
	}
	s.machine.SetBedTarget(bedC)
	s.machine.SetHotendTarget(hotendC)

	// The targets are already applied; the audit event is best effort and
	// must not surface a storage error as a failed command.
	err := s.eventRepo.Append(ctx, models.ProbeEvent{
		EventID:     uuid.NewString(),
		Type:        "MODE_CHANGE",
		Description: "heater targets changed",
		Metadata: map[string]any{
			"bed_target_c":    bedC,
			"hotend_target_c": hotendC,
		},
	})
	if err != nil {
		s.log.Warnw("event append failed", "type", "MODE_CHANGE", "err", err)
	}
	return nil
}
