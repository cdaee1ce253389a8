package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"printer_probe/internal/models"
	"printer_probe/internal/thermal"
)

type heaterEventRepoStub struct {
	appends   []models.ProbeEvent
	appendErr error
}

func (e *heaterEventRepoStub) Append(ctx context.Context, ev models.ProbeEvent) error {
	e.appends = append(e.appends, ev)
	return e.appendErr
}
func (e *heaterEventRepoStub) List(ctx context.Context, from, to time.Time, typ string) ([]models.ProbeEvent, error) {
	return nil, nil
}

func TestHeaterService_SetTargets(t *testing.T) {
	machine := thermal.NewSimPrinter(25)
	events := &heaterEventRepoStub{}
	svc := NewHeaterService(machine, events, nil)

	if err := svc.SetTargets(context.Background(), 60, 210); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := machine.BedTarget(); got != 60 {
		t.Errorf("bed target = %.1f, want 60", got)
	}
	if got := machine.HotendTarget(0); got != 210 {
		t.Errorf("hotend target = %.1f, want 210", got)
	}
	if len(events.appends) != 1 || events.appends[0].Type != "MODE_CHANGE" {
		t.Errorf("expected one MODE_CHANGE event, got %v", events.appends)
	}
}

func TestHeaterService_SetTargets_EventFailureIsBestEffort(t *testing.T) {
	machine := thermal.NewSimPrinter(25)
	events := &heaterEventRepoStub{appendErr: errors.New("db down")}
	svc := NewHeaterService(machine, events, nil)

	// The targets are applied before the audit event; a storage error must
	// not be reported as a failed command.
	if err := svc.SetTargets(context.Background(), 60, 210); err != nil {
		t.Fatalf("append failure surfaced to the caller: %v", err)
	}
	if machine.BedTarget() != 60 || machine.HotendTarget(0) != 210 {
		t.Errorf("targets not applied: bed=%.1f hotend=%.1f", machine.BedTarget(), machine.HotendTarget(0))
	}
}

func TestHeaterService_SetTargets_Validation(t *testing.T) {
	machine := thermal.NewSimPrinter(25)
	svc := NewHeaterService(machine, &heaterEventRepoStub{}, nil)

	cases := []struct {
		name         string
		bed, hotend  float64
	}{
		{"negative bed", -1, 0},
		{"negative hotend", 0, -5},
		{"bed above limit", MaxSafeC + 1, 0},
		{"hotend above limit", 0, MaxSafeC + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.SetTargets(context.Background(), tc.bed, tc.hotend); err == nil {
				t.Fatalf("expected validation error for bed=%.1f hotend=%.1f", tc.bed, tc.hotend)
			}
			if machine.BedTarget() != 0 || machine.HotendTarget(0) != 0 {
				t.Errorf("targets mutated on rejected input")
			}
		})
	}
}
