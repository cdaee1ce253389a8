package service

import (
	"context"
	"time"

	"printer_probe/internal/logger"
	"printer_probe/internal/models"
	"printer_probe/internal/repository"
	"printer_probe/internal/sink"
	"printer_probe/internal/thermal"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// ProbeWait exposes the blocking wait-for-probe-temperature operation plus
// the dry-run diagnostic toggle that short-circuits it.
type ProbeWait interface {
	Wait(ctx context.Context, p WaitParams) (WaitResult, error)
	SetDryRun(on bool)
	DryRun() bool
}

// Heaters sets the bed/hotend targets that feed direction inference.
type Heaters interface {
	SetTargets(ctx context.Context, bedC, hotendC float64) error
}

// Monitoring exposes read-only state (probe, heaters, motors, status line).
type Monitoring interface {
	GetState(ctx context.Context) (models.ProbeState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ProbeEvent, error)
}

// Simulator runs the background loop that advances the thermal model and
// persists snapshots. Stop via context cancellation in main() for graceful
// shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	ProbeWait
	Heaters
	Monitoring
	EventLog
	Simulator
	Authorization
}

// Deps carries everything beyond the repository layer that the services
// need: the machine abstraction, the display surfaces, and tuning knobs.
type Deps struct {
	Machine      *thermal.SimPrinter
	Clock        thermal.Clock
	Idler        thermal.Idler
	Display      sink.Display
	Panel        *sink.StatusPanel
	Formatter    *sink.StatusFormatter
	Log          *logger.Logger
	SigningKey   string
	ReportPeriod time.Duration
	SingleNozzle bool
	DryRun       bool
}

// NewService wires the repository layer and machine dependencies into
// concrete services.
func NewService(repos *repository.Repository, d Deps) *Service {
	wait := NewWaitService(WaitConfig{
		Controller:   d.Machine,
		Motion:       d.Machine,
		Clock:        d.Clock,
		Idler:        d.Idler,
		Display:      d.Display,
		Formatter:    d.Formatter,
		Events:       repos.EventRepo,
		Log:          d.Log,
		ReportPeriod: d.ReportPeriod,
		SingleNozzle: d.SingleNozzle,
		DryRun:       d.DryRun,
	})
	return &Service{
		ProbeWait:     wait,
		Heaters:       NewHeaterService(d.Machine, repos.EventRepo, d.Log),
		Monitoring:    NewMonitoringService(repos.StateRepo, d.Panel),
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     NewSimulatorService(d.Machine, repos.StateRepo, repos.EventRepo, d.Panel, d.Log),
		Authorization: NewAuthService(repos.Auth, d.SigningKey),
	}
}
