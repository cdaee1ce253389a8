package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printer_probe/internal/handlers"
	"printer_probe/internal/logger"
	"printer_probe/internal/repository"
	"printer_probe/internal/server"
	"printer_probe/internal/service"
	"printer_probe/internal/sink"
	"printer_probe/internal/thermal"

	"github.com/spf13/viper"
)

const (
	defaultSimTick      = 1 * time.Second
	defaultPollInterval = 250 * time.Millisecond
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// simulated machine and display surfaces
	machine := thermal.NewSimPrinter(viper.GetFloat64("sim.ambient_c"))
	panel := sink.NewStatusPanel()
	display, closeDisplay, err := buildDisplay(panel, log)
	if err != nil {
		log.Fatalw("failed to init display", "err", err)
	}
	defer closeDisplay()

	formatter, err := sink.NewStatusFormatter(viper.GetString("display.status_template"))
	if err != nil {
		log.Fatalw("invalid status template", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, service.Deps{
		Machine:      machine,
		Clock:        thermal.NewClock(),
		Idler:        thermal.NewSleepIdler(pollInterval()),
		Display:      display,
		Panel:        panel,
		Formatter:    formatter,
		Log:          log,
		SigningKey:   viper.GetString("auth.signing_key"),
		ReportPeriod: time.Second,
		SingleNozzle: viper.GetBool("machine.single_nozzle"),
		DryRun:       viper.GetBool("machine.dry_run"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the thermal simulator (via composed service)
	go services.Simulator.Run(ctx, defaultSimTick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return repository.InitDB(dbPath)
}

// pollInterval is how long the wait loop yields per iteration.
func pollInterval() time.Duration {
	if d := viper.GetDuration("machine.poll_interval"); d > 0 {
		return d
	}
	return defaultPollInterval
}

// buildDisplay assembles the status surfaces: the in-process panel always,
// plus a serial console mirror when one is configured.
func buildDisplay(panel *sink.StatusPanel, log *logger.Logger) (sink.Display, func(), error) {
	if !viper.GetBool("display.enabled") {
		// Headless build: status lines are dropped entirely.
		return sink.Nop{}, func() {}, nil
	}
	if dev := viper.GetString("display.serial_device"); dev != "" {
		baud := viper.GetInt("display.serial_baud")
		if baud == 0 {
			baud = 115200
		}
		serialDisp, err := sink.OpenSerialDisplay(dev, baud)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("serial console attached", "device", dev, "baud", baud)
		return sink.Multi(panel, serialDisp), func() { _ = serialDisp.Close() }, nil
	}
	return panel, func() {}, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
