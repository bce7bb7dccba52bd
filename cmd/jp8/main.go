// cmd/jp8/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/api"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/config"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/engine"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/health"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/logging"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/render"
	engorender "github.com/magooney-loon/jp-8-kerosene-sub000/pkg/render/engo"
)

// Terminal panel size in character cells
const (
	terminalCols = 100
	terminalRows = 30
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	backend := flag.String("renderer", "", "Render backend: 'engo', 'terminal' or 'none' (overrides config)")
	apiAddr := flag.String("api", "", "Telemetry API address (overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	headless := flag.Bool("headless", false, "Run without any renderer")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg := loadConfiguration(ctx, logger, *configPath)

	// Command line flags win over file and environment
	if *backend != "" {
		cfg.Render.Backend = *backend
	}
	if *headless {
		cfg.Render.Backend = "none"
	}
	if *apiAddr != "" {
		cfg.API.Addr = *apiAddr
	}
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	session, err := engine.NewSession(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create session", err)
		os.Exit(1)
	}

	checker := buildHealthChecker(session, cfg)

	var apiServer *api.Server
	if cfg.API.Enabled {
		apiServer = api.NewServer(cfg.API, session, checker, logger)
		if err := apiServer.Start(); err != nil {
			logger.Error(ctx, "Failed to start telemetry api", err,
				"addr", cfg.API.Addr,
			)
			os.Exit(1)
		}
	}

	logger.Info(ctx, "Starting flight session",
		"session_id", session.ID,
		"render_backend", cfg.Render.Backend,
		"control_scheme", cfg.Session.ControlScheme.String(),
	)

	switch cfg.Render.Backend {
	case "engo":
		runWindowed(session, cfg, logger, *fullscreen)
	case "terminal":
		runTerminal(ctx, session, logger)
	default:
		runHeadless(ctx, session, logger)
	}

	// Drain the API before reporting the final numbers
	if apiServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Telemetry api shutdown failed", err)
		}
	}

	logger.Info(ctx, "Flight session ended",
		"session_id", session.ID,
		"frames", session.Frames(),
		"elapsed_sec", session.Elapsed(),
	)
}

// loadConfiguration reads the config file when it exists, falls back to
// the defaults otherwise, and layers the JP8_* environment on top.
func loadConfiguration(ctx context.Context, logger *logging.Logger, path string) *config.Config {
	var cfg *config.Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", path,
			)
			os.Exit(1)
		}
	}

	if err := config.ApplyEnvOverrides(cfg); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	return cfg
}

// buildHealthChecker wires the standard probes around a session
func buildHealthChecker(session *engine.Session, cfg *config.Config) *health.HealthChecker {
	checker := health.NewHealthChecker()

	// Under the engo backend the window loop steps the session instead
	// of Run, so liveness rides on the frame counter alone.
	running := session.Running
	if cfg.Render.Backend == "engo" {
		running = func() bool { return true }
	}
	checker.AddCheck(health.NewSimLoopHealthCheck(session.Frames, running, 2*time.Second))

	checker.AddCheck(health.NewTelemetryHealthCheck(session.Snapshot))

	// Memory limit: 500MB
	checker.AddCheck(health.NewMemoryHealthCheck(500, func() int64 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return int64(m.Alloc / 1024 / 1024)
	}))

	return checker
}

// runWindowed opens the engo window. The scene steps the session, so
// the session's own loop stays off. Blocks until the window closes.
func runWindowed(session *engine.Session, cfg *config.Config, logger *logging.Logger, fullscreen bool) {
	scene := engorender.NewFlightScene(session, cfg, logger)

	opts := engo.RunOptions{
		Title:      cfg.Render.Title,
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Fullscreen: fullscreen,
		VSync:      true,
	}

	engo.Run(opts, scene)
}

// runTerminal drives the session from its own loop and draws the
// character panel ten times a second until interrupted.
func runTerminal(ctx context.Context, session *engine.Session, logger *logging.Logger) {
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := session.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(ctx, "Simulation loop stopped", err)
		}
	}()

	hud := render.NewTerminalHUD(terminalCols, terminalRows)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			return
		case <-ticker.C:
			hud.Clear()
			hud.RenderFrame(session.Pose(), session.Snapshot())
			hud.Present()
		}
	}
}

// runHeadless runs the bare session loop until interrupted. The
// telemetry api is the only view of the flight in this mode.
func runHeadless(ctx context.Context, session *engine.Session, logger *logging.Logger) {
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Running headless, interrupt to stop")
	if err := session.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Simulation loop stopped", err)
	}
}
