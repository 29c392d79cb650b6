// Package main runs mudra: webcam hand gestures typed into a passcode.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/passcode"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

const (
	flagAddr       = "addr"
	flagCamera     = "camera"
	flagStaticDir  = "static-dir"
	flagPluginDir  = "plugin-dir"
	flagCompletion = "completion-plugin"
	flagLogLevel   = "log-level"
	flagTray       = "tray"
)

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagAddr, Usage: "HTTP listen `ADDRESS` (MUDRA_ADDR)"},
		&cli.IntFlag{Name: flagCamera, Usage: "camera device `ID` (MUDRA_CAMERA_ID)"},
		&cli.StringFlag{Name: flagStaticDir, Usage: "serve the web UI from `DIR` (MUDRA_STATIC_DIR)"},
		&cli.StringFlag{Name: flagPluginDir, Usage: "discover plugins in `DIR` (MUDRA_PLUGIN_DIR)"},
		&cli.StringFlag{Name: flagCompletion, Usage: "plugin `NAME` that receives each completed passcode (MUDRA_COMPLETION_PLUGIN)"},
		&cli.StringFlag{Name: flagLogLevel, Usage: "log `LEVEL`: debug, info, warn, error (MUDRA_LOG_LEVEL)"},
		&cli.BoolFlag{Name: flagTray, Usage: "show the passcode in the system tray (MUDRA_TRAY)"},
	}
}

func main() {
	mudra := &cli.App{
		Name:  "mudra",
		Usage: "enter a passcode with hand gestures in front of a webcam",
		Flags: flags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			logger, err := logging.New("mudra", cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, logger)
		},
	}

	if err := mudra.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads MUDRA_* variables and lets explicitly set flags win.
func loadConfig(c *cli.Context) (config.Config, error) {
	var cfg config.Config
	if err := config.ParseEnv(&cfg); err != nil {
		return cfg, err
	}

	if c.IsSet(flagAddr) {
		cfg.Addr = c.String(flagAddr)
	}
	if c.IsSet(flagCamera) {
		cfg.CameraID = c.Int(flagCamera)
	}
	if c.IsSet(flagStaticDir) {
		cfg.StaticDir = c.String(flagStaticDir)
	}
	if c.IsSet(flagPluginDir) {
		cfg.PluginDir = c.String(flagPluginDir)
	}
	if c.IsSet(flagCompletion) {
		cfg.CompletionPlugin = c.String(flagCompletion)
	}
	if c.IsSet(flagLogLevel) {
		cfg.LogLevel = c.String(flagLogLevel)
	}
	if c.IsSet(flagTray) {
		cfg.Tray = c.Bool(flagTray)
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = findWebDir()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) error {
	st, err := store.New(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("initialize journal: %w", err)
	}
	defer st.Close()
	logger.Infow("session started", "session", st.Session())

	acc := passcode.New(passcode.Config{
		Capacity:   cfg.Capacity,
		Cooldown:   cfg.Cooldown,
		ResetDelay: cfg.ResetDelay,
		Logger:     logger.Named("passcode"),
	})

	completer, err := newCompleter(cfg, st.Session(), logger)
	if err != nil {
		return err
	}

	hub := server.NewHub(logger.Named("hub"))
	application := app.New(app.Config{
		Camera:          capture.NewCamera(capture.CameraConfig{DeviceID: cfg.CameraID}),
		Detector:        newDetector(cfg, logger),
		Accumulator:     acc,
		Store:           st,
		Hub:             hub,
		Completer:       completer,
		MotionThreshold: cfg.MotionThreshold,
		Logger:          logger.Named("app"),
	})

	if err := application.Start(); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	defer application.Stop()

	srv := server.New(server.Config{
		StaticDir: cfg.StaticDir,
		Store:     st,
		Passcode:  acc,
		Frames:    application,
		Hub:       hub,
		Logger:    logger.Named("http"),
	})
	if cfg.StaticDir != "" {
		logger.Infow("serving static files", "dir", cfg.StaticDir)
	}

	if !cfg.Tray {
		return srv.Run(ctx, cfg.Addr)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx, cfg.Addr) }()

	t := tray.New(acc.Display())
	t.OnToggle(application.SetEnabled)
	t.OnReset(acc.Reset)
	t.OnQuit(cancel)
	acc.Subscribe(func(e passcode.Event) {
		t.SetDisplay(e.Display, e.Shift)
	})
	go func() {
		<-ctx.Done()
		t.Quit()
	}()

	// systray needs the main goroutine.
	t.Run()
	cancel()

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newDetector(cfg config.Config, logger *zap.SugaredLogger) detector.Detector {
	dcfg := detector.DefaultConfig()
	dcfg.MaxHands = cfg.MaxHands
	dcfg.MinConfidence = cfg.MinConfidence
	dcfg.MinTrackingConf = cfg.MinConfidence

	mp, err := detector.NewMediaPipeDetector(dcfg, logger.Named("detector"))
	if err != nil {
		logger.Warnw("MediaPipe not available, using mock detector", "error", err)
		return detector.NewMockDetector()
	}
	logger.Infow("using MediaPipe hand detection", "max_hands", dcfg.MaxHands, "min_confidence", dcfg.MinConfidence)
	return mp
}

func newCompleter(cfg config.Config, session string, logger *zap.SugaredLogger) (*plugin.Completer, error) {
	if cfg.CompletionPlugin == "" {
		return nil, nil
	}

	manager := plugin.NewManager(cfg.PluginDir, logger.Named("plugin"))
	if err := manager.Discover(); err != nil {
		return nil, fmt.Errorf("discover plugins: %w", err)
	}
	if _, err := manager.Resolve(cfg.CompletionPlugin, plugin.ActionType); err != nil {
		return nil, fmt.Errorf("completion plugin: %w", err)
	}

	executor := plugin.NewExecutor(cfg.PluginTimeout, logger.Named("plugin"))
	return plugin.NewCompleter(manager, executor, cfg.CompletionPlugin, session, logger.Named("plugin")), nil
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	for _, p := range []string{"web", "../web", "../../web"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
