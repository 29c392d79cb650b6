// Package app wires the camera, hand detector and passcode accumulator into
// the running mudra pipeline and fans accumulator events out to the journal,
// the display hub and the completion plugin.
package app

import (
	"context"
	"errors"
	"sync"

	clk "github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/passcode"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the collaborators of an App. Nil collaborators are optional
// except where noted.
type Config struct {
	// Camera defaults to the first webcam.
	Camera capture.Camera
	// Detector defaults to MediaPipe, falling back to a mock when the
	// service is unavailable.
	Detector detector.Detector
	// Accumulator defaults to one built from Clock and Logger.
	Accumulator *passcode.Accumulator

	Store     *store.Store
	Hub       *server.Hub
	Completer *plugin.Completer

	MotionThreshold float64
	Clock           clk.Clock
	Logger          *zap.SugaredLogger
}

// App runs the frame pipeline.
type App struct {
	camera      capture.Camera
	activity    *capture.ActivityMonitor
	detector    detector.Detector
	accumulator *passcode.Accumulator
	store       *store.Store
	hub         *server.Hub
	completer   *plugin.Completer
	clock       clk.Clock
	logger      *zap.SugaredLogger

	mu      sync.RWMutex
	enabled bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	frameMu  sync.RWMutex
	frame    []byte
	frameSeq uint64

	ctx       context.Context
	cancel    context.CancelFunc
	completes sync.WaitGroup
}

// New creates an App and subscribes it to the accumulator's events.
// Detection starts enabled.
func New(config Config) *App {
	if config.Clock == nil {
		config.Clock = clk.New()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop().Sugar()
	}
	if config.Camera == nil {
		config.Camera = capture.NewCamera(capture.CameraConfig{})
	}
	if config.Detector == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig(), config.Logger.Named("detector")); err == nil {
			config.Detector = mp
			config.Logger.Infow("using MediaPipe hand detection")
		} else {
			config.Logger.Warnw("MediaPipe not available, using mock detector", "error", err)
			config.Detector = detector.NewMockDetector()
		}
	}
	if config.Accumulator == nil {
		config.Accumulator = passcode.New(passcode.Config{
			Clock:  config.Clock,
			Logger: config.Logger.Named("passcode"),
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		camera:      config.Camera,
		activity:    capture.NewActivityMonitor(config.MotionThreshold, config.Clock),
		detector:    config.Detector,
		accumulator: config.Accumulator,
		store:       config.Store,
		hub:         config.Hub,
		completer:   config.Completer,
		clock:       config.Clock,
		logger:      config.Logger,
		enabled:     true,
		ctx:         ctx,
		cancel:      cancel,
	}

	a.accumulator.Subscribe(a.handleEvent)
	return a
}

// SetEnabled enables or disables frame processing.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled != enabled {
		a.logger.Infow("detection toggled", "enabled", enabled)
	}
	a.enabled = enabled
}

// IsEnabled returns whether frame processing is enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Start opens the camera and runs the pipeline in the background.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.activity.FPS())

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	a.logger.Infow("detection pipeline started", "fps", a.camera.FPS())
	return nil
}

// Stop halts the pipeline, waits for running completion plugins and
// releases the camera and detector.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}

	a.cancel()
	a.completes.Wait()

	var errs []error
	if err := a.camera.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.detector.Close(); err != nil {
		errs = append(errs, err)
	}
	a.activity.Close()

	if err := errors.Join(errs...); err != nil {
		a.logger.Warnw("error releasing pipeline resources", "error", err)
	}
	a.logger.Infow("detection pipeline stopped")
}

// LatestFrame returns the last rendered overlay as JPEG and its sequence
// number. It implements server.FrameSource.
func (a *App) LatestFrame() ([]byte, uint64) {
	a.frameMu.RLock()
	defer a.frameMu.RUnlock()
	return a.frame, a.frameSeq
}

// Accumulator returns the passcode accumulator.
func (a *App) Accumulator() *passcode.Accumulator {
	return a.accumulator
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}
