package app

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/passcode"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

// Message types pushed to display clients.
const (
	MessageFrame = "frame"
	MessageEvent = "event"
)

// runPipeline reads frames at the rate chosen by the activity monitor until
// stopCh closes.
//
// Each tick:
//  1. read a frame (skipped while disabled)
//  2. let the activity monitor retune the camera frame rate
//  3. detect hands and feed them to the accumulator
//  4. render the overlay and publish it
//
// Frames are processed at idle rate too, so the hand count and shift state
// never go stale while the scene is quiet.
func (a *App) runPipeline(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := a.clock.Ticker(frameInterval(a.camera.FPS()))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				a.logger.Debugw("error reading frame", "error", err)
				continue
			}

			if fps, changed := a.ProcessFrame(frame); changed {
				ticker.Reset(frameInterval(fps))
			}
			frame.Close()
		}
	}
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 1
	}
	return time.Second / time.Duration(fps)
}

// ProcessFrame runs one frame through the pipeline. It returns the camera
// frame rate and whether the activity monitor changed it. Detection errors
// drop the frame.
func (a *App) ProcessFrame(frame *gocv.Mat) (fps int, changed bool) {
	fps, changed = a.activity.Observe(frame)
	if changed {
		a.camera.SetFPS(fps)
		a.logger.Debugw("frame rate changed", "fps", fps)
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		a.logger.Warnw("error detecting hands", "error", err)
		return fps, changed
	}

	a.accumulator.OnFrame(hands)

	display := a.accumulator.Display()
	canvas := overlay.Render(frame, hands, display)
	jpeg, err := overlay.EncodeJPEG(canvas)
	canvas.Close()
	if err != nil {
		a.logger.Warnw("error encoding overlay", "error", err)
	} else {
		a.frameMu.Lock()
		a.frame = jpeg
		a.frameSeq++
		a.frameMu.Unlock()
	}

	a.broadcast(server.DisplayMessage{
		Type:     MessageFrame,
		Display:  display,
		Passcode: a.accumulator.Passcode(),
		Shift:    a.accumulator.Shift(),
		Hands:    len(hands),
	})
	return fps, changed
}

// handleEvent receives every accumulator event.
func (a *App) handleEvent(e passcode.Event) {
	if a.store != nil {
		err := a.store.Events().Append(&store.Event{
			Kind:       string(e.Type),
			Symbol:     string(e.Symbol),
			Passcode:   e.Passcode,
			Shift:      e.Shift,
			Dropped:    e.Dropped,
			Auto:       e.Auto,
			OccurredAt: e.At,
		})
		if err != nil {
			a.logger.Warnw("failed to journal event", "type", e.Type, "error", err)
		}
	}

	a.broadcast(server.DisplayMessage{
		Type:     MessageEvent,
		Display:  e.Display,
		Passcode: e.Passcode,
		Shift:    e.Shift,
		Event:    e,
	})

	if e.Type == passcode.EventComplete && a.completer != nil {
		a.complete(e.Passcode)
	}
}

// complete hands the passcode to the completion plugin without blocking the
// pipeline.
func (a *App) complete(code string) {
	if a.ctx.Err() != nil {
		return
	}

	a.completes.Add(1)
	go func() {
		defer a.completes.Done()
		if err := a.completer.Complete(a.ctx, code); err != nil {
			a.logger.Warnw("completion plugin failed", "plugin", a.completer.Name(), "error", err)
		}
	}()
}

func (a *App) broadcast(msg server.DisplayMessage) {
	if a.hub == nil {
		return
	}
	if err := a.hub.Broadcast(msg); err != nil {
		a.logger.Warnw("failed to broadcast display", "error", err)
	}
}
