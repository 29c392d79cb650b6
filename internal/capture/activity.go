package capture

import (
	"image"
	"sync"
	"time"

	clk "github.com/benbjohnson/clock"
	"gocv.io/x/gocv"
)

// Frame pacing.
const (
	// IdleFPS is the frame rate while the scene is still.
	IdleFPS = 5
	// ActiveFPS is the frame rate while something moves in front of the camera.
	ActiveFPS = 15
	// IdleAfter is how long the scene must stay still before dropping to IdleFPS.
	IdleAfter = 2 * time.Second
)

// Frame differencing constants.
const (
	blurSize      = 21
	diffThreshold = 25
)

// ActivityMonitor decides the capture frame rate from frame-to-frame motion.
// It only paces the camera: every frame it sees is still meant to be
// processed, so hand counts stay current while the scene is quiet.
type ActivityMonitor struct {
	threshold float64
	clock     clk.Clock

	mu         sync.Mutex
	prev       gocv.Mat
	hasPrev    bool
	active     bool
	lastMotion time.Time
}

// NewActivityMonitor creates a monitor. threshold is the percentage of
// changed pixels that counts as motion; values <= 0 select 1%.
func NewActivityMonitor(threshold float64, clock clk.Clock) *ActivityMonitor {
	if threshold <= 0 {
		threshold = 1.0
	}
	if clock == nil {
		clock = clk.New()
	}
	return &ActivityMonitor{
		threshold: threshold,
		clock:     clock,
		prev:      gocv.NewMat(),
	}
}

// Observe feeds one frame and returns the frame rate the camera should run
// at, and whether it differs from the previous decision.
func (m *ActivityMonitor) Observe(frame *gocv.Mat) (fps int, changed bool) {
	moved, _ := m.motion(frame)

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	was := m.active
	if moved {
		m.lastMotion = now
		m.active = true
	} else if m.active && now.Sub(m.lastMotion) > IdleAfter {
		m.active = false
	}

	return m.fpsLocked(), was != m.active
}

// FPS returns the current frame rate decision.
func (m *ActivityMonitor) FPS() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fpsLocked()
}

func (m *ActivityMonitor) fpsLocked() int {
	if m.active {
		return ActiveFPS
	}
	return IdleFPS
}

// motion compares frame with the previous one after grayscale and blur and
// reports whether more than threshold percent of the pixels changed.
func (m *ActivityMonitor) motion(frame *gocv.Mat) (bool, float64) {
	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(blurSize, blurSize), 0, 0, gocv.BorderDefault)

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasPrev {
		blurred.CopyTo(&m.prev)
		m.hasPrev = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prev, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(thresh)) / float64(thresh.Rows()*thresh.Cols()) * 100.0
	blurred.CopyTo(&m.prev)

	return changed > m.threshold, changed
}

// Close releases the stored frame.
func (m *ActivityMonitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prev.Close()
	m.prev = gocv.NewMat()
	m.hasPrev = false
	m.active = false
}
