package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// ThumbPose selects the thumb geometry used by PoseLandmarks.
type ThumbPose int

const (
	// ThumbTucked folds the thumb across the palm: neither up nor thumbs down.
	ThumbTucked ThumbPose = iota
	// ThumbUp raises the thumb tip above its IP joint.
	ThumbUp
	// ThumbDown points the thumb down and inward, as a right hand facing the camera.
	ThumbDown
)

// fingerX is the horizontal position of each finger column, keyed by MCP index.
var fingerX = map[int]float64{
	IndexMCP:  0.55,
	MiddleMCP: 0.50,
	RingMCP:   0.45,
	PinkyMCP:  0.40,
}

// PoseLandmarks builds an upright right hand with the given thumb pose.
// Fingers named by their MCP index in extended point up; all others curl
// so that their tip sits below the PIP joint.
func PoseLandmarks(thumb ThumbPose, extended ...int) HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}

	switch thumb {
	case ThumbUp:
		landmarks.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.68}
		landmarks.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.58}
		landmarks.Points[ThumbTip] = Point3D{X: 0.63, Y: 0.48}
	case ThumbDown:
		landmarks.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.68}
		landmarks.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.74}
		landmarks.Points[ThumbTip] = Point3D{X: 0.55, Y: 0.82}
	default:
		landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.70}
		landmarks.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.68}
		landmarks.Points[ThumbTip] = Point3D{X: 0.62, Y: 0.72}
	}

	up := make(map[int]bool, len(extended))
	for _, mcp := range extended {
		up[mcp] = true
	}

	for mcp, x := range fingerX {
		landmarks.Points[mcp] = Point3D{X: x, Y: 0.68}
		if up[mcp] {
			landmarks.Points[mcp+1] = Point3D{X: x, Y: 0.55}
			landmarks.Points[mcp+2] = Point3D{X: x, Y: 0.45}
			landmarks.Points[mcp+3] = Point3D{X: x, Y: 0.35}
		} else {
			landmarks.Points[mcp+1] = Point3D{X: x, Y: 0.64, Z: -0.05}
			landmarks.Points[mcp+2] = Point3D{X: x - 0.02, Y: 0.68, Z: -0.04}
			landmarks.Points[mcp+3] = Point3D{X: x - 0.03, Y: 0.72, Z: -0.02}
		}
	}

	return landmarks
}

// IndexUpLandmarks returns a hand with only the index finger raised (letter a).
func IndexUpLandmarks() HandLandmarks {
	return PoseLandmarks(ThumbTucked, IndexMCP)
}

// VictoryLandmarks returns a hand with index and middle raised (letter b).
func VictoryLandmarks() HandLandmarks {
	return PoseLandmarks(ThumbTucked, IndexMCP, MiddleMCP)
}

// ThreeFingerLandmarks returns a hand with index, middle and ring raised (letter c).
func ThreeFingerLandmarks() HandLandmarks {
	return PoseLandmarks(ThumbTucked, IndexMCP, MiddleMCP, RingMCP)
}

// ShakaLandmarks returns a hand with thumb and pinky raised (letter e).
func ShakaLandmarks() HandLandmarks {
	return PoseLandmarks(ThumbUp, PinkyMCP)
}

// HornsLandmarks returns a hand with index and pinky raised (letter f).
func HornsLandmarks() HandLandmarks {
	return PoseLandmarks(ThumbTucked, IndexMCP, PinkyMCP)
}

// ThumbsDownLandmarks returns a closed hand with the thumb pointing down and inward.
func ThumbsDownLandmarks() HandLandmarks {
	return PoseLandmarks(ThumbDown)
}

// FistLandmarks returns a closed hand with the thumb tucked.
func FistLandmarks() HandLandmarks {
	return PoseLandmarks(ThumbTucked)
}

// ThumbsUpLandmarks returns a preset HandLandmarks representing a thumbs up gesture.
// The thumb is extended upward while other fingers are curled.
func ThumbsUpLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended upward (pointing up, Y decreases going up)
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	landmarks.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	landmarks.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}

	return landmarks
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open palm gesture.
// All fingers are extended outward (letter d).
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}
