// Package detector provides hand detection interfaces and types for gesture input.
package detector

import "fmt"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark position. X and Y are normalized to [0,1] image
// space with Y growing downward; Z is relative depth and is not used for
// classification.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// MustHand builds a HandLandmarks from a detector point list.
// The detector always reports exactly NumLandmarks points for a hand, so any
// other length is a broken contract and panics.
func MustHand(points []Point3D, handedness string, score float64) HandLandmarks {
	if len(points) != NumLandmarks {
		panic(fmt.Sprintf("detector: hand has %d landmarks, want %d", len(points), NumLandmarks))
	}

	h := HandLandmarks{
		Handedness: handedness,
		Score:      score,
	}
	copy(h.Points[:], points)
	return h
}

// Tip returns the fingertip landmark for the finger whose MCP index is mcp.
func (h *HandLandmarks) Tip(mcp int) Point3D {
	return h.Points[mcp+3]
}

// PIP returns the second-to-last joint below the fingertip for the finger
// whose MCP index is mcp.
func (h *HandLandmarks) PIP(mcp int) Point3D {
	return h.Points[mcp+1]
}
