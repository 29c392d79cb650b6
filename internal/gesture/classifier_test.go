package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/detector"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		hand  detector.HandLandmarks
		lower Symbol
		upper Symbol
	}{
		{"index only", detector.IndexUpLandmarks(), "a", "A"},
		{"index and middle", detector.VictoryLandmarks(), "b", "B"},
		{"index middle ring", detector.ThreeFingerLandmarks(), "c", "C"},
		{"open palm", detector.OpenPalmLandmarks(), "d", "D"},
		{"all four with tucked thumb", detector.PoseLandmarks(detector.ThumbTucked,
			detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP), "d", "D"},
		{"thumb and pinky", detector.ShakaLandmarks(), "e", "E"},
		{"index and pinky", detector.HornsLandmarks(), "f", "F"},
		{"index and pinky with thumb up", detector.PoseLandmarks(detector.ThumbUp,
			detector.IndexMCP, detector.PinkyMCP), "f", "F"},
		{"thumbs down", detector.ThumbsDownLandmarks(), Delete, Delete},
		{"fist", detector.FistLandmarks(), None, None},
		{"thumbs up", detector.ThumbsUpLandmarks(), None, None},
		{"pinky without thumb", detector.PoseLandmarks(detector.ThumbTucked, detector.PinkyMCP), None, None},
		{"middle only", detector.PoseLandmarks(detector.ThumbTucked, detector.MiddleMCP), None, None},
		{"middle and ring", detector.PoseLandmarks(detector.ThumbUp, detector.MiddleMCP, detector.RingMCP), None, None},
		{"index middle pinky", detector.PoseLandmarks(detector.ThumbTucked,
			detector.IndexMCP, detector.MiddleMCP, detector.PinkyMCP), None, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lower, Classify(tt.hand, false), "shift off")
			assert.Equal(t, tt.upper, Classify(tt.hand, true), "shift on")
		})
	}
}

func TestClassify_ThumbsDownWins(t *testing.T) {
	hand := detector.PoseLandmarks(detector.ThumbDown, detector.IndexMCP, detector.MiddleMCP)
	require.True(t, Extensions(&hand).Only(Index, Middle), "fixture should carry the b shape")

	assert.Equal(t, Delete, Classify(hand, false))
	assert.Equal(t, Delete, Classify(hand, true))
}

func TestClassify_IndexOnlyIgnoresThumb(t *testing.T) {
	for _, thumb := range []detector.ThumbPose{detector.ThumbTucked, detector.ThumbUp} {
		hand := detector.PoseLandmarks(thumb, detector.IndexMCP)
		assert.Equal(t, Symbol("a"), Classify(hand, false))
		assert.Equal(t, Symbol("A"), Classify(hand, true))
	}
}

func TestExtensions(t *testing.T) {
	tests := []struct {
		name  string
		hand  detector.HandLandmarks
		want  Extension
		count int
	}{
		{"fist", detector.FistLandmarks(), Extension{}, 0},
		{"index", detector.IndexUpLandmarks(), Extension{true, false, false, false}, 1},
		{"horns", detector.HornsLandmarks(), Extension{true, false, false, true}, 2},
		{"open palm", detector.OpenPalmLandmarks(), Extension{true, true, true, true}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extensions(&tt.hand)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.count, got.Count())
		})
	}
}

func TestExtension_Only(t *testing.T) {
	ext := Extension{true, true, false, false}

	assert.True(t, ext.Only(Index, Middle))
	assert.False(t, ext.Only(Index))
	assert.False(t, ext.Only(Index, Middle, Ring))
	assert.True(t, Extension{}.Only())
}

func TestThumbsDown_TipEqualToJoint(t *testing.T) {
	hand := detector.FistLandmarks()
	hand.Points[detector.ThumbTip].Y = hand.Points[detector.ThumbIP].Y
	hand.Points[detector.ThumbTip].X = hand.Points[detector.ThumbMCP].X - 0.1

	assert.False(t, ThumbsDown(&hand), "strictly below is required")
}

func TestRules_Order(t *testing.T) {
	var letters []rune
	for _, r := range Rules() {
		letters = append(letters, r.Letter)
	}
	assert.Equal(t, []rune{'a', 'b', 'c', 'f', 'd', 'e'}, letters)
}

func TestSymbol(t *testing.T) {
	assert.True(t, Symbol("a").IsLetter())
	assert.False(t, Delete.IsLetter())
	assert.False(t, None.IsLetter())
	assert.Equal(t, "none", None.String())
	assert.Equal(t, Symbol("Q"), Letter('q', true))
	assert.Equal(t, Symbol("q"), Letter('Q', false))
}
