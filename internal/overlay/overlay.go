// Package overlay draws detected hand skeletons and the passcode display onto
// video frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// Canvas size used for every rendered frame.
const (
	CanvasWidth  = 640
	CanvasHeight = 480
)

// Drawing style.
var (
	LineColor  = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	PointColor = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	TextColor  = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

const (
	lineWidth   = 2
	pointRadius = 5
	textScale   = 0.8
)

// Project maps normalized landmarks to pixel positions on a width x height canvas.
func Project(hand *detector.HandLandmarks, width, height int) []image.Point {
	pts := make([]image.Point, detector.NumLandmarks)
	for i, p := range hand.Points {
		pts[i] = image.Pt(int(p.X*float64(width)), int(p.Y*float64(height)))
	}
	return pts
}

// Render returns a new 640x480 canvas holding frame (or black when frame is
// nil or empty) with every hand drawn as a line through its landmarks in
// index order plus a dot per landmark, and the display text in the top-left
// corner. The caller closes the returned Mat.
func Render(frame *gocv.Mat, hands []detector.HandLandmarks, display string) gocv.Mat {
	canvas := gocv.NewMatWithSize(CanvasHeight, CanvasWidth, gocv.MatTypeCV8UC3)
	if frame != nil && !frame.Empty() {
		gocv.Resize(*frame, &canvas, image.Pt(CanvasWidth, CanvasHeight), 0, 0, gocv.InterpolationLinear)
	}

	for i := range hands {
		drawHand(&canvas, &hands[i])
	}

	if display != "" {
		gocv.PutText(&canvas, display, image.Pt(12, 32), gocv.FontHersheySimplex, textScale, TextColor, 2)
	}

	return canvas
}

func drawHand(canvas *gocv.Mat, hand *detector.HandLandmarks) {
	pts := Project(hand, CanvasWidth, CanvasHeight)

	for i := 1; i < len(pts); i++ {
		gocv.Line(canvas, pts[i-1], pts[i], LineColor, lineWidth)
	}
	for _, p := range pts {
		gocv.Circle(canvas, p, pointRadius, PointColor, -1)
	}
}

// EncodeJPEG encodes a rendered canvas for streaming.
func EncodeJPEG(canvas gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, canvas)
	if err != nil {
		return nil, fmt.Errorf("encode overlay: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases native memory that Close frees.
	data := buf.GetBytes()
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
