package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_Playback(t *testing.T) {
	frame1 := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame1, &frame2}, false)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Fatalf("ReadFrame() before Open error = %v, want ErrCameraNotOpen", err)
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		f.Close()
	}

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrNoMoreFrames) {
		t.Errorf("ReadFrame() after playback error = %v, want ErrNoMoreFrames", err)
	}

	cam.Reset()
	f, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after Reset error = %v", err)
	}
	f.Close()
}

func TestMockCamera_Loop(t *testing.T) {
	cam := NewBlankCamera()
	cam.Open()
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() iteration %d error = %v", i, err)
		}
		if f.Cols() != DefaultWidth || f.Rows() != DefaultHeight {
			t.Errorf("frame size = %dx%d, want %dx%d", f.Cols(), f.Rows(), DefaultWidth, DefaultHeight)
		}
		f.Close()
	}
}

func TestMockCamera_FPSChanges(t *testing.T) {
	cam := NewMockCamera(nil, false)

	cam.SetFPS(ActiveFPS)
	cam.SetFPS(IdleFPS)

	got := cam.FPSChanges()
	if len(got) != 2 || got[0] != ActiveFPS || got[1] != IdleFPS {
		t.Errorf("FPSChanges() = %v, want [%d %d]", got, ActiveFPS, IdleFPS)
	}
	if cam.FPS() != IdleFPS {
		t.Errorf("FPS() = %d, want %d", cam.FPS(), IdleFPS)
	}
}
