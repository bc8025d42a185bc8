package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "fogcubes")

	// 1x2 image: bottom row red, top row blue (OpenGL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode capture: %v", err)
	}

	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	bottom := color.RGBAModel.Convert(img.At(0, 1)).(color.RGBA)
	if top != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "fogcubes")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestFilenamesDoNotCollide(t *testing.T) {
	sc := NewScreenshotCapture("out", "fogcubes")
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sc.now = func() time.Time { return fixed }

	first := sc.nextFilename()
	second := sc.nextFilename()
	if first == second {
		t.Errorf("two captures in one second share %q", first)
	}
	if first != filepath.Join("out", "fogcubes_2026-01-02_03-04-05.png") {
		t.Errorf("unexpected first name %q", first)
	}
	if second != filepath.Join("out", "fogcubes_2026-01-02_03-04-05_1.png") {
		t.Errorf("unexpected second name %q", second)
	}
}
