package camera

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"testing"

	"github.com/teslashibe/go-drowsy/pkg/drowsiness"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("DefaultConfig should validate: %v", errs)
	}
	if cfg.Framerate != 30 {
		t.Errorf("Expected Framerate=30, got %d", cfg.Framerate)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{DeviceID: -1, Width: 10, Height: 10, Framerate: 0, Quality: 101}
	if errs := cfg.Validate(); len(errs) != 5 {
		t.Errorf("expected 5 validation errors, got %v", errs)
	}

	cfg = DefaultConfig()
	cfg.Width = 100
	errs := cfg.Validate()
	if len(errs) != 1 || errs[0] != "width must be at least 160" {
		t.Errorf("got %v, want [width must be at least 160]", errs)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		cfg, ok := Preset(name)
		if !ok {
			t.Errorf("preset %q missing", name)
			continue
		}
		if errs := cfg.Validate(); len(errs) > 0 {
			t.Errorf("preset %q invalid: %v", name, errs)
		}
	}

	hd, _ := Preset("1080p")
	if hd.Width != 1920 || hd.Framerate != 15 || hd.DeviceID != 0 {
		t.Errorf("1080p = %+v", hd)
	}
	if _, ok := Preset("8k"); ok {
		t.Error("unknown preset should not resolve")
	}
}

func TestStateColor(t *testing.T) {
	if StateColor(drowsiness.Drowsy) != ColorDrowsy {
		t.Error("DROWSY should be red")
	}
	if StateColor(drowsiness.Alert) != ColorAlert {
		t.Error("ALERT should be green")
	}
	if StateColor(drowsiness.NoFace) != ColorNoFace {
		t.Error("NO_FACE should be yellow")
	}
}

func TestOverlay_Annotate(t *testing.T) {
	src := solidJPEG(320, 240, color.RGBA{40, 40, 40, 255})

	out, err := NewOverlay(80).Annotate(src, drowsiness.Classification{
		State: drowsiness.Drowsy, EAR: 0.1, HasEAR: true,
	})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("annotated frame is not a JPEG: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Errorf("size changed: %v", img.Bounds())
	}
}

func TestOverlay_InvalidJPEG(t *testing.T) {
	if _, err := NewOverlay(80).Annotate([]byte("not a jpeg"), drowsiness.Classification{}); err == nil {
		t.Error("expected error for invalid JPEG")
	}
}

func TestCapture_Open(t *testing.T) {
	if os.Getenv("DROWSY_CAMERA_TEST") == "" {
		t.Skip("set DROWSY_CAMERA_TEST=1 to run against a real webcam")
	}

	c, err := Open(DefaultConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	frame, err := c.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if frame.Width == 0 || frame.Height == 0 || len(frame.JPEG) == 0 {
		t.Errorf("empty frame: %dx%d, %d bytes", frame.Width, frame.Height, len(frame.JPEG))
	}
}

func solidJPEG(width, height int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	jpeg.Encode(&buf, img, nil)
	return buf.Bytes()
}
