package camera

import (
	"errors"
	"fmt"
	"sync"

	"github.com/teslashibe/go-drowsy/internal/log"
	"github.com/teslashibe/go-drowsy/pkg/landmarks"
	"gocv.io/x/gocv"
)

// ErrReadFailed is returned when the device yields no frame.
var ErrReadFailed = errors.New("camera: read failed")

// Capture reads frames from a webcam and encodes them as JPEG.
type Capture struct {
	config Config
	cap    *gocv.VideoCapture
	img    gocv.Mat
	mu     sync.Mutex // Protects cap and img
}

// Open opens the capture device described by cfg.
func Open(cfg Config) (*Capture, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("camera: invalid config: %v", errs)
	}

	vc, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("camera: open device %d: %w", cfg.DeviceID, err)
	}
	vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	vc.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	log.Info("camera opened",
		"device", cfg.DeviceID,
		"width", vc.Get(gocv.VideoCaptureFrameWidth),
		"height", vc.Get(gocv.VideoCaptureFrameHeight),
		"fps", vc.Get(gocv.VideoCaptureFPS))

	return &Capture{
		config: cfg,
		cap:    vc,
		img:    gocv.NewMat(),
	}, nil
}

// Read grabs the next frame and returns it JPEG-encoded with its pixel size.
func (c *Capture) Read() (landmarks.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ok := c.cap.Read(&c.img); !ok || c.img.Empty() {
		return landmarks.Frame{}, ErrReadFailed
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, c.img,
		[]int{gocv.IMWriteJpegQuality, c.config.Quality})
	if err != nil {
		return landmarks.Frame{}, fmt.Errorf("camera: encode: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())

	return landmarks.Frame{
		JPEG:   data,
		Width:  c.img.Cols(),
		Height: c.img.Rows(),
	}, nil
}

// Close releases the device.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.img.Close()
	return c.cap.Close()
}
