package landmarks

import (
	"context"
	"time"
)

// Detector is the interface for face-mesh backends.
type Detector interface {
	// Detect finds face meshes in the frame, primary face first.
	Detect(ctx context.Context, frame Frame) (Result, error)

	// Close releases resources
	Close() error
}

// Config holds remote detector configuration
type Config struct {
	URL          string        // WebSocket endpoint of the face-mesh service
	Timeout      time.Duration // Per-frame round trip limit
	DialTimeout  time.Duration
	MaxFrameSize int64 // Largest accepted response in bytes
}

// DefaultConfig returns defaults for a face-mesh sidecar on localhost
func DefaultConfig() Config {
	return Config{
		URL:          "ws://127.0.0.1:8765/mesh",
		Timeout:      500 * time.Millisecond,
		DialTimeout:  3 * time.Second,
		MaxFrameSize: 1 << 20,
	}
}
