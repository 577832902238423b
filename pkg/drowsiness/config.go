package drowsiness

import (
	"math"
	"time"
)

// Default detector parameters.
const (
	DefaultEARThreshold = 0.25
	DefaultDrowsyTime   = 2 * time.Second
	DefaultFPS          = 30.0
)

// Config holds the hysteresis parameters for a Session.
type Config struct {
	// EARThreshold is the eye aspect ratio below which a frame counts as closed.
	EARThreshold float64 `json:"ear_threshold"`

	// DrowsyTime is how long the eyes must stay closed before DROWSY is raised.
	DrowsyTime time.Duration `json:"drowsy_time"`

	// FPS is the declared capture rate, used to convert DrowsyTime to frames.
	FPS float64 `json:"fps"`
}

// DefaultConfig returns the standard 0.25 threshold over 2 seconds at 30 FPS.
func DefaultConfig() Config {
	return Config{
		EARThreshold: DefaultEARThreshold,
		DrowsyTime:   DefaultDrowsyTime,
		FPS:          DefaultFPS,
	}
}

// ConsecFramesRequired returns round(FPS × DrowsyTime seconds).
func (c Config) ConsecFramesRequired() int {
	return int(math.Round(c.FPS * c.DrowsyTime.Seconds()))
}

// Validate checks the parameters are usable.
func (c Config) Validate() error {
	if math.IsNaN(c.EARThreshold) || c.EARThreshold <= 0 {
		return &ConfigError{Field: "EARThreshold", Message: "must be positive"}
	}
	if c.DrowsyTime <= 0 {
		return &ConfigError{Field: "DrowsyTime", Message: "must be positive"}
	}
	if math.IsNaN(c.FPS) || math.IsInf(c.FPS, 0) || c.FPS <= 0 {
		return &ConfigError{Field: "FPS", Message: "must be positive and finite"}
	}
	if c.ConsecFramesRequired() < 1 {
		return &ConfigError{Field: "DrowsyTime", Message: "shorter than one frame at the declared FPS"}
	}
	return nil
}
