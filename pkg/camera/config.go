// Package camera captures webcam frames and renders the status overlay using GoCV.
package camera

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds webcam capture parameters.
type Config struct {
	DeviceID  int `json:"device_id" validate:"gte=0"`         // OpenCV capture device index
	Width     int `json:"width" validate:"gte=160,lte=3840"`  // Requested frame width in pixels
	Height    int `json:"height" validate:"gte=120,lte=2160"` // Requested frame height in pixels
	Framerate int `json:"framerate" validate:"gte=1,lte=120"` // Requested capture rate, also the declared FPS
	Quality   int `json:"quality" validate:"gte=1,lte=100"`   // JPEG quality 1-100
}

// DefaultConfig returns 640x480 at 30 FPS on the first webcam.
func DefaultConfig() Config {
	return Config{
		DeviceID:  0,
		Width:     640,
		Height:    480,
		Framerate: 30,
		Quality:   80,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f.Tag() {
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", f.Field(), f.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", f.Field(), f.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", f.Field(), f.Tag()))
		}
	}
	return msgs
}
