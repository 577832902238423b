// Package config provides environment-backed configuration helpers for go-drowsy commands.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvEARThreshold = "DROWSY_EAR_THRESHOLD"
	EnvDrowsyTime   = "DROWSY_TIME"
	EnvFPS          = "DROWSY_FPS"
	EnvCamera       = "CAMERA_DEVICE"
	EnvCameraWidth  = "CAMERA_WIDTH"
	EnvCameraHeight = "CAMERA_HEIGHT"
	EnvFaceMeshURL  = "FACEMESH_URL"
	EnvWebPort      = "WEB_PORT"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFile      = "LOG_FILE"
)

// LoadDotEnv loads variables from the given .env files (default ".env").
// Missing files are ignored and variables already set are not overridden.
// It reports whether any file was loaded.
func LoadDotEnv(files ...string) bool {
	if len(files) == 0 {
		files = []string{".env"}
	}
	loaded := false
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err == nil {
			loaded = true
		}
	}
	return loaded
}

// String returns the env var or def when unset or blank.
func String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Int returns the env var parsed as an int, or def.
func Int(key string, def int) int {
	if v := String(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Float returns the env var parsed as a float64, or def.
func Float(key string, def float64) float64 {
	if v := String(key, ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// Duration returns the env var parsed as a duration, or def.
// Bare numbers are read as seconds ("2" means 2s).
func Duration(key string, def time.Duration) time.Duration {
	v := String(key, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return def
}

// Bool returns the env var parsed as a bool, or def.
func Bool(key string, def bool) bool {
	if v := String(key, ""); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
