package drowsiness

import "errors"

var (
	// ErrContractViolation is returned when landmark input has the wrong shape.
	ErrContractViolation = errors.New("drowsiness: contract violation")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("drowsiness: invalid config")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "drowsiness: " + e.Field + ": " + e.Message
}

// Unwrap lets callers match any config error with errors.Is(err, ErrInvalidConfig).
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
