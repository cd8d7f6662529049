package grid

import "fmt"

// ConfigurationError reports an invalid grid description: non-positive
// dimensions, out-of-bounds or overlapping feature coordinates, or a
// malformed coordinate literal. It is produced at construction time,
// before any episode starts.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "grid configuration: " + e.Reason
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
