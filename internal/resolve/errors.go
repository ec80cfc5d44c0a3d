package resolve

import "fmt"

// ConfigurationError marks a recipe/toolchain combination the resolver
// cannot translate into a build directive. It is fatal: the caller must
// abort rather than substitute a default.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// configErrorf builds a ConfigurationError from a format string.
func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
