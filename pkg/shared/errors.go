package shared

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errScheme = errors.New("scheme must be http or https")
	errHost   = errors.New("host is required")
)

// ConfigError collects every missing or malformed configuration value so a
// caller can report them together before any network activity.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid configuration"
	}
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

func (e *ConfigError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ConfigError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
