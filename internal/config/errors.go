package config

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a setting that cannot be used. It is raised
// before any request is sent.
type ConfigurationError struct {
	Field       string
	Value       any
	Message     string
	Suggestions []string
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid %s '%v': %s", e.Field, e.Value, e.Message)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// FileError is returned when the config file exists but cannot be used.
type FileError struct {
	Path  string
	Cause error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("config file %s: %v", e.Path, e.Cause)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}
