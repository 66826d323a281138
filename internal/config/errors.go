package config

import "fmt"

// Error codes for build file problems.
const (
	ErrCodeNotFound  = "E201" // Build file missing or unreadable
	ErrCodeParse     = "E202" // Malformed YAML or unknown key
	ErrCodeSchema    = "E203" // Schema violation
	ErrCodeDuplicate = "E204" // Duplicate project or action name
)

// ConfigError describes a problem with a build file.
type ConfigError struct {
	Code    string
	Message string
	Path    string // Field path within the build file, if known
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
