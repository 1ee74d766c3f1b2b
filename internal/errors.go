package internal

import "fmt"

// ConfigurationError is fatal: a run never starts with a broken schema or an
// out-of-range threshold.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s", e.Reason)
}

func Configf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// BatchItemError wraps one file's pipeline failure so the batch can keep
// going while the cause stays attached.
type BatchItemError struct {
	File string
	Err  error
}

func (e *BatchItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *BatchItemError) Unwrap() error { return e.Err }
