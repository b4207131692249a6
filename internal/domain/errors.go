package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) by repositories when a record does not exist
var ErrNotFound = errors.New("not found")

// ConfigurationError reports an invalid client profile or planning assumption.
// It is raised before any simulation work starts and is never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func newConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

// IsConfigurationError reports whether err wraps a *ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
