package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures that are reported back to the caller as-is
type ErrorKind string

const (
	KindPermissionDenied ErrorKind = "permission_denied"
	KindSetupRequired    ErrorKind = "setup_required"
	KindValidationFailed ErrorKind = "validation_failed"
)

// Sentinels for errors.Is checks against a SettingsError kind
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrSetupRequired    = errors.New("setup required")
	ErrValidationFailed = errors.New("validation failed")
)

// SettingsError is a user-facing failure. Anything that is not a SettingsError
// is treated as an unexpected failure and never shown to the caller verbatim.
type SettingsError struct {
	Kind   ErrorKind
	Title  string // Short heading, e.g. "Invalid Color"
	Reason string // Human-readable explanation
}

// Error implements the error interface
func (e *SettingsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Is lets errors.Is match the sentinel for the error's kind
func (e *SettingsError) Is(target error) bool {
	switch e.Kind {
	case KindPermissionDenied:
		return target == ErrPermissionDenied
	case KindSetupRequired:
		return target == ErrSetupRequired
	case KindValidationFailed:
		return target == ErrValidationFailed
	}
	return false
}

// NewPermissionDenied creates a permission error
func NewPermissionDenied(reason string) *SettingsError {
	return &SettingsError{Kind: KindPermissionDenied, Title: "Permission Denied", Reason: reason}
}

// NewSetupRequired creates an error for mutations attempted before prerequisite configuration exists
func NewSetupRequired(reason string) *SettingsError {
	return &SettingsError{Kind: KindSetupRequired, Title: "Setup Required", Reason: reason}
}

// NewValidationError creates an error for a value that failed validation
func NewValidationError(title, reason string) *SettingsError {
	return &SettingsError{Kind: KindValidationFailed, Title: title, Reason: reason}
}

// AsSettingsError extracts a SettingsError from an error chain
func AsSettingsError(err error) (*SettingsError, bool) {
	var se *SettingsError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
