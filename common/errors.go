// Package common provides shared constants, types, and utilities
// used across the Grid Manager application.
package common

import "errors"

// Sentinel errors for shell operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Preference errors.
	ErrNotFound = errors.New("preference not found")

	// Coordinator errors.
	ErrNoSuchView     = errors.New("no such view registered")
	ErrUnknownGateway = errors.New("gateway not present in registry")

	// Newscap storage errors.
	ErrCapNotFound = errors.New("newscap not found")
	ErrCapStorage  = errors.New("failed to store newscap")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
