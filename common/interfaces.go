// Package common provides shared constants, types, and utilities
// used across the Grid Manager application.
package common

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
	// NotifyWithIcon sends a notification with a custom icon.
	NotifyWithIcon(title, message, icon string) error
}

// CapabilityStore defines the interface for newscap secret storage.
// Implementations may use the system keyring, encrypted files, etc.
type CapabilityStore interface {
	// Store saves the newscap for a gateway.
	Store(gatewayName, cap string) error
	// Get retrieves the newscap for a gateway.
	Get(gatewayName string) (string, error)
	// Delete removes the newscap for a gateway.
	Delete(gatewayName string) error
}

// Logger defines the interface for structured logging, satisfied by
// *AppLogger.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}
