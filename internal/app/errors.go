package app

import (
	"errors"
	"fmt"
)

// Sentinel errors for application lifecycle.
var (
	// ErrQuit is returned by the event loop when the user asks to exit.
	// The run loop treats it as a clean shutdown.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned when Run is called twice, or when
	// the backend is swapped while the loop is live.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend is returned by Run when no backend has been set.
	ErrNoBackend = errors.New("no backend configured")
)

// InitError wraps a failure during application startup.
type InitError struct {
	// Component is the part that failed to initialize.
	Component string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
