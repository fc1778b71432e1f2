package session

import "errors"

// Session errors.
var (
	// ErrAlreadyConnecting indicates a second explicit Connect was
	// issued while an attempt was already in flight. Use EnsureReady to
	// wait for the in-flight attempt instead.
	ErrAlreadyConnecting = errors.New("connection attempt already in progress")

	// ErrAuthenticationFailed indicates pairing or the factory-reset-id
	// exchange failed. If the id was previously valid the device has
	// most likely been factory-reset; remove the stored credential and
	// re-pair.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotReady indicates an operation was attempted and the lazy
	// reconnect also failed.
	ErrNotReady = errors.New("session not ready")

	// ErrSessionClosed indicates the session was closed and must not be
	// reused.
	ErrSessionClosed = errors.New("session closed")
)
