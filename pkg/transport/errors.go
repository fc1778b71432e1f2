package transport

import (
	"errors"
	"fmt"
)

// Transport errors.
var (
	// ErrDeviceNotFound indicates the device was not visible to the
	// adapter during discovery.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrTimeout indicates an operation exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrCharacteristicNotFound indicates the peripheral does not expose
	// the requested characteristic.
	ErrCharacteristicNotFound = errors.New("characteristic not found")
)

// TransportError reports a link-level GATT failure. The transport handle
// that produced it must be considered dead: the session is forced back to
// Disconnected and the caller must reconnect.
type TransportError struct {
	// Op is the failed operation ("connect", "pair", "read", "write").
	Op string

	// Characteristic is the UUID involved, if any.
	Characteristic string

	// Err is the underlying stack error.
	Err error
}

func (e *TransportError) Error() string {
	if e.Characteristic != "" {
		return fmt.Sprintf("transport %s %s: %v", e.Op, e.Characteristic, e.Err)
	}
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// linkErr wraps a stack error as a TransportError.
func linkErr(op, characteristic string, err error) *TransportError {
	return &TransportError{Op: op, Characteristic: characteristic, Err: err}
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
