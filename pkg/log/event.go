package log

import (
	"time"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates data flow relative to this controller.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// DeviceAddress is the peer's link address.
	DeviceAddress string `cbor:"6,keyasint,omitempty"`

	// Characteristic is the UUID of the characteristic involved, if any.
	Characteristic string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"8,keyasint,omitempty"`  // Transport layer
	Operation   *OperationEvent   `cbor:"9,keyasint,omitempty"`  // Wire layer
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"` // Session state
	Error       *ErrorEventData   `cbor:"11,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionIn indicates data read from the device.
	DirectionIn Direction = 0
	// DirectionOut indicates data written to the device.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the GATT frame layer (raw bytes).
	LayerTransport Layer = 0
	// LayerWire is the characteristic codec layer.
	LayerWire Layer = 1
	// LayerSession is the session lifecycle layer.
	LayerSession Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryOperation indicates a characteristic operation.
	CategoryOperation Category = 0
	// CategoryFrame indicates a raw GATT frame.
	CategoryFrame Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryOperation:
		return "OPERATION"
	case CategoryFrame:
		return "FRAME"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures one GATT frame at the transport layer. For split
// transfers each frame of the logical transfer produces one event.
type FrameEvent struct {
	// Size is the frame size in bytes (header plus payload).
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes.
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Final indicates the frame carried the final flag of a split
	// transfer. Always true for plain single-frame operations.
	Final bool `cbor:"3,keyasint,omitempty"`
}

// OperationEvent captures a logical characteristic operation at the wire
// layer, after split reassembly and before codec decoding.
type OperationEvent struct {
	// Name is the operation name (e.g. "read boost", "write calendar day").
	Name string `cbor:"1,keyasint"`

	// Size is the logical payload size in bytes.
	Size int `cbor:"2,keyasint"`

	// Duration is the total operation time including inter-frame delays.
	// Stored as nanoseconds.
	Duration *time.Duration `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures session lifecycle events.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
