package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// forceControlLen is the extended force control record length. Older
// firmware exposes a single potentiometer byte instead and cannot take
// external control writes.
const forceControlLen = 19

// ErrLegacyForceControl reports a device whose firmware predates the
// extended force control record. Reads decode to a disabled placeholder;
// writes are impossible.
var ErrLegacyForceControl = errors.New("device firmware only supports the legacy force control format")

// ForceControl is the external control state: when one of the active
// modes is set the device ignores its own regulation and potentiometer
// and follows the written target.
type ForceControl struct {
	// Mode is the external control mode in effect.
	Mode ForceControlMode

	// Temperature is the absolute target in degrees Celsius used by
	// ForceControlTemperature, 5 to 35.
	Temperature float64

	// TemperatureOffset is the offset in degrees Celsius used by
	// ForceControlOffset, -20 to 20.
	TemperatureOffset float64

	// Legacy reports that the device returned the single-byte format.
	// The other fields hold neutral placeholders in that case.
	Legacy bool
}

// Engaged reports whether external control is actively steering the
// device.
func (f *ForceControl) Engaged() bool {
	return f.Mode == ForceControlTemperature || f.Mode == ForceControlOffset
}

// DecodeForceControl decodes a force control payload.
//
// The extended record is at least 19 bytes: [8:10] absolute temperature
// uint16 scaled by 10, [12:14] offset int16 scaled by 10, [17] mode.
// A single-byte payload is the legacy potentiometer format and decodes
// to a disabled placeholder with Legacy set.
func DecodeForceControl(data []byte) (*ForceControl, error) {
	switch {
	case len(data) >= forceControlLen:
		return &ForceControl{
			Mode:              ForceControlMode(data[17]),
			Temperature:       float64(binary.LittleEndian.Uint16(data[8:10])) / 10,
			TemperatureOffset: float64(int16(binary.LittleEndian.Uint16(data[12:14]))) / 10,
		}, nil
	case len(data) == 1:
		return &ForceControl{
			Mode:        ForceControlOff,
			Temperature: 20,
			Legacy:      true,
		}, nil
	default:
		return nil, &DecodeError{
			Format:  "force control",
			Message: fmt.Sprintf("unexpected length %d", len(data)),
		}
	}
}

// PatchForceControl overlays mode and targets onto the current record
// read from the device and returns the bytes to write back. The record
// carries fields with undocumented meaning, so a blind full encode
// would destroy them; only the known offsets change. Targets outside
// the accepted range are clamped, matching the device's own behavior.
//
// Returns ErrLegacyForceControl when current is shorter than the
// extended record.
func PatchForceControl(current []byte, mode ForceControlMode, temperature, offset float64) ([]byte, error) {
	if len(current) < forceControlLen {
		return nil, ErrLegacyForceControl
	}
	if !mode.Valid() {
		return nil, rangeErr("force control mode", uint8(mode), "1, 2, 5 or 6")
	}

	data := make([]byte, len(current))
	copy(data, current)

	binary.LittleEndian.PutUint16(data[8:10], uint16(scaleTemp(clamp(temperature, 5, 35), 10)))
	binary.LittleEndian.PutUint16(data[12:14], uint16(scaleTemp(clamp(offset, -20, 20), 10)))
	data[17] = uint8(mode)
	return data, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
