package wire

import "encoding/binary"

const boostLen = 8

// BoostConfig is the boost characteristic: a temporary setpoint offset
// that runs for a fixed number of minutes and then expires on its own.
type BoostConfig struct {
	// Enabled arms the boost. The device starts counting down as soon
	// as an enabled configuration is written.
	Enabled bool

	// OffsetDegrees is the temperature offset applied while boosting,
	// -20 to 20 degrees Celsius.
	OffsetDegrees float64

	// OffsetPercent is the duty-cycle offset applied in power mode,
	// -100 to 100.
	OffsetPercent int8

	// SetpointMinutes is the boost duration.
	SetpointMinutes uint16

	// RemainingMinutes is the countdown as last reported by the device.
	// Ignored on write; the device always starts from SetpointMinutes.
	RemainingMinutes uint16
}

// DecodeBoostConfig decodes the 8-byte boost payload.
//
// Layout: [0] enabled, [1:3] temperature offset int16 scaled by 100,
// [3] percent offset int8, [4:6] setpoint minutes uint16, [6:8]
// remaining minutes uint16.
func DecodeBoostConfig(data []byte) (*BoostConfig, error) {
	if len(data) < boostLen {
		return nil, decodeErrShort("boost", boostLen, len(data))
	}

	return &BoostConfig{
		Enabled:          data[0] != 0,
		OffsetDegrees:    float64(int16(binary.LittleEndian.Uint16(data[1:3]))) / 100,
		OffsetPercent:    int8(data[3]),
		SetpointMinutes:  binary.LittleEndian.Uint16(data[4:6]),
		RemainingMinutes: binary.LittleEndian.Uint16(data[6:8]),
	}, nil
}

// EncodeBoostConfig validates and encodes b. The remaining minutes field
// is always written as zero; the device manages the countdown itself.
func EncodeBoostConfig(b *BoostConfig) ([]byte, error) {
	if b.OffsetDegrees < -20 || b.OffsetDegrees > 20 {
		return nil, rangeErr("boost offset", b.OffsetDegrees, "-20 to 20 degrees")
	}
	if b.OffsetPercent < -100 || b.OffsetPercent > 100 {
		return nil, rangeErr("boost percent offset", b.OffsetPercent, "-100 to 100")
	}

	data := make([]byte, boostLen)
	if b.Enabled {
		data[0] = 1
	}
	binary.LittleEndian.PutUint16(data[1:3], uint16(scaleTemp(b.OffsetDegrees, 100)))
	data[3] = byte(b.OffsetPercent)
	binary.LittleEndian.PutUint16(data[4:6], b.SetpointMinutes)
	return data, nil
}
