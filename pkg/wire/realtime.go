package wire

import "encoding/binary"

// realTimeStatusLen is the fixed on-wire length of the real time
// indication characteristic.
const realTimeStatusLen = 20

// RealTimeStatus is the decoded real time indication: the device's live
// temperatures, relay state, alarms and boost state in a single read.
type RealTimeStatus struct {
	// TargetTemperature is the temperature the device regulates towards,
	// in degrees Celsius.
	TargetTemperature float64

	// TemperatureSettingPercent is the setpoint in percent, used by the
	// power heating mode.
	TemperatureSettingPercent uint8

	// RoomTemperature is the room sensor reading in degrees Celsius.
	RoomTemperature float64

	// FloorTemperature is the floor sensor reading in degrees Celsius.
	FloorTemperature float64

	// RelayActive reports whether the heating relay is currently closed.
	RelayActive bool

	// Alarms holds the active alarm bits.
	Alarms AlarmFlags

	// ActiveMode reports which scheduling regime drives the target.
	ActiveMode ActiveMode

	// HeatingMode is the regulation mode in effect.
	HeatingMode HeatingMode

	// BoostEnabled reports whether a boost is armed.
	BoostEnabled bool

	// BoostSetpointMinutes is the configured boost duration.
	BoostSetpointMinutes uint16

	// BoostRemainingMinutes is the time left on a running boost.
	BoostRemainingMinutes uint16

	// PotentiometerPercent is the absolute position of the hardware
	// potentiometer, 0 to 100.
	PotentiometerPercent uint8
}

// realTimeStatusMinLen is the shortest payload the decoder accepts:
// through the heating mode byte. The transfer layer strips trailing
// zero padding, so the boost and potentiometer bytes may be absent;
// they are zero-extended back before decoding.
const realTimeStatusMinLen = 14

// DecodeRealTimeStatus decodes the 20-byte real time indication payload.
//
// Layout: [0:2] target temperature uint16 scaled by 10, [2] setting
// percent, [3:5] room temperature int16 scaled by 10, [5:7] floor
// temperature int16 scaled by 10, [7] relay state, [8:12] alarm region
// (bits live in bytes 8 and 9, bytes 10 and 11 are reserved), [12]
// active mode, [13] heating mode, [14] boost enabled, [15:17] boost
// setpoint minutes, [17:19] boost remaining minutes, [19] potentiometer
// percent.
func DecodeRealTimeStatus(data []byte) (*RealTimeStatus, error) {
	if len(data) < realTimeStatusMinLen {
		return nil, decodeErrShort("real time status", realTimeStatusMinLen, len(data))
	}
	data = padToLen(data, realTimeStatusLen)

	return &RealTimeStatus{
		TargetTemperature:         float64(binary.LittleEndian.Uint16(data[0:2])) / 10,
		TemperatureSettingPercent: data[2],
		RoomTemperature:           float64(int16(binary.LittleEndian.Uint16(data[3:5]))) / 10,
		FloorTemperature:          float64(int16(binary.LittleEndian.Uint16(data[5:7]))) / 10,
		RelayActive:               data[7] != 0,
		Alarms:                    AlarmFlags(binary.LittleEndian.Uint16(data[8:10])),
		ActiveMode:                ActiveMode(data[12]),
		HeatingMode:               HeatingMode(data[13]),
		BoostEnabled:              data[14] != 0,
		BoostSetpointMinutes:      binary.LittleEndian.Uint16(data[15:17]),
		BoostRemainingMinutes:     binary.LittleEndian.Uint16(data[17:19]),
		PotentiometerPercent:      data[19],
	}, nil
}

// EncodeRealTimeStatus builds the 20-byte on-wire form of s. The device
// never accepts writes on this characteristic; the encoder exists for
// simulated peripherals.
func EncodeRealTimeStatus(s *RealTimeStatus) []byte {
	data := make([]byte, realTimeStatusLen)
	binary.LittleEndian.PutUint16(data[0:2], uint16(scaleTemp(s.TargetTemperature, 10)))
	data[2] = s.TemperatureSettingPercent
	binary.LittleEndian.PutUint16(data[3:5], uint16(scaleTemp(s.RoomTemperature, 10)))
	binary.LittleEndian.PutUint16(data[5:7], uint16(scaleTemp(s.FloorTemperature, 10)))
	if s.RelayActive {
		data[7] = 1
	}
	binary.LittleEndian.PutUint16(data[8:10], uint16(s.Alarms))
	data[12] = uint8(s.ActiveMode)
	data[13] = uint8(s.HeatingMode)
	if s.BoostEnabled {
		data[14] = 1
	}
	binary.LittleEndian.PutUint16(data[15:17], s.BoostSetpointMinutes)
	binary.LittleEndian.PutUint16(data[17:19], s.BoostRemainingMinutes)
	data[19] = s.PotentiometerPercent
	return data
}

// scaleTemp converts a temperature in degrees to its fixed-point wire
// value, rounding half away from zero.
func scaleTemp(deg float64, factor float64) int16 {
	v := deg * factor
	if v >= 0 {
		return int16(v + 0.5)
	}
	return int16(v - 0.5)
}
