package wire

import "encoding/binary"

const (
	floorLimitsLen       = 4
	childLockLen         = 3
	ledBrightnessLen     = 3
	floorSensorConfigLen = 13
	energyUnitLen        = 4
)

// FloorLimits bounds the floor temperature in combination mode. The low
// limit must stay at least 8 degrees under the high limit or the device
// rejects the configuration.
type FloorLimits struct {
	// Low is the minimum floor temperature in degrees Celsius, 5 to 42.
	Low float64

	// High is the maximum floor temperature in degrees Celsius, 13 to 50.
	High float64
}

// DecodeFloorLimits decodes the 4-byte floor limits payload.
//
// Layout: [0:2] low limit uint16 scaled by 100, [2:4] high limit uint16
// scaled by 100.
func DecodeFloorLimits(data []byte) (*FloorLimits, error) {
	if len(data) < floorLimitsLen {
		return nil, decodeErrShort("floor limits", floorLimitsLen, len(data))
	}

	return &FloorLimits{
		Low:  float64(binary.LittleEndian.Uint16(data[0:2])) / 100,
		High: float64(binary.LittleEndian.Uint16(data[2:4])) / 100,
	}, nil
}

// EncodeFloorLimits validates and encodes l.
func EncodeFloorLimits(l *FloorLimits) ([]byte, error) {
	if l.Low < 5 || l.Low > 42 {
		return nil, rangeErr("floor low limit", l.Low, "5 to 42 degrees")
	}
	if l.High < 13 || l.High > 50 {
		return nil, rangeErr("floor high limit", l.High, "13 to 50 degrees")
	}
	if l.High-l.Low < 8 {
		return nil, rangeErr("floor limits", l.High-l.Low, "high must exceed low by at least 8 degrees")
	}

	data := make([]byte, floorLimitsLen)
	binary.LittleEndian.PutUint16(data[0:2], uint16(scaleTemp(l.Low, 100)))
	binary.LittleEndian.PutUint16(data[2:4], uint16(scaleTemp(l.High, 100)))
	return data, nil
}

// DecodeRoomCalibration decodes the room sensor calibration offset in
// degrees Celsius from its 2-byte payload, an int16 scaled by 10.
func DecodeRoomCalibration(data []byte) (float64, error) {
	if len(data) < 2 {
		return 0, decodeErrShort("room calibration", 2, len(data))
	}
	return float64(int16(binary.LittleEndian.Uint16(data[0:2]))) / 10, nil
}

// EncodeRoomCalibration validates and encodes a calibration offset,
// -5 to 5 degrees Celsius.
func EncodeRoomCalibration(offset float64) ([]byte, error) {
	if offset < -5 || offset > 5 {
		return nil, rangeErr("room calibration", offset, "-5 to 5 degrees")
	}
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, uint16(scaleTemp(offset, 10)))
	return data, nil
}

// DecodeHeatingPower decodes the configured heater wattage from its
// 2-byte payload. The value is a memory slot for applications; the
// device does not act on it.
func DecodeHeatingPower(data []byte) (uint16, error) {
	if len(data) < 2 {
		return 0, decodeErrShort("heating power", 2, len(data))
	}
	return binary.LittleEndian.Uint16(data[0:2]), nil
}

// EncodeHeatingPower validates and encodes a heater wattage, 0 to 9999.
func EncodeHeatingPower(watts uint16) ([]byte, error) {
	if watts > 9999 {
		return nil, rangeErr("heating power", watts, "0 to 9999 watts")
	}
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, watts)
	return data, nil
}

// DecodeFloorArea decodes the heated floor area from its 2-byte
// payload. Like heating power, this is application storage only.
func DecodeFloorArea(data []byte) (uint16, error) {
	if len(data) < 2 {
		return 0, decodeErrShort("floor area", 2, len(data))
	}
	return binary.LittleEndian.Uint16(data[0:2]), nil
}

// EncodeFloorArea encodes a floor area value.
func EncodeFloorArea(area uint16) []byte {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, area)
	return data
}

// DecodePowerControlCycle decodes the power mode duty cycle length in
// minutes from its 1-byte payload.
func DecodePowerControlCycle(data []byte) (uint8, error) {
	if len(data) < 1 {
		return 0, decodeErrShort("power control cycle", 1, len(data))
	}
	return data[0], nil
}

// EncodePowerControlCycle validates and encodes a duty cycle length,
// 30 to 180 minutes.
func EncodePowerControlCycle(minutes uint8) ([]byte, error) {
	if minutes < 30 || minutes > 180 {
		return nil, rangeErr("power control cycle", minutes, "30 to 180 minutes")
	}
	return []byte{minutes}, nil
}

// ChildLock is the child lock characteristic. The lock is advisory
// storage for applications, not a device-enforced security feature.
type ChildLock struct {
	// Enabled reports whether the lock is on.
	Enabled bool

	// Code is the unlock code an application checks against, 0 to 9999.
	Code uint16
}

// DecodeChildLock decodes the 3-byte child lock payload.
//
// Layout: [0] enabled, [1:3] code uint16.
func DecodeChildLock(data []byte) (*ChildLock, error) {
	if len(data) < childLockLen {
		return nil, decodeErrShort("child lock", childLockLen, len(data))
	}
	return &ChildLock{
		Enabled: data[0] != 0,
		Code:    binary.LittleEndian.Uint16(data[1:3]),
	}, nil
}

// EncodeChildLock validates and encodes c.
func EncodeChildLock(c *ChildLock) ([]byte, error) {
	if c.Code > 9999 {
		return nil, rangeErr("child lock code", c.Code, "0 to 9999")
	}
	data := make([]byte, childLockLen)
	if c.Enabled {
		data[0] = 1
	}
	binary.LittleEndian.PutUint16(data[1:3], c.Code)
	return data, nil
}

// DecodeAdaptiveControl decodes the adaptive temperature control flag
// from its 1-byte payload.
func DecodeAdaptiveControl(data []byte) (bool, error) {
	if len(data) < 1 {
		return false, decodeErrShort("adaptive control", 1, len(data))
	}
	return data[0] != 0, nil
}

// EncodeAdaptiveControl encodes the adaptive temperature control flag.
func EncodeAdaptiveControl(enabled bool) []byte {
	if enabled {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeHeatingMode decodes the heating mode selector from its 1-byte
// payload.
func DecodeHeatingMode(data []byte) (HeatingMode, error) {
	if len(data) < 1 {
		return 0, decodeErrShort("heating mode", 1, len(data))
	}
	return HeatingMode(data[0]), nil
}

// EncodeHeatingMode encodes the heating mode selector. Model-specific
// support is checked at a higher level; see package model.
func EncodeHeatingMode(m HeatingMode) []byte {
	return []byte{uint8(m)}
}

// DecodeCalendarMode decodes the calendar enable flag from its 1-byte
// payload.
func DecodeCalendarMode(data []byte) (bool, error) {
	if len(data) < 1 {
		return false, decodeErrShort("calendar mode", 1, len(data))
	}
	return data[0] != 0, nil
}

// EncodeCalendarMode encodes the calendar enable flag.
func EncodeCalendarMode(enabled bool) []byte {
	if enabled {
		return []byte{1}
	}
	return []byte{0}
}

// LEDBrightness sets the intensity of the three indicator LEDs.
type LEDBrightness struct {
	// Red is the red LED intensity, 0 to 100.
	Red uint8

	// Green is the green LED intensity, 0 to 100.
	Green uint8

	// Blue is the blue LED intensity, 0 to 100.
	Blue uint8
}

// DecodeLEDBrightness decodes the 3-byte LED brightness payload.
func DecodeLEDBrightness(data []byte) (*LEDBrightness, error) {
	if len(data) < ledBrightnessLen {
		return nil, decodeErrShort("led brightness", ledBrightnessLen, len(data))
	}
	return &LEDBrightness{Red: data[0], Green: data[1], Blue: data[2]}, nil
}

// EncodeLEDBrightness validates and encodes l.
func EncodeLEDBrightness(l *LEDBrightness) ([]byte, error) {
	if l.Red > 100 {
		return nil, rangeErr("red brightness", l.Red, "0 to 100")
	}
	if l.Green > 100 {
		return nil, rangeErr("green brightness", l.Green, "0 to 100")
	}
	if l.Blue > 100 {
		return nil, rangeErr("blue brightness", l.Blue, "0 to 100")
	}
	return []byte{l.Red, l.Green, l.Blue}, nil
}

// FloorSensorConfig describes the NTC floor sensor attached to the
// device. The device regulates with these parameters; applications
// usually write one of the presets from package model.
type FloorSensorConfig struct {
	// SensorType is the preset slot, 1 (6.8 kOhm) through 7 (47 kOhm).
	SensorType uint8

	// MissingLimitADC is the ADC reading above which the sensor counts
	// as disconnected.
	MissingLimitADC uint16

	// BValue is the NTC beta value.
	BValue uint16

	// PullUpResistor is the measurement pull-up in ohms.
	PullUpResistor uint16

	// BrokenLimitADC is the ADC reading below which the sensor counts
	// as short-circuited.
	BrokenLimitADC uint16

	// Resistance25C is the nominal sensor resistance at 25 degrees
	// Celsius in ohms.
	Resistance25C uint16

	// Offset is a calibration offset in tenths of a degree, -0.1 stored
	// as -1.
	Offset int16
}

// DecodeFloorSensorConfig decodes the 13-byte floor sensor payload.
//
// Layout: [0] sensor type, [1:3] missing limit ADC, [3:5] B value,
// [5:7] pull-up resistance, [7:9] broken limit ADC, [9:11] resistance
// at 25 C, [11:13] offset int16.
func DecodeFloorSensorConfig(data []byte) (*FloorSensorConfig, error) {
	if len(data) < floorSensorConfigLen {
		return nil, decodeErrShort("floor sensor config", floorSensorConfigLen, len(data))
	}

	return &FloorSensorConfig{
		SensorType:      data[0],
		MissingLimitADC: binary.LittleEndian.Uint16(data[1:3]),
		BValue:          binary.LittleEndian.Uint16(data[3:5]),
		PullUpResistor:  binary.LittleEndian.Uint16(data[5:7]),
		BrokenLimitADC:  binary.LittleEndian.Uint16(data[7:9]),
		Resistance25C:   binary.LittleEndian.Uint16(data[9:11]),
		Offset:          int16(binary.LittleEndian.Uint16(data[11:13])),
	}, nil
}

// EncodeFloorSensorConfig validates and encodes c.
func EncodeFloorSensorConfig(c *FloorSensorConfig) ([]byte, error) {
	if c.SensorType < 1 || c.SensorType > 7 {
		return nil, rangeErr("sensor type", c.SensorType, "1 to 7")
	}

	data := make([]byte, floorSensorConfigLen)
	data[0] = c.SensorType
	binary.LittleEndian.PutUint16(data[1:3], c.MissingLimitADC)
	binary.LittleEndian.PutUint16(data[3:5], c.BValue)
	binary.LittleEndian.PutUint16(data[5:7], c.PullUpResistor)
	binary.LittleEndian.PutUint16(data[7:9], c.BrokenLimitADC)
	binary.LittleEndian.PutUint16(data[9:11], c.Resistance25C)
	binary.LittleEndian.PutUint16(data[11:13], uint16(c.Offset))
	return data, nil
}

// EnergyUnit is the billing configuration an application stores on the
// device: the currency and the price of one kilowatt hour.
type EnergyUnit struct {
	// Currency is the selected billing currency.
	Currency Currency

	// Price is the cost of one energy unit, 0 to 655.35. Stored scaled
	// by 100, so two decimals survive the round trip.
	Price float64
}

// DecodeEnergyUnit decodes the 4-byte energy unit payload.
//
// Layout: [0] currency, [1] unused, [2:4] price uint16 scaled by 100.
func DecodeEnergyUnit(data []byte) (*EnergyUnit, error) {
	if len(data) < energyUnitLen {
		return nil, decodeErrShort("energy unit", energyUnitLen, len(data))
	}
	return &EnergyUnit{
		Currency: Currency(data[0]),
		Price:    float64(binary.LittleEndian.Uint16(data[2:4])) / 100,
	}, nil
}

// EncodeEnergyUnit validates and encodes e.
func EncodeEnergyUnit(e *EnergyUnit) ([]byte, error) {
	if !e.Currency.Valid() {
		return nil, rangeErr("currency", uint8(e.Currency), "1 to 5")
	}
	if e.Price < 0 || e.Price > 655.35 {
		return nil, rangeErr("energy price", e.Price, "0 to 655.35")
	}

	data := make([]byte, energyUnitLen)
	data[0] = uint8(e.Currency)
	binary.LittleEndian.PutUint16(data[2:4], uint16(e.Price*100+0.5))
	return data, nil
}
