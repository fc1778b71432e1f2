package thermostat

import (
	"context"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/model"
	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// Boost reads the boost configuration.
func (d *Device) Boost(ctx context.Context) (*wire.BoostConfig, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDBoost)
	if err != nil {
		return nil, err
	}
	return wire.DecodeBoostConfig(data)
}

// WriteBoost writes the boost configuration. An enabled boost starts
// counting down immediately.
func (d *Device) WriteBoost(ctx context.Context, b *wire.BoostConfig) error {
	data, err := wire.EncodeBoostConfig(b)
	if err != nil {
		return err
	}
	return d.session.WriteCharacteristic(ctx, wire.UUIDBoost, data, true)
}

// HeatingMode reads the configured heating mode.
func (d *Device) HeatingMode(ctx context.Context) (wire.HeatingMode, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDHeatingMode)
	if err != nil {
		return 0, err
	}
	return wire.DecodeHeatingMode(data)
}

// WriteHeatingMode sets the heating mode. The mode must be one the
// connected model supports; a radiator thermostat rejects the
// floor-based modes.
func (d *Device) WriteHeatingMode(ctx context.Context, mode wire.HeatingMode) error {
	if mode < wire.HeatingModeFloor || mode > wire.HeatingModeForceControl {
		return &wire.OutOfRangeError{Field: "heating mode", Value: uint8(mode), Constraint: "1 to 5"}
	}
	return d.session.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		if m := d.detectedModel(); !m.SupportsHeatingMode(mode) {
			return &UnsupportedModeError{Model: m, Mode: mode}
		}
		if err := p.Write(ctx, wire.UUIDHeatingMode, wire.EncodeHeatingMode(mode), true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDHeatingMode, Err: err}
		}
		return nil
	})
}

// AdaptiveControl reads whether adaptive temperature control is on.
func (d *Device) AdaptiveControl(ctx context.Context) (bool, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDAdaptiveControl)
	if err != nil {
		return false, err
	}
	return wire.DecodeAdaptiveControl(data)
}

// WriteAdaptiveControl turns adaptive temperature control on or off.
func (d *Device) WriteAdaptiveControl(ctx context.Context, enabled bool) error {
	return d.session.WriteCharacteristic(ctx, wire.UUIDAdaptiveControl, wire.EncodeAdaptiveControl(enabled), true)
}

// DeviceTime reads the device clock. The device keeps its clock in UTC.
func (d *Device) DeviceTime(ctx context.Context) (time.Time, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDDateAndTime)
	if err != nil {
		return time.Time{}, err
	}
	dt, err := wire.DecodeDeviceTime(data)
	if err != nil {
		return time.Time{}, err
	}
	return dt.Time(), nil
}

// WriteDeviceTime sets the device clock to t, converted to UTC.
func (d *Device) WriteDeviceTime(ctx context.Context, t time.Time) error {
	dt := wire.DeviceTimeFromTime(t)
	data, err := wire.EncodeDeviceTime(&dt)
	if err != nil {
		return err
	}
	return d.session.WriteCharacteristic(ctx, wire.UUIDDateAndTime, data, true)
}

// DaylightSaving reads the timezone and daylight saving configuration.
func (d *Device) DaylightSaving(ctx context.Context) (*wire.DaylightSaving, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDDaylightSaving)
	if err != nil {
		return nil, err
	}
	return wire.DecodeDaylightSaving(data)
}

// WriteDaylightSaving writes the timezone and daylight saving
// configuration.
func (d *Device) WriteDaylightSaving(ctx context.Context, ds *wire.DaylightSaving) error {
	return d.session.WriteCharacteristic(ctx, wire.UUIDDaylightSaving, wire.EncodeDaylightSaving(ds), true)
}

// FloorLimits reads the floor temperature limits used in combination
// mode.
func (d *Device) FloorLimits(ctx context.Context) (*wire.FloorLimits, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDFloorLimits)
	if err != nil {
		return nil, err
	}
	return wire.DecodeFloorLimits(data)
}

// WriteFloorLimits writes the floor temperature limits.
func (d *Device) WriteFloorLimits(ctx context.Context, l *wire.FloorLimits) error {
	data, err := wire.EncodeFloorLimits(l)
	if err != nil {
		return err
	}
	return d.session.WriteCharacteristic(ctx, wire.UUIDFloorLimits, data, true)
}

// RoomCalibration reads the room sensor calibration offset in degrees.
func (d *Device) RoomCalibration(ctx context.Context) (float64, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDRoomCalibration)
	if err != nil {
		return 0, err
	}
	return wire.DecodeRoomCalibration(data)
}

// WriteRoomCalibration writes the room sensor calibration offset,
// -5 to 5 degrees.
func (d *Device) WriteRoomCalibration(ctx context.Context, offset float64) error {
	data, err := wire.EncodeRoomCalibration(offset)
	if err != nil {
		return err
	}
	return d.session.WriteCharacteristic(ctx, wire.UUIDRoomCalibration, data, true)
}

// HeatingPower reads the configured heater wattage.
func (d *Device) HeatingPower(ctx context.Context) (uint16, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDHeatingPower)
	if err != nil {
		return 0, err
	}
	return wire.DecodeHeatingPower(data)
}

// WriteHeatingPower stores the heater wattage, 0 to 9999.
func (d *Device) WriteHeatingPower(ctx context.Context, watts uint16) error {
	data, err := wire.EncodeHeatingPower(watts)
	if err != nil {
		return err
	}
	return d.session.WriteCharacteristic(ctx, wire.UUIDHeatingPower, data, true)
}

// FloorArea reads the stored heated floor area.
func (d *Device) FloorArea(ctx context.Context) (uint16, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDFloorArea)
	if err != nil {
		return 0, err
	}
	return wire.DecodeFloorArea(data)
}

// WriteFloorArea stores the heated floor area.
func (d *Device) WriteFloorArea(ctx context.Context, area uint16) error {
	return d.session.WriteCharacteristic(ctx, wire.UUIDFloorArea, wire.EncodeFloorArea(area), true)
}

// EnergyUnit reads the billing currency and price.
func (d *Device) EnergyUnit(ctx context.Context) (*wire.EnergyUnit, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDEnergyUnit)
	if err != nil {
		return nil, err
	}
	return wire.DecodeEnergyUnit(data)
}

// WriteEnergyUnit writes the billing currency and price.
func (d *Device) WriteEnergyUnit(ctx context.Context, e *wire.EnergyUnit) error {
	data, err := wire.EncodeEnergyUnit(e)
	if err != nil {
		return err
	}
	return d.session.WriteCharacteristic(ctx, wire.UUIDEnergyUnit, data, true)
}

// ChildLock reads the child lock state.
func (d *Device) ChildLock(ctx context.Context) (*wire.ChildLock, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDChildLock)
	if err != nil {
		return nil, err
	}
	return wire.DecodeChildLock(data)
}

// WriteChildLock writes the child lock state.
func (d *Device) WriteChildLock(ctx context.Context, c *wire.ChildLock) error {
	data, err := wire.EncodeChildLock(c)
	if err != nil {
		return err
	}
	return d.session.WriteCharacteristic(ctx, wire.UUIDChildLock, data, true)
}

// LEDBrightness reads the indicator LED intensities.
func (d *Device) LEDBrightness(ctx context.Context) (*wire.LEDBrightness, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDLEDBrightness)
	if err != nil {
		return nil, err
	}
	return wire.DecodeLEDBrightness(data)
}

// WriteLEDBrightness writes the indicator LED intensities, 0 to 100
// each.
func (d *Device) WriteLEDBrightness(ctx context.Context, l *wire.LEDBrightness) error {
	data, err := wire.EncodeLEDBrightness(l)
	if err != nil {
		return err
	}
	return d.session.WriteCharacteristic(ctx, wire.UUIDLEDBrightness, data, true)
}

// PowerControlCycle reads the power mode duty cycle length in minutes.
func (d *Device) PowerControlCycle(ctx context.Context) (uint8, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDPowerControlCycle)
	if err != nil {
		return 0, err
	}
	return wire.DecodePowerControlCycle(data)
}

// WritePowerControlCycle writes the duty cycle length, 30 to 180
// minutes.
func (d *Device) WritePowerControlCycle(ctx context.Context, minutes uint8) error {
	data, err := wire.EncodePowerControlCycle(minutes)
	if err != nil {
		return err
	}
	return d.session.WriteCharacteristic(ctx, wire.UUIDPowerControlCycle, data, true)
}

// FloorSensorConfig reads the floor sensor parameter set.
func (d *Device) FloorSensorConfig(ctx context.Context) (*wire.FloorSensorConfig, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDFloorSensorType)
	if err != nil {
		return nil, err
	}
	return wire.DecodeFloorSensorConfig(data)
}

// WriteFloorSensorConfig writes a floor sensor parameter set. Rejected
// on models without a floor sensor input.
func (d *Device) WriteFloorSensorConfig(ctx context.Context, c *wire.FloorSensorConfig) error {
	data, err := wire.EncodeFloorSensorConfig(c)
	if err != nil {
		return err
	}
	return d.session.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		if !d.detectedModel().HasFloorSensor() {
			return ErrNoFloorSensor
		}
		if err := p.Write(ctx, wire.UUIDFloorSensorType, data, true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDFloorSensorType, Err: err}
		}
		return nil
	})
}

// ApplyFloorSensorPreset writes one of the named sensor parameter sets.
func (d *Device) ApplyFloorSensorPreset(ctx context.Context, preset model.FloorSensorPreset) error {
	cfg := preset.Config
	return d.WriteFloorSensorConfig(ctx, &cfg)
}
