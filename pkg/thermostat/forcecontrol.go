package thermostat

import (
	"context"

	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// ForceControl reads the external control state. Devices with old
// firmware report the legacy one-byte format, decoded to a disabled
// placeholder with Legacy set.
func (d *Device) ForceControl(ctx context.Context) (*wire.ForceControl, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDForceControl)
	if err != nil {
		return nil, err
	}
	return wire.DecodeForceControl(data)
}

// WriteForceControl engages or releases external control. The record
// carries fields with undocumented meaning, so the current value is
// read and only the known offsets patched. Targets outside the accepted
// range are clamped rather than rejected, matching the device.
//
// Fails with wire.ErrLegacyForceControl on firmware that predates the
// extended record; check SupportsExternalControl first.
func (d *Device) WriteForceControl(ctx context.Context, mode wire.ForceControlMode, temperature, offset float64) error {
	if !mode.Valid() {
		return &wire.OutOfRangeError{Field: "force control mode", Value: uint8(mode), Constraint: "1, 2, 5 or 6"}
	}
	return d.session.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		current, err := p.Read(ctx, wire.UUIDForceControl)
		if err != nil {
			return &transport.TransportError{Op: "read", Characteristic: wire.UUIDForceControl, Err: err}
		}
		data, err := wire.PatchForceControl(current, mode, temperature, offset)
		if err != nil {
			return err
		}
		if err := p.Write(ctx, wire.UUIDForceControl, data, true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDForceControl, Err: err}
		}
		return nil
	})
}

// ReleaseForceControl hands regulation back to the device.
func (d *Device) ReleaseForceControl(ctx context.Context) error {
	return d.WriteForceControl(ctx, wire.ForceControlOff, 20, 0)
}
