package thermostat

import (
	"context"

	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// Vacation reads the vacation override window.
func (d *Device) Vacation(ctx context.Context) (*wire.VacationWindow, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDVacationTime)
	if err != nil {
		return nil, err
	}
	return wire.DecodeVacationWindow(data)
}

// WriteVacation writes the vacation override window. The active flag is
// device-owned: the current value is read first and carried over, so a
// write never flips it. The window must end strictly after it starts.
func (d *Device) WriteVacation(ctx context.Context, v *wire.VacationWindow) error {
	return d.session.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		raw, err := p.Read(ctx, wire.UUIDVacationTime)
		if err != nil {
			return &transport.TransportError{Op: "read", Characteristic: wire.UUIDVacationTime, Err: err}
		}
		current, err := wire.DecodeVacationWindow(raw)
		if err != nil {
			return err
		}

		next := *v
		next.Active = current.Active
		data, err := wire.EncodeVacationWindow(&next)
		if err != nil {
			return err
		}
		if err := p.Write(ctx, wire.UUIDVacationTime, data, true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDVacationTime, Err: err}
		}
		return nil
	})
}
