package thermostat

import (
	"context"

	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// CalendarMode reads whether the weekly calendar drives the setpoint.
func (d *Device) CalendarMode(ctx context.Context) (bool, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDCalendarMode)
	if err != nil {
		return false, err
	}
	return wire.DecodeCalendarMode(data)
}

// WriteCalendarMode turns the weekly calendar on or off.
func (d *Device) WriteCalendarMode(ctx context.Context, enabled bool) error {
	return d.session.WriteCharacteristic(ctx, wire.UUIDCalendarMode, wire.EncodeCalendarMode(enabled), true)
}

// ReadCalendarDay reads the program set for one weekday, 1 (Monday)
// through 7 (Sunday). The weekday is selected through the control
// characteristic; the device needs a moment to stage the data before
// the transfer characteristic is valid.
func (d *Device) ReadCalendarDay(ctx context.Context, day uint8) (*wire.CalendarDay, error) {
	if day < 1 || day > 7 {
		return nil, &wire.OutOfRangeError{Field: "weekday", Value: day, Constraint: "1 to 7"}
	}

	var out *wire.CalendarDay
	err := d.session.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		if err := p.Write(ctx, wire.UUIDCalendarControl, []byte{day}, true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDCalendarControl, Err: err}
		}
		if err := sleepCtx(ctx, d.calendarWait); err != nil {
			return err
		}
		data, err := d.session.SplitRead(ctx, p, wire.UUIDCalendarDay)
		if err != nil {
			return err
		}
		day, err := wire.DecodeCalendarDay(data)
		if err != nil {
			return err
		}
		out = day
		return nil
	})
	return out, err
}

// WriteCalendarDay replaces the program set for one weekday. Program
// slots past the given programs are written zeroed, which the device
// reads as disabled. The commit write at the end stores the staged data
// to flash.
func (d *Device) WriteCalendarDay(ctx context.Context, day *wire.CalendarDay) error {
	payload, err := wire.EncodeCalendarDay(day)
	if err != nil {
		return err
	}

	return d.session.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		if err := p.Write(ctx, wire.UUIDCalendarControl, []byte{day.Day}, true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDCalendarControl, Err: err}
		}
		if err := d.session.SplitWrite(ctx, p, wire.UUIDCalendarDay, payload); err != nil {
			return err
		}
		if err := sleepCtx(ctx, d.calendarWait); err != nil {
			return err
		}
		if err := p.Write(ctx, wire.UUIDCalendarControl, []byte{wire.CalendarControlCommit}, true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDCalendarControl, Err: err}
		}
		return nil
	})
}

// ReadCalendarName reads the calendar's display name.
func (d *Device) ReadCalendarName(ctx context.Context) (string, error) {
	var out string
	err := d.session.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		if err := p.Write(ctx, wire.UUIDCalendarControl, []byte{wire.CalendarControlName}, true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDCalendarControl, Err: err}
		}
		if err := sleepCtx(ctx, d.calendarWait); err != nil {
			return err
		}
		data, err := d.session.SplitRead(ctx, p, wire.UUIDCalendarDay)
		if err != nil {
			return err
		}
		name, err := wire.DecodeCalendarName(data)
		if err != nil {
			return err
		}
		out = name
		return nil
	})
	return out, err
}

// WriteCalendarName sets the calendar's display name, at most 60 bytes
// of UTF-8.
func (d *Device) WriteCalendarName(ctx context.Context, name string) error {
	payload, err := wire.EncodeCalendarName(name)
	if err != nil {
		return err
	}

	return d.session.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		if err := d.session.SplitWrite(ctx, p, wire.UUIDCalendarDay, payload); err != nil {
			return err
		}
		if err := sleepCtx(ctx, d.calendarWait); err != nil {
			return err
		}
		if err := p.Write(ctx, wire.UUIDCalendarControl, []byte{wire.CalendarControlCommit}, true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDCalendarControl, Err: err}
		}
		return nil
	})
}
