package thermostat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/coordinator"
	"github.com/ensto-ble/ensto-go/pkg/model"
	"github.com/ensto-ble/ensto-go/pkg/session"
	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// DefaultCalendarWait is how long the device needs to stage calendar
// data after a control write before the transfer characteristic is
// valid.
const DefaultCalendarWait = 200 * time.Millisecond

// Config configures a Device.
type Config struct {
	// Session is the device's session. Required.
	Session *session.Session

	// CalendarWait overrides the staging delay for calendar transfers.
	// Zero keeps DefaultCalendarWait; tests shorten it.
	CalendarWait time.Duration
}

// Device is the typed operation surface over one thermostat.
// Safe for concurrent use; operations serialize on the session.
type Device struct {
	session      *session.Session
	rt           *coordinator.Coordinator
	calendarWait time.Duration

	cbMu          sync.Mutex
	onStateChange func(old, new session.State)
}

// New creates a Device over an existing session. The device registers
// the session's state change callback; use Device.OnStateChange for
// application notifications.
func New(cfg Config) (*Device, error) {
	if cfg.Session == nil {
		return nil, fmt.Errorf("thermostat: session is required")
	}
	if cfg.CalendarWait <= 0 {
		cfg.CalendarWait = DefaultCalendarWait
	}

	d := &Device{
		session:      cfg.Session,
		rt:           coordinator.New(cfg.Session),
		calendarWait: cfg.CalendarWait,
	}
	cfg.Session.OnStateChange(func(old, new session.State) {
		if new == session.StateDisconnected {
			d.rt.Invalidate()
		}
		d.cbMu.Lock()
		fn := d.onStateChange
		d.cbMu.Unlock()
		if fn != nil {
			fn(old, new)
		}
	})
	return d, nil
}

// Session returns the underlying session.
func (d *Device) Session() *session.Session {
	return d.session
}

// OnStateChange registers a callback for session state transitions.
func (d *Device) OnStateChange(fn func(old, new session.State)) {
	d.cbMu.Lock()
	d.onStateChange = fn
	d.cbMu.Unlock()
}

// Connect explicitly walks the session to Ready. Optional; every
// operation connects lazily on its own.
func (d *Device) Connect(ctx context.Context) error {
	return d.session.Connect(ctx)
}

// Close tears down the link. The device must not be used afterwards.
func (d *Device) Close() error {
	return d.session.Close()
}

// detectedModel maps the identity's model number to a product family.
// Valid only once the session has been Ready.
func (d *Device) detectedModel() model.Model {
	return model.Detect(d.session.Identity().Model)
}

// Model returns the detected product family.
func (d *Device) Model(ctx context.Context) (model.Model, error) {
	if err := d.session.EnsureReady(ctx); err != nil {
		return model.ModelUnknown, err
	}
	return d.detectedModel(), nil
}

// DeviceName reads the user-visible device name.
func (d *Device) DeviceName(ctx context.Context) (string, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDDeviceName)
	if err != nil {
		return "", err
	}
	return wire.DecodeDeviceName(data)
}

// WriteDeviceName renames the device. The name buffer carries a prefix
// byte with unknown meaning, so the current value is read first and
// only the name portion replaced.
func (d *Device) WriteDeviceName(ctx context.Context, name string) error {
	return d.session.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		current, err := p.Read(ctx, wire.UUIDDeviceName)
		if err != nil {
			return &transport.TransportError{Op: "read", Characteristic: wire.UUIDDeviceName, Err: err}
		}
		data, err := wire.PatchDeviceName(current, name)
		if err != nil {
			return err
		}
		if err := p.Write(ctx, wire.UUIDDeviceName, data, true); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: wire.UUIDDeviceName, Err: err}
		}
		return nil
	})
}

// ManufacturerName reads the manufacturer name string.
func (d *Device) ManufacturerName(ctx context.Context) (string, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDManufacturerName)
	if err != nil {
		return "", err
	}
	return wire.DecodeManufacturerName(data)
}

// SoftwareRevision reads and parses the firmware revision triple.
func (d *Device) SoftwareRevision(ctx context.Context) (model.SoftwareRevision, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDSoftwareRevision)
	if err != nil {
		return model.SoftwareRevision{}, err
	}
	raw, err := wire.DecodeSoftwareRevision(data)
	if err != nil {
		return model.SoftwareRevision{}, err
	}
	return model.ParseSoftwareRevision(raw), nil
}

// HardwareRevision reads the hardware revision number.
func (d *Device) HardwareRevision(ctx context.Context) (uint32, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDHardwareRevision)
	if err != nil {
		return 0, err
	}
	return wire.DecodeHardwareRevision(data)
}

// ManufacturingDate reads the manufacturing date.
func (d *Device) ManufacturingDate(ctx context.Context) (*wire.ManufacturingDate, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDManufacturingDate)
	if err != nil {
		return nil, err
	}
	return wire.DecodeManufacturingDate(data)
}

// SupportsExternalControl reports whether the firmware is recent enough
// for force control writes.
func (d *Device) SupportsExternalControl(ctx context.Context) (bool, error) {
	rev, err := d.SoftwareRevision(ctx)
	if err != nil {
		return false, err
	}
	return rev.SupportsExternalControl(), nil
}

// RealTime returns the live status through the shared cache: a value
// younger than the coordinator's window is served without device I/O.
func (d *Device) RealTime(ctx context.Context) (*wire.RealTimeStatus, error) {
	return d.rt.Get(ctx)
}

// RealTimeMaxAge is RealTime with a caller-chosen freshness bound.
// maxAge <= 0 forces a device read.
func (d *Device) RealTimeMaxAge(ctx context.Context, maxAge time.Duration) (*wire.RealTimeStatus, error) {
	return d.rt.GetMaxAge(ctx, maxAge)
}

// OnRealTimeUpdate registers a callback invoked after every successful
// real time status device read.
func (d *Device) OnRealTimeUpdate(fn func(*wire.RealTimeStatus)) {
	d.rt.OnUpdate(fn)
}

// Alarms reads the active alarm flags.
func (d *Device) Alarms(ctx context.Context) (wire.AlarmFlags, error) {
	data, err := d.session.ReadCharacteristic(ctx, wire.UUIDAlarmCode)
	if err != nil {
		return 0, err
	}
	return wire.DecodeAlarmCode(data)
}

// sleepCtx waits for d or ctx, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
