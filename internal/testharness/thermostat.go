// Package testharness simulates an Ensto thermostat behind the
// transport interfaces. Tests drive the full stack - session, split
// transfers, codecs - against it without any BLE hardware.
package testharness

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// splitChunk is the payload portion of one split frame: the simulated
// link serves MTU-sized frames of one header byte plus this many
// payload bytes.
const splitChunk = 18

// WriteRecord is one captured characteristic write.
type WriteRecord struct {
	Characteristic string
	Data           []byte
	WithResponse   bool
}

// Thermostat is a simulated device. It stores characteristic values,
// serves split characteristics frame by frame with trailing zeros
// stripped, reassembles split writes, and emulates the calendar
// staging protocol. Safe for concurrent use.
type Thermostat struct {
	mu sync.Mutex

	// Address is the device's link address.
	Address string

	// InPairingMode controls the advertised pairing flag.
	InPairingMode bool

	values map[string][]byte // plain characteristic values
	split  map[string][]byte // logical payloads served via split frames

	readPos      map[string]int    // split read cursor per characteristic
	pendingWrite map[string][]byte // split write reassembly per characteristic

	calendarDays  map[uint8][]byte // encoded day payloads, keyed by weekday
	calendarName  string
	staged        []byte // payload staged by the last calendar control write
	lastDataWrite []byte // last reassembled calendar data write, applied on commit

	writes []WriteRecord

	pairErr  error
	readErr  map[string]error
	writeErr map[string]error

	peripherals []*simPeripheral
}

// NewThermostat creates a simulated ECO16BT with sane defaults and the
// given factory reset id.
func NewThermostat(address string, factoryResetID uint32) *Thermostat {
	t := &Thermostat{
		Address:       address,
		InPairingMode: true,
		values:        make(map[string][]byte),
		split:         make(map[string][]byte),
		readPos:       make(map[string]int),
		pendingWrite:  make(map[string][]byte),
		calendarDays:  make(map[uint8][]byte),
		readErr:       make(map[string]error),
		writeErr:      make(map[string]error),
	}

	t.values[wire.UUIDFactoryResetID] = wire.EncodeFactoryResetID(factoryResetID)
	t.values[wire.UUIDModelNumber] = []byte("ECO16BT")
	t.values[wire.UUIDManufacturerName] = []byte("Ensto")
	t.values[wire.UUIDSoftwareRevision] = []byte("1.15;2.3;1.0")
	t.values[wire.UUIDHardwareRevision] = []byte{1, 0, 0, 0}
	t.values[wire.UUIDManufacturingDate] = []byte{15, 6, 0xE6, 0x07} // 2022-06-15
	t.values[wire.UUIDAlarmCode] = []byte{0, 0}

	name := make([]byte, 61)
	copy(name[1:], "Simulated")
	t.values[wire.UUIDDeviceName] = name

	t.values[wire.UUIDHeatingMode] = wire.EncodeHeatingMode(wire.HeatingModeRoom)
	t.values[wire.UUIDAdaptiveControl] = wire.EncodeAdaptiveControl(false)
	t.values[wire.UUIDCalendarMode] = wire.EncodeCalendarMode(false)
	t.values[wire.UUIDFloorArea] = wire.EncodeFloorArea(12)
	t.values[wire.UUIDBoost], _ = wire.EncodeBoostConfig(&wire.BoostConfig{})
	t.values[wire.UUIDVacationTime], _ = wire.EncodeVacationWindow(&wire.VacationWindow{
		From: mustTime(2026, 1, 1), To: mustTime(2026, 1, 2),
	})
	t.values[wire.UUIDForceControl] = defaultForceControl()
	t.values[wire.UUIDDateAndTime], _ = wire.EncodeDeviceTime(&wire.DeviceTime{
		Year: 2026, Month: 8, Day: 29, Hour: 12,
	})
	t.values[wire.UUIDDaylightSaving] = wire.EncodeDaylightSaving(&wire.DaylightSaving{
		Enabled: true, WinterToSummerMinutes: 60, SummerToWinterMinutes: 60, TimezoneOffsetMinutes: 120,
	})
	t.values[wire.UUIDFloorLimits], _ = wire.EncodeFloorLimits(&wire.FloorLimits{Low: 15, High: 30})
	t.values[wire.UUIDRoomCalibration], _ = wire.EncodeRoomCalibration(0)
	t.values[wire.UUIDHeatingPower], _ = wire.EncodeHeatingPower(1200)
	t.values[wire.UUIDPowerControlCycle], _ = wire.EncodePowerControlCycle(60)
	t.values[wire.UUIDChildLock], _ = wire.EncodeChildLock(&wire.ChildLock{})
	t.values[wire.UUIDLEDBrightness], _ = wire.EncodeLEDBrightness(&wire.LEDBrightness{Red: 50, Green: 50, Blue: 50})
	t.values[wire.UUIDEnergyUnit], _ = wire.EncodeEnergyUnit(&wire.EnergyUnit{Currency: wire.CurrencyEUR, Price: 0.15})
	t.values[wire.UUIDFloorSensorType], _ = wire.EncodeFloorSensorConfig(&wire.FloorSensorConfig{
		SensorType: 2, MissingLimitADC: 4007, BValue: 3800,
		PullUpResistor: 47000, BrokenLimitADC: 100, Resistance25C: 10000, Offset: -1,
	})

	t.split[wire.UUIDRealTimeIndication] = wire.EncodeRealTimeStatus(&wire.RealTimeStatus{
		TargetTemperature: 21.5, RoomTemperature: 20.3, FloorTemperature: 22.1,
		RelayActive: true, ActiveMode: wire.ActiveModeManual, HeatingMode: wire.HeatingModeRoom,
	})

	return t
}

// SetValue sets a plain characteristic value.
func (t *Thermostat) SetValue(characteristic string, data []byte) {
	t.mu.Lock()
	t.values[characteristic] = append([]byte(nil), data...)
	t.mu.Unlock()
}

// SetSplitValue sets the logical payload served through the split
// protocol on a characteristic.
func (t *Thermostat) SetSplitValue(characteristic string, data []byte) {
	t.mu.Lock()
	t.split[characteristic] = append([]byte(nil), data...)
	t.readPos[characteristic] = 0
	t.mu.Unlock()
}

// SetCalendarDay stores an encoded calendar day served on request.
func (t *Thermostat) SetCalendarDay(day *wire.CalendarDay) error {
	data, err := wire.EncodeCalendarDay(day)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.calendarDays[day.Day] = data
	t.mu.Unlock()
	return nil
}

// CalendarDay returns the stored program set for a weekday.
func (t *Thermostat) CalendarDay(day uint8) (*wire.CalendarDay, error) {
	t.mu.Lock()
	data, ok := t.calendarDays[day]
	t.mu.Unlock()
	if !ok {
		return &wire.CalendarDay{Day: day}, nil
	}
	return wire.DecodeCalendarDay(data)
}

// SetCalendarName stores the calendar display name.
func (t *Thermostat) SetCalendarName(name string) {
	t.mu.Lock()
	t.calendarName = name
	t.mu.Unlock()
}

// CalendarName returns the stored calendar display name.
func (t *Thermostat) CalendarName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calendarName
}

// FailPair makes every pairing attempt fail with err.
func (t *Thermostat) FailPair(err error) {
	t.mu.Lock()
	t.pairErr = err
	t.mu.Unlock()
}

// FailRead makes reads of one characteristic fail with err. A nil err
// clears the injection.
func (t *Thermostat) FailRead(characteristic string, err error) {
	t.mu.Lock()
	if err == nil {
		delete(t.readErr, characteristic)
	} else {
		t.readErr[characteristic] = err
	}
	t.mu.Unlock()
}

// FailWrite makes writes of one characteristic fail with err. A nil
// err clears the injection.
func (t *Thermostat) FailWrite(characteristic string, err error) {
	t.mu.Lock()
	if err == nil {
		delete(t.writeErr, characteristic)
	} else {
		t.writeErr[characteristic] = err
	}
	t.mu.Unlock()
}

// Writes returns all captured writes in order.
func (t *Thermostat) Writes() []WriteRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]WriteRecord, len(t.writes))
	copy(out, t.writes)
	return out
}

// WritesTo returns the captured writes to one characteristic.
func (t *Thermostat) WritesTo(characteristic string) []WriteRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []WriteRecord
	for _, w := range t.writes {
		if w.Characteristic == characteristic {
			out = append(out, w)
		}
	}
	return out
}

// Value returns the current plain value of a characteristic.
func (t *Thermostat) Value(characteristic string) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]byte(nil), t.values[characteristic]...)
}

// DropLink severs every open connection, firing the disconnect
// callbacks.
func (t *Thermostat) DropLink() {
	t.mu.Lock()
	peripherals := t.peripherals
	t.peripherals = nil
	t.mu.Unlock()
	for _, p := range peripherals {
		p.sever()
	}
}

// read serves one frame of a characteristic.
func (t *Thermostat) read(characteristic string) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.readErr[characteristic]; err != nil {
		return nil, err
	}

	if payload, ok := t.split[characteristic]; ok {
		return t.serveSplitFrame(characteristic, payload), nil
	}
	if characteristic == wire.UUIDCalendarDay {
		return t.serveSplitFrame(characteristic, t.staged), nil
	}

	value, ok := t.values[characteristic]
	if !ok {
		return nil, fmt.Errorf("characteristic %s does not exist", characteristic)
	}
	return append([]byte(nil), value...), nil
}

// serveSplitFrame returns the next split frame of payload: a header
// byte carrying the frame counter, the final flag on the last frame,
// then up to splitChunk payload bytes. Trailing zeros are stripped
// from the logical payload first, like the device does.
func (t *Thermostat) serveSplitFrame(characteristic string, payload []byte) []byte {
	payload = bytes.TrimRight(payload, "\x00")

	chunks := len(payload) / splitChunk
	if len(payload)%splitChunk != 0 || chunks == 0 {
		chunks++
	}

	pos := t.readPos[characteristic]
	if pos >= chunks {
		t.readPos[characteristic] = 0
		return nil
	}

	start := pos * splitChunk
	end := start + splitChunk
	if end > len(payload) {
		end = len(payload)
	}

	header := byte(pos)
	if pos == chunks-1 {
		header |= transport.FinalFlag
		t.readPos[characteristic] = 0
	} else {
		t.readPos[characteristic] = pos + 1
	}
	return append([]byte{header}, payload[start:end]...)
}

// write applies one characteristic write.
func (t *Thermostat) write(characteristic string, data []byte, withResponse bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.writeErr[characteristic]; err != nil {
		return err
	}

	t.writes = append(t.writes, WriteRecord{
		Characteristic: characteristic,
		Data:           append([]byte(nil), data...),
		WithResponse:   withResponse,
	})

	switch characteristic {
	case wire.UUIDCalendarControl:
		return t.handleCalendarControl(data)
	case wire.UUIDCalendarDay:
		return t.handleCalendarData(data)
	}

	if _, ok := t.values[characteristic]; !ok {
		return fmt.Errorf("characteristic %s does not exist", characteristic)
	}
	t.values[characteristic] = append([]byte(nil), data...)
	return nil
}

// handleCalendarControl emulates the staging protocol: a weekday or the
// name command stages data for the transfer characteristic, zero
// commits the last transfer.
func (t *Thermostat) handleCalendarControl(data []byte) error {
	if len(data) != 1 {
		return errors.New("calendar control expects a single byte")
	}

	switch cmd := data[0]; {
	case cmd >= 1 && cmd <= 7:
		if stored, ok := t.calendarDays[cmd]; ok {
			t.staged = append([]byte(nil), stored...)
		} else {
			t.staged = []byte{cmd}
		}
		t.readPos[wire.UUIDCalendarDay] = 0
	case cmd == wire.CalendarControlName:
		encoded, err := wire.EncodeCalendarName(t.calendarName)
		if err != nil {
			return err
		}
		t.staged = encoded
		t.readPos[wire.UUIDCalendarDay] = 0
	case cmd == wire.CalendarControlCommit:
		return t.commitCalendar()
	default:
		return fmt.Errorf("calendar control value %d is not valid", cmd)
	}
	return nil
}

// handleCalendarData reassembles split calendar writes. The reassembled
// payload takes effect on the next commit.
func (t *Thermostat) handleCalendarData(frame []byte) error {
	if len(frame) < 1 {
		return errors.New("empty calendar data frame")
	}
	header, chunk := frame[0], frame[1:]

	buf := t.pendingWrite[wire.UUIDCalendarDay]
	buf = append(buf, chunk...)
	if header&transport.FinalFlag == 0 {
		t.pendingWrite[wire.UUIDCalendarDay] = buf
		return nil
	}
	delete(t.pendingWrite, wire.UUIDCalendarDay)
	t.lastDataWrite = buf
	return nil
}

// commitCalendar applies the last reassembled calendar write to the
// stored state.
func (t *Thermostat) commitCalendar() error {
	if t.lastDataWrite == nil {
		return nil
	}
	data := t.lastDataWrite
	t.lastDataWrite = nil

	if data[0] == wire.CalendarControlName {
		name, err := wire.DecodeCalendarName(data)
		if err != nil {
			return err
		}
		t.calendarName = name
		return nil
	}

	day, err := wire.DecodeCalendarDay(data)
	if err != nil {
		return err
	}
	encoded, err := wire.EncodeCalendarDay(day)
	if err != nil {
		return err
	}
	t.calendarDays[day.Day] = encoded
	return nil
}

func (t *Thermostat) pair() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pairErr
}

func (t *Thermostat) attach(p *simPeripheral) {
	t.mu.Lock()
	t.peripherals = append(t.peripherals, p)
	t.mu.Unlock()
}

func defaultForceControl() []byte {
	data := make([]byte, 19)
	data[17] = byte(wire.ForceControlOff)
	return data
}

func mustTime(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}
