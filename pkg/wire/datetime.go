package wire

import (
	"encoding/binary"
	"time"
)

const (
	deviceTimeLen     = 7
	daylightSavingLen = 8
)

// DeviceTime is the device clock characteristic. The device keeps its
// clock in UTC and applies the daylight saving configuration itself when
// it needs wall-clock time.
type DeviceTime struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// DeviceTimeFromTime converts t to a DeviceTime in UTC.
func DeviceTimeFromTime(t time.Time) DeviceTime {
	u := t.UTC()
	return DeviceTime{
		Year:   uint16(u.Year()),
		Month:  uint8(u.Month()),
		Day:    uint8(u.Day()),
		Hour:   uint8(u.Hour()),
		Minute: uint8(u.Minute()),
		Second: uint8(u.Second()),
	}
}

// Time returns the device clock as a time.Time in UTC.
func (d DeviceTime) Time() time.Time {
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day),
		int(d.Hour), int(d.Minute), int(d.Second), 0, time.UTC)
}

// DecodeDeviceTime decodes the 7-byte device clock payload.
//
// Layout: [0:2] year uint16, [2] month, [3] day, [4] hour, [5] minute,
// [6] second.
func DecodeDeviceTime(data []byte) (*DeviceTime, error) {
	if len(data) < deviceTimeLen {
		return nil, decodeErrShort("device time", deviceTimeLen, len(data))
	}

	return &DeviceTime{
		Year:   binary.LittleEndian.Uint16(data[0:2]),
		Month:  data[2],
		Day:    data[3],
		Hour:   data[4],
		Minute: data[5],
		Second: data[6],
	}, nil
}

// EncodeDeviceTime validates and encodes d.
func EncodeDeviceTime(d *DeviceTime) ([]byte, error) {
	if d.Year > 9999 {
		return nil, rangeErr("year", d.Year, "0 to 9999")
	}
	if d.Month < 1 || d.Month > 12 {
		return nil, rangeErr("month", d.Month, "1 to 12")
	}
	if d.Day < 1 || d.Day > 31 {
		return nil, rangeErr("day", d.Day, "1 to 31")
	}
	if d.Hour > 23 {
		return nil, rangeErr("hour", d.Hour, "0 to 23")
	}
	if d.Minute > 59 {
		return nil, rangeErr("minute", d.Minute, "0 to 59")
	}
	if d.Second > 59 {
		return nil, rangeErr("second", d.Second, "0 to 59")
	}

	data := make([]byte, deviceTimeLen)
	binary.LittleEndian.PutUint16(data[0:2], d.Year)
	data[2] = d.Month
	data[3] = d.Day
	data[4] = d.Hour
	data[5] = d.Minute
	data[6] = d.Second
	return data, nil
}

// DaylightSaving is the timezone and daylight saving configuration. The
// device stores its clock in UTC and uses these offsets to derive the
// wall-clock time shown on the display and used by calendar programs.
type DaylightSaving struct {
	// Enabled turns automatic daylight saving transitions on.
	Enabled bool

	// WinterToSummerMinutes is the offset applied at the spring
	// transition, usually 60.
	WinterToSummerMinutes int16

	// SummerToWinterMinutes is the offset removed at the autumn
	// transition, usually 60.
	SummerToWinterMinutes int16

	// TimezoneOffsetMinutes is the base offset from UTC, for example 120
	// for EET.
	TimezoneOffsetMinutes int16
}

// DecodeDaylightSaving decodes the 8-byte daylight saving payload.
//
// Layout: [0] enabled, [1] reserved, [2:4] winter to summer offset
// int16 minutes, [4:6] summer to winter offset int16 minutes, [6:8]
// timezone offset int16 minutes.
func DecodeDaylightSaving(data []byte) (*DaylightSaving, error) {
	if len(data) < daylightSavingLen {
		return nil, decodeErrShort("daylight saving", daylightSavingLen, len(data))
	}

	return &DaylightSaving{
		Enabled:               data[0] != 0,
		WinterToSummerMinutes: int16(binary.LittleEndian.Uint16(data[2:4])),
		SummerToWinterMinutes: int16(binary.LittleEndian.Uint16(data[4:6])),
		TimezoneOffsetMinutes: int16(binary.LittleEndian.Uint16(data[6:8])),
	}, nil
}

// EncodeDaylightSaving encodes d. Byte 1 is reserved and written as zero.
func EncodeDaylightSaving(d *DaylightSaving) []byte {
	data := make([]byte, daylightSavingLen)
	if d.Enabled {
		data[0] = 1
	}
	binary.LittleEndian.PutUint16(data[2:4], uint16(d.WinterToSummerMinutes))
	binary.LittleEndian.PutUint16(data[4:6], uint16(d.SummerToWinterMinutes))
	binary.LittleEndian.PutUint16(data[6:8], uint16(d.TimezoneOffsetMinutes))
	return data
}
