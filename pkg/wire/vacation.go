package wire

import (
	"encoding/binary"
	"time"
)

const vacationLen = 15

// VacationWindow is the vacation override: between From and To the
// device applies the configured offsets instead of the normal setpoint.
// While stored it takes precedence over every other offset source.
type VacationWindow struct {
	// From is the start of the window. The device keeps vacation times
	// as wall-clock values, so only the date and time components are
	// written; the Location is not transmitted.
	From time.Time

	// To is the end of the window, wall-clock like From.
	To time.Time

	// OffsetDegrees is the temperature offset during the window, -20 to
	// 20 degrees Celsius.
	OffsetDegrees float64

	// OffsetPercent is the duty-cycle offset during the window, -100 to
	// 100.
	OffsetPercent int8

	// Enabled arms the window.
	Enabled bool

	// Active reports whether the device is inside the window right now.
	// Read-only; writes preserve the last value the device reported.
	Active bool
}

// DecodeVacationWindow decodes the 15-byte vacation payload.
//
// Layout: [0:5] from as year-2000, month, day, hour, minute, [5:10] to
// in the same shape, [10:12] temperature offset int16 scaled by 100,
// [12] percent offset int8, [13] enabled, [14] active. Decoded times
// carry time.Local as their Location; the device transmits no zone.
func DecodeVacationWindow(data []byte) (*VacationWindow, error) {
	if len(data) < vacationLen {
		return nil, decodeErrShort("vacation", vacationLen, len(data))
	}

	return &VacationWindow{
		From:          wallClock(data[0], data[1], data[2], data[3], data[4]),
		To:            wallClock(data[5], data[6], data[7], data[8], data[9]),
		OffsetDegrees: float64(int16(binary.LittleEndian.Uint16(data[10:12]))) / 100,
		OffsetPercent: int8(data[12]),
		Enabled:       data[13] != 0,
		Active:        data[14] != 0,
	}, nil
}

// EncodeVacationWindow validates and encodes v. The caller's From and To
// are written component-wise as device wall-clock values; seconds and
// zone are dropped.
func EncodeVacationWindow(v *VacationWindow) ([]byte, error) {
	if v.OffsetDegrees < -20 || v.OffsetDegrees > 20 {
		return nil, rangeErr("vacation offset", v.OffsetDegrees, "-20 to 20 degrees")
	}
	if v.OffsetPercent < -100 || v.OffsetPercent > 100 {
		return nil, rangeErr("vacation percent offset", v.OffsetPercent, "-100 to 100")
	}
	if v.From.Year() < 2000 || v.From.Year() > 2255 {
		return nil, rangeErr("vacation start year", v.From.Year(), "2000 to 2255")
	}
	if v.To.Year() < 2000 || v.To.Year() > 2255 {
		return nil, rangeErr("vacation end year", v.To.Year(), "2000 to 2255")
	}
	if !v.From.Before(v.To) {
		return nil, rangeErr("vacation window", v.To, "end must be after start")
	}

	data := make([]byte, vacationLen)
	putWallClock(data[0:5], v.From)
	putWallClock(data[5:10], v.To)
	binary.LittleEndian.PutUint16(data[10:12], uint16(scaleTemp(v.OffsetDegrees, 100)))
	data[12] = byte(v.OffsetPercent)
	if v.Enabled {
		data[13] = 1
	}
	if v.Active {
		data[14] = 1
	}
	return data, nil
}

// wallClock builds a zone-free device timestamp as a local time.
func wallClock(year, month, day, hour, minute byte) time.Time {
	return time.Date(2000+int(year), time.Month(month), int(day),
		int(hour), int(minute), 0, 0, time.Local)
}

// putWallClock writes the five wall-clock component bytes of t.
func putWallClock(dst []byte, t time.Time) {
	dst[0] = byte(t.Year() - 2000)
	dst[1] = byte(t.Month())
	dst[2] = byte(t.Day())
	dst[3] = byte(t.Hour())
	dst[4] = byte(t.Minute())
}
