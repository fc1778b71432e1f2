package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

const (
	calendarProgramLen = 8
	calendarDayLen     = 1 + MaxCalendarPrograms*calendarProgramLen
	calendarNameLen    = 61
)

// MaxCalendarPrograms is the number of program slots per weekday.
const MaxCalendarPrograms = 6

// Calendar control command values. Day numbers 1 through 7 select a
// weekday (Monday first); these two values are commands.
const (
	// CalendarControlCommit asks the device to store the pending
	// calendar data to flash.
	CalendarControlCommit uint8 = 0

	// CalendarControlName announces that the next calendar day transfer
	// carries the calendar name instead of a weekday.
	CalendarControlName uint8 = 8
)

// CalendarProgram is one scheduled window within a weekday. While the
// window is active and enabled the device applies the offsets to the
// normal setpoint.
type CalendarProgram struct {
	// StartHour and StartMinute open the window, wall clock.
	StartHour   uint8
	StartMinute uint8

	// EndHour and EndMinute close the window.
	EndHour   uint8
	EndMinute uint8

	// OffsetDegrees is the temperature offset while active, -20 to 20
	// degrees Celsius.
	OffsetDegrees float64

	// OffsetPercent is the duty-cycle offset while active, -100 to 100.
	OffsetPercent int8

	// Enabled arms the program.
	Enabled bool
}

// CalendarDay is the program set for one weekday.
type CalendarDay struct {
	// Day is the weekday number, 1 (Monday) through 7 (Sunday).
	Day uint8

	// Programs holds the defined programs, at most MaxCalendarPrograms.
	// Unused slots are omitted.
	Programs []CalendarProgram
}

// DecodeCalendarDay decodes a calendar day payload.
//
// Layout: [0] weekday number, then up to six 8-byte programs of start
// hour, start minute, end hour, end minute, temperature offset int16
// scaled by 100, percent offset int8, enabled. A payload holding only
// the weekday byte means zero programs. The transfer layer strips
// trailing zero padding, so a payload may end mid-slot; the decoder
// zero-extends to the next slot boundary before decoding.
func DecodeCalendarDay(data []byte) (*CalendarDay, error) {
	if len(data) < 1 {
		return nil, decodeErrShort("calendar day", 1, len(data))
	}
	if len(data) > calendarDayLen {
		return nil, &DecodeError{
			Format:  "calendar day",
			Message: fmt.Sprintf("length %d exceeds %d", len(data), calendarDayLen),
		}
	}
	if rem := (len(data) - 1) % calendarProgramLen; rem != 0 {
		data = padToLen(data, len(data)+calendarProgramLen-rem)
	}

	day := &CalendarDay{Day: data[0]}
	for off := 1; off < len(data); off += calendarProgramLen {
		p := data[off : off+calendarProgramLen]
		day.Programs = append(day.Programs, CalendarProgram{
			StartHour:     p[0],
			StartMinute:   p[1],
			EndHour:       p[2],
			EndMinute:     p[3],
			OffsetDegrees: float64(int16(binary.LittleEndian.Uint16(p[4:6]))) / 100,
			OffsetPercent: int8(p[6]),
			Enabled:       p[7] != 0,
		})
	}
	return day, nil
}

// EncodeCalendarDay validates and encodes d. The payload always carries
// all six program slots; slots past the defined programs are zeroed,
// which the device reads as disabled.
func EncodeCalendarDay(d *CalendarDay) ([]byte, error) {
	if d.Day < 1 || d.Day > 7 {
		return nil, rangeErr("weekday", d.Day, "1 to 7")
	}
	if len(d.Programs) > MaxCalendarPrograms {
		return nil, rangeErr("program count", len(d.Programs), "0 to 6")
	}

	data := make([]byte, calendarDayLen)
	data[0] = d.Day
	for i, p := range d.Programs {
		if err := validateProgram(i, p); err != nil {
			return nil, err
		}
		off := 1 + i*calendarProgramLen
		data[off] = p.StartHour
		data[off+1] = p.StartMinute
		data[off+2] = p.EndHour
		data[off+3] = p.EndMinute
		binary.LittleEndian.PutUint16(data[off+4:off+6], uint16(scaleTemp(p.OffsetDegrees, 100)))
		data[off+6] = byte(p.OffsetPercent)
		if p.Enabled {
			data[off+7] = 1
		}
	}
	return data, nil
}

func validateProgram(i int, p CalendarProgram) error {
	field := func(name string) string { return fmt.Sprintf("program %d %s", i+1, name) }
	if p.StartHour > 23 {
		return rangeErr(field("start hour"), p.StartHour, "0 to 23")
	}
	if p.StartMinute > 59 {
		return rangeErr(field("start minute"), p.StartMinute, "0 to 59")
	}
	if p.EndHour > 23 {
		return rangeErr(field("end hour"), p.EndHour, "0 to 23")
	}
	if p.EndMinute > 59 {
		return rangeErr(field("end minute"), p.EndMinute, "0 to 59")
	}
	if p.OffsetDegrees < -20 || p.OffsetDegrees > 20 {
		return rangeErr(field("offset"), p.OffsetDegrees, "-20 to 20 degrees")
	}
	if p.OffsetPercent < -100 || p.OffsetPercent > 100 {
		return rangeErr(field("percent offset"), p.OffsetPercent, "-100 to 100")
	}
	return nil
}

// DecodeCalendarName decodes the calendar name payload: a
// CalendarControlName marker byte followed by up to 60 bytes of UTF-8,
// zero padded.
func DecodeCalendarName(data []byte) (string, error) {
	if len(data) < 1 {
		return "", decodeErrShort("calendar name", 1, len(data))
	}
	if data[0] != CalendarControlName {
		return "", &DecodeError{
			Format:  "calendar name",
			Message: fmt.Sprintf("marker byte is 0x%02x, want 0x%02x", data[0], CalendarControlName),
		}
	}
	name := data[1:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(name), nil
}

// EncodeCalendarName validates and encodes a calendar name: at most 60
// bytes of valid UTF-8 after the marker byte.
func EncodeCalendarName(name string) ([]byte, error) {
	if !utf8.ValidString(name) {
		return nil, fmt.Errorf("calendar name is not valid UTF-8")
	}
	if len(name) > calendarNameLen-1 {
		return nil, rangeErr("calendar name", len(name), "at most 60 bytes")
	}

	data := make([]byte, calendarNameLen)
	data[0] = CalendarControlName
	copy(data[1:], name)
	return data, nil
}
