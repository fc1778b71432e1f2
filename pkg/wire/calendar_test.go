package wire

import (
	"errors"
	"reflect"
	"testing"
)

func TestCalendarDayRoundTrip(t *testing.T) {
	in := &CalendarDay{
		Day: 2,
		Programs: []CalendarProgram{
			{StartHour: 6, StartMinute: 30, EndHour: 8, EndMinute: 0, OffsetDegrees: 2, OffsetPercent: 10, Enabled: true},
			{StartHour: 16, StartMinute: 0, EndHour: 22, EndMinute: 30, OffsetDegrees: -1.5, OffsetPercent: -20, Enabled: true},
			{StartHour: 23, StartMinute: 0, EndHour: 23, EndMinute: 59, OffsetDegrees: 0.5, Enabled: true},
		},
	}

	data, err := EncodeCalendarDay(in)
	if err != nil {
		t.Fatalf("EncodeCalendarDay failed: %v", err)
	}
	if len(data) != 49 {
		t.Fatalf("payload length = %d, want 49", len(data))
	}

	out, err := DecodeCalendarDay(data)
	if err != nil {
		t.Fatalf("DecodeCalendarDay failed: %v", err)
	}
	if out.Day != 2 {
		t.Errorf("Day = %d, want 2", out.Day)
	}
	if len(out.Programs) != 6 {
		t.Fatalf("decoded %d programs, want 6 slots", len(out.Programs))
	}
	if !reflect.DeepEqual(out.Programs[:3], in.Programs) {
		t.Errorf("programs mismatch:\ngot  %+v\nwant %+v", out.Programs[:3], in.Programs)
	}
	for i, p := range out.Programs[3:] {
		if p != (CalendarProgram{}) {
			t.Errorf("slot %d = %+v, want zeroed", i+4, p)
		}
	}
}

func TestDecodeCalendarDayEmpty(t *testing.T) {
	day, err := DecodeCalendarDay([]byte{5})
	if err != nil {
		t.Fatalf("DecodeCalendarDay failed: %v", err)
	}
	if day.Day != 5 || len(day.Programs) != 0 {
		t.Errorf("got day %d with %d programs, want day 5 with none", day.Day, len(day.Programs))
	}
}

func TestDecodeCalendarDayStrippedTail(t *testing.T) {
	// A stripped payload ending mid-slot is zero-extended to the slot
	// boundary: byte 12 lands inside the second program.
	data := make([]byte, 12)
	data[0] = 3
	data[1] = 6 // program 1 start hour
	day, err := DecodeCalendarDay(data)
	if err != nil {
		t.Fatalf("DecodeCalendarDay failed: %v", err)
	}
	if len(day.Programs) != 2 {
		t.Fatalf("got %d programs, want 2", len(day.Programs))
	}
	if day.Programs[0].StartHour != 6 {
		t.Errorf("program 1 start hour = %d, want 6", day.Programs[0].StartHour)
	}
	if day.Programs[1] != (CalendarProgram{}) {
		t.Errorf("program 2 = %+v, want zeroed", day.Programs[1])
	}
}

func TestDecodeCalendarDayBadLength(t *testing.T) {
	if _, err := DecodeCalendarDay(nil); err == nil {
		t.Error("expected error for empty payload")
	}

	_, err := DecodeCalendarDay(make([]byte, calendarDayLen+1))
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError for oversized payload, got %v", err)
	}
}

func TestEncodeCalendarDayValidation(t *testing.T) {
	tests := []struct {
		name string
		day  CalendarDay
	}{
		{name: "day zero", day: CalendarDay{Day: 0}},
		{name: "day eight", day: CalendarDay{Day: 8}},
		{
			name: "too many programs",
			day:  CalendarDay{Day: 1, Programs: make([]CalendarProgram, 7)},
		},
		{
			name: "bad start hour",
			day:  CalendarDay{Day: 1, Programs: []CalendarProgram{{StartHour: 24}}},
		},
		{
			name: "bad offset",
			day:  CalendarDay{Day: 1, Programs: []CalendarProgram{{OffsetDegrees: 21}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeCalendarDay(&tt.day)
			var rerr *OutOfRangeError
			if !errors.As(err, &rerr) {
				t.Fatalf("expected OutOfRangeError, got %v", err)
			}
		})
	}
}

func TestCalendarNameRoundTrip(t *testing.T) {
	data, err := EncodeCalendarName("Työviikko")
	if err != nil {
		t.Fatalf("EncodeCalendarName failed: %v", err)
	}
	if len(data) != 61 {
		t.Fatalf("payload length = %d, want 61", len(data))
	}
	if data[0] != CalendarControlName {
		t.Fatalf("marker byte = %#x, want %#x", data[0], CalendarControlName)
	}

	name, err := DecodeCalendarName(data)
	if err != nil {
		t.Fatalf("DecodeCalendarName failed: %v", err)
	}
	if name != "Työviikko" {
		t.Errorf("name = %q, want %q", name, "Työviikko")
	}
}

func TestDecodeCalendarNameBadMarker(t *testing.T) {
	_, err := DecodeCalendarName([]byte{0x02, 'a'})
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestEncodeCalendarNameTooLong(t *testing.T) {
	long := make([]byte, 61)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := EncodeCalendarName(string(long)); err == nil {
		t.Error("expected error for name above 60 bytes")
	}
}
