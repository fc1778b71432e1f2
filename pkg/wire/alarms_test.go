package wire

import "testing"

func TestAlarmFlagsActive(t *testing.T) {
	a := AlarmInvalidVacation | AlarmRoomSensorBroken

	active := a.Active()
	if len(active) != 2 {
		t.Fatalf("Active() returned %d entries, want 2", len(active))
	}
	if active[0] != "Invalid vacation configuration" {
		t.Errorf("active[0] = %q", active[0])
	}
	if active[1] != "Room sensor broken" {
		t.Errorf("active[1] = %q", active[1])
	}
}

func TestAlarmFlagsString(t *testing.T) {
	if got := AlarmFlags(0).String(); got != "none" {
		t.Errorf("String() = %q, want %q", got, "none")
	}
	if got := AlarmFloorSensorMissing.String(); got != "Floor sensor missing" {
		t.Errorf("String() = %q", got)
	}
}

func TestAlarmFlagsIgnoresUnknownBits(t *testing.T) {
	a := AlarmFlags(0xF800) // only reserved bits
	if got := a.Active(); got != nil {
		t.Errorf("Active() = %v, want nil", got)
	}
}

func TestDecodeAlarmCode(t *testing.T) {
	flags, err := DecodeAlarmCode([]byte{0x10, 0x01, 0x00, 0x00})
	if err != nil {
		t.Fatalf("DecodeAlarmCode failed: %v", err)
	}
	if !flags.Has(AlarmInvalidCalendar) || !flags.Has(AlarmRoomSensorBroken) {
		t.Errorf("flags = %s", flags)
	}

	if _, err := DecodeAlarmCode([]byte{0x01}); err == nil {
		t.Error("expected error for short payload")
	}
}
