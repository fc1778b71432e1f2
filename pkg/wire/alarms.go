package wire

import "strings"

// AlarmFlags is the bitset of active device alarms from the real time
// indication. The low byte carries sensor and configuration faults, the
// second byte carries the remaining fault bits. The upper two bytes of
// the on-wire alarm region are reserved and not represented here.
type AlarmFlags uint16

const (
	AlarmSensorShortCircuit   AlarmFlags = 1 << 0
	AlarmCombinationLowLimit  AlarmFlags = 1 << 1
	AlarmCombinationHighLimit AlarmFlags = 1 << 2
	AlarmInvalidVacation      AlarmFlags = 1 << 3
	AlarmInvalidCalendar      AlarmFlags = 1 << 4
	AlarmFloorSensorMissing   AlarmFlags = 1 << 5
	AlarmFloorSensorBroken    AlarmFlags = 1 << 6
	AlarmRoomSensorMissing    AlarmFlags = 1 << 7
	AlarmRoomSensorBroken     AlarmFlags = 1 << 8
	AlarmCombinationBadLimits AlarmFlags = 1 << 9
	AlarmCalendarDayNotSet    AlarmFlags = 1 << 10
)

// alarmKnownMask covers every alarm bit with a defined meaning.
const alarmKnownMask AlarmFlags = 1<<11 - 1

var alarmNames = map[AlarmFlags]string{
	AlarmSensorShortCircuit:   "Sensor fault (short-circuit)",
	AlarmCombinationLowLimit:  "Low limit in combination mode",
	AlarmCombinationHighLimit: "High limit in combination mode",
	AlarmInvalidVacation:      "Invalid vacation configuration",
	AlarmInvalidCalendar:      "Invalid calendar configuration",
	AlarmFloorSensorMissing:   "Floor sensor missing",
	AlarmFloorSensorBroken:    "Floor sensor broken",
	AlarmRoomSensorMissing:    "Room sensor missing",
	AlarmRoomSensorBroken:     "Room sensor broken",
	AlarmCombinationBadLimits: "Combination mode faulty set values (<8)",
	AlarmCalendarDayNotSet:    "Day calendar is not set",
}

// Has reports whether every bit in flag is set.
func (a AlarmFlags) Has(flag AlarmFlags) bool {
	return a&flag == flag
}

// Active returns the descriptions of all set alarm bits with a defined
// meaning, in bit order. Unknown bits are ignored.
func (a AlarmFlags) Active() []string {
	var out []string
	for bit := AlarmFlags(1); bit <= AlarmCalendarDayNotSet; bit <<= 1 {
		if a&bit != 0 {
			out = append(out, alarmNames[bit])
		}
	}
	return out
}

// String returns a semicolon-joined list of active alarms, or "none".
func (a AlarmFlags) String() string {
	active := a.Active()
	if len(active) == 0 {
		return "none"
	}
	return strings.Join(active, "; ")
}

// DecodeAlarmCode decodes the standalone 4-byte alarm code
// characteristic. Bytes 2 and 3 are reserved and discarded.
func DecodeAlarmCode(data []byte) (AlarmFlags, error) {
	if len(data) < 2 {
		return 0, decodeErrShort("alarm code", 2, len(data))
	}
	return AlarmFlags(uint16(data[0]) | uint16(data[1])<<8), nil
}
