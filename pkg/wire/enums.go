package wire

import "fmt"

// ActiveMode reports which scheduling regime currently drives the target
// temperature.
type ActiveMode uint8

const (
	// ActiveModeManual indicates the user setpoint is in effect.
	ActiveModeManual ActiveMode = 1

	// ActiveModeCalendar indicates a weekly calendar program is in effect.
	ActiveModeCalendar ActiveMode = 2

	// ActiveModeVacation indicates a vacation window override is in effect.
	ActiveModeVacation ActiveMode = 3
)

// String returns the active mode name.
func (m ActiveMode) String() string {
	switch m {
	case ActiveModeManual:
		return "Manual"
	case ActiveModeCalendar:
		return "Calendar"
	case ActiveModeVacation:
		return "Vacation"
	default:
		return fmt.Sprintf("ActiveMode(%d)", uint8(m))
	}
}

// HeatingMode selects which sensor input regulates the heating relay.
// Not every model supports every mode; see package model.
type HeatingMode uint8

const (
	// HeatingModeFloor regulates on the floor sensor.
	HeatingModeFloor HeatingMode = 1

	// HeatingModeRoom regulates on the room sensor.
	HeatingModeRoom HeatingMode = 2

	// HeatingModeCombination regulates on the room sensor constrained by
	// the floor limits.
	HeatingModeCombination HeatingMode = 3

	// HeatingModePower drives the relay on a duty-cycle percentage with no
	// sensor feedback.
	HeatingModePower HeatingMode = 4

	// HeatingModeForceControl hands regulation to an external controller
	// through the force control characteristic.
	HeatingModeForceControl HeatingMode = 5
)

// String returns the heating mode name.
func (m HeatingMode) String() string {
	switch m {
	case HeatingModeFloor:
		return "Floor"
	case HeatingModeRoom:
		return "Room"
	case HeatingModeCombination:
		return "Combination"
	case HeatingModePower:
		return "Power"
	case HeatingModeForceControl:
		return "Force Control"
	default:
		return fmt.Sprintf("HeatingMode(%d)", uint8(m))
	}
}

// ForceControlMode selects the external control behavior written through
// the force control characteristic.
type ForceControlMode uint8

const (
	// ForceControlOff releases external control.
	ForceControlOff ForceControlMode = 1

	// ForceControlStandby keeps external control registered without an
	// active setpoint. Reported by some firmware revisions in place of
	// ForceControlOff.
	ForceControlStandby ForceControlMode = 2

	// ForceControlTemperature drives an absolute target temperature.
	ForceControlTemperature ForceControlMode = 5

	// ForceControlOffset applies a temperature offset on top of the
	// device's own target.
	ForceControlOffset ForceControlMode = 6
)

// String returns the force control mode name.
func (m ForceControlMode) String() string {
	switch m {
	case ForceControlOff:
		return "Off"
	case ForceControlStandby:
		return "Standby"
	case ForceControlTemperature:
		return "Temperature"
	case ForceControlOffset:
		return "Temperature Offset"
	default:
		return fmt.Sprintf("ForceControlMode(%d)", uint8(m))
	}
}

// Valid reports whether m is one of the modes the device accepts.
func (m ForceControlMode) Valid() bool {
	switch m {
	case ForceControlOff, ForceControlStandby, ForceControlTemperature, ForceControlOffset:
		return true
	}
	return false
}

// Currency identifies the billing currency stored in the energy unit
// characteristic.
type Currency uint8

const (
	CurrencyEUR Currency = 1
	CurrencySEK Currency = 2
	CurrencyNOK Currency = 3
	CurrencyRUB Currency = 4
	CurrencyUSD Currency = 5
)

// String returns the ISO 4217 currency code.
func (c Currency) String() string {
	switch c {
	case CurrencyEUR:
		return "EUR"
	case CurrencySEK:
		return "SEK"
	case CurrencyNOK:
		return "NOK"
	case CurrencyRUB:
		return "RUB"
	case CurrencyUSD:
		return "USD"
	default:
		return fmt.Sprintf("Currency(%d)", uint8(c))
	}
}

// Valid reports whether c is a currency the device knows.
func (c Currency) Valid() bool {
	return c >= CurrencyEUR && c <= CurrencyUSD
}
