package model

import (
	"strings"

	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// Model identifies a thermostat product family.
type Model uint8

const (
	// ModelUnknown is an unrecognized model number. Treated as ECO16 for
	// capability checks, matching the vendor app's behavior.
	ModelUnknown Model = iota

	// ModelECO16 is the ECO16BT floor heating thermostat.
	ModelECO16

	// ModelELTE6 is the ELTE6-BT radiator thermostat. It has no floor
	// sensor input.
	ModelELTE6

	// ModelEPHBEBT is the EPHBEBT panel heater thermostat. Capabilities
	// match ECO16.
	ModelEPHBEBT
)

// String returns the product family name.
func (m Model) String() string {
	switch m {
	case ModelECO16:
		return "ECO16BT"
	case ModelELTE6:
		return "ELTE6-BT"
	case ModelEPHBEBT:
		return "EPHBEBT"
	default:
		return "Unknown"
	}
}

// Detect maps a model number string read from the device to a Model.
func Detect(modelNumber string) Model {
	upper := strings.ToUpper(modelNumber)
	switch {
	case strings.Contains(upper, "ELTE6"):
		return ModelELTE6
	case strings.Contains(upper, "EPHBEBT"):
		return ModelEPHBEBT
	case strings.Contains(upper, "ECO16"):
		return ModelECO16
	default:
		return ModelUnknown
	}
}

// HeatingModes returns the heating modes the model supports, in menu
// order. Models without a floor sensor cannot offer the floor-based
// modes.
func (m Model) HeatingModes() []wire.HeatingMode {
	switch m {
	case ModelELTE6:
		return []wire.HeatingMode{
			wire.HeatingModeRoom,
			wire.HeatingModePower,
			wire.HeatingModeForceControl,
		}
	default:
		return []wire.HeatingMode{
			wire.HeatingModeFloor,
			wire.HeatingModeRoom,
			wire.HeatingModeCombination,
			wire.HeatingModePower,
			wire.HeatingModeForceControl,
		}
	}
}

// SupportsHeatingMode reports whether the model accepts mode.
func (m Model) SupportsHeatingMode(mode wire.HeatingMode) bool {
	for _, supported := range m.HeatingModes() {
		if supported == mode {
			return true
		}
	}
	return false
}

// HasFloorSensor reports whether the model has a floor sensor input.
func (m Model) HasFloorSensor() bool {
	return m != ModelELTE6
}
