package model

import (
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// FloorSensorPreset is one of the NTC sensor parameter sets the vendor
// app offers. The values are written to the device verbatim.
type FloorSensorPreset struct {
	// Name is the menu label, e.g. "10 kOhm".
	Name string

	// Config is the full parameter set written to the floor sensor type
	// characteristic.
	Config wire.FloorSensorConfig
}

// floorSensorPresets holds the parameter sets in menu order. Sensor
// types 1 (6.8 kOhm) and 5 (20 kOhm) exist in the wire format but are
// not offered by the app.
var floorSensorPresets = []FloorSensorPreset{
	{
		Name: "10 kOhm",
		Config: wire.FloorSensorConfig{
			SensorType:      2,
			MissingLimitADC: 4007,
			BValue:          3800,
			PullUpResistor:  47000,
			BrokenLimitADC:  100,
			Resistance25C:   10000,
			Offset:          -1,
		},
	},
	{
		Name: "12 kOhm",
		Config: wire.FloorSensorConfig{
			SensorType:      3,
			MissingLimitADC: 4007,
			BValue:          3600,
			PullUpResistor:  47000,
			BrokenLimitADC:  100,
			Resistance25C:   12000,
			Offset:          -7,
		},
	},
	{
		Name: "15 kOhm",
		Config: wire.FloorSensorConfig{
			SensorType:      4,
			MissingLimitADC: 4007,
			BValue:          3400,
			PullUpResistor:  47000,
			BrokenLimitADC:  100,
			Resistance25C:   15000,
			Offset:          -5,
		},
	},
	{
		Name: "33 kOhm",
		Config: wire.FloorSensorConfig{
			SensorType:      6,
			MissingLimitADC: 4007,
			BValue:          4100,
			PullUpResistor:  47000,
			BrokenLimitADC:  100,
			Resistance25C:   33000,
			Offset:          -4,
		},
	},
	{
		Name: "47 kOhm",
		Config: wire.FloorSensorConfig{
			SensorType:      7,
			MissingLimitADC: 4007,
			BValue:          3850,
			PullUpResistor:  47000,
			BrokenLimitADC:  100,
			Resistance25C:   47000,
			Offset:          -8,
		},
	},
}

// FloorSensorPresets returns the presets the vendor app offers, in menu
// order.
func FloorSensorPresets() []FloorSensorPreset {
	out := make([]FloorSensorPreset, len(floorSensorPresets))
	copy(out, floorSensorPresets)
	return out
}

// FloorSensorPresetByName returns the preset with the given menu label.
func FloorSensorPresetByName(name string) (FloorSensorPreset, bool) {
	for _, p := range floorSensorPresets {
		if p.Name == name {
			return p, true
		}
	}
	return FloorSensorPreset{}, false
}

// FloorSensorPresetByType returns the preset matching a sensor type read
// from the device.
func FloorSensorPresetByType(sensorType uint8) (FloorSensorPreset, bool) {
	for _, p := range floorSensorPresets {
		if p.Config.SensorType == sensorType {
			return p, true
		}
	}
	return FloorSensorPreset{}, false
}
