package model

import (
	"testing"

	"github.com/ensto-ble/ensto-go/pkg/wire"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		modelNumber string
		want        Model
	}{
		{"ECO16BT", ModelECO16},
		{"eco16bt rev2", ModelECO16},
		{"ELTE6-BT", ModelELTE6},
		{"EPHBEBT", ModelEPHBEBT},
		{"", ModelUnknown},
		{"SOMETHING", ModelUnknown},
	}
	for _, tt := range tests {
		if got := Detect(tt.modelNumber); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.modelNumber, got, tt.want)
		}
	}
}

func TestHeatingModes(t *testing.T) {
	if got := len(ModelECO16.HeatingModes()); got != 5 {
		t.Errorf("ECO16 mode count = %d, want 5", got)
	}
	if got := len(ModelELTE6.HeatingModes()); got != 3 {
		t.Errorf("ELTE6 mode count = %d, want 3", got)
	}

	if ModelELTE6.SupportsHeatingMode(wire.HeatingModeFloor) {
		t.Error("ELTE6 claims floor mode support")
	}
	if ModelELTE6.SupportsHeatingMode(wire.HeatingModeCombination) {
		t.Error("ELTE6 claims combination mode support")
	}
	if !ModelELTE6.SupportsHeatingMode(wire.HeatingModeRoom) {
		t.Error("ELTE6 missing room mode")
	}
	if !ModelECO16.SupportsHeatingMode(wire.HeatingModeCombination) {
		t.Error("ECO16 missing combination mode")
	}

	// Unknown models behave like ECO16.
	if !ModelUnknown.SupportsHeatingMode(wire.HeatingModeFloor) {
		t.Error("unknown model should fall back to the full mode set")
	}
}

func TestHasFloorSensor(t *testing.T) {
	if ModelELTE6.HasFloorSensor() {
		t.Error("ELTE6 has no floor sensor input")
	}
	if !ModelECO16.HasFloorSensor() {
		t.Error("ECO16 has a floor sensor input")
	}
}

func TestFloorSensorPresets(t *testing.T) {
	presets := FloorSensorPresets()
	if len(presets) != 5 {
		t.Fatalf("preset count = %d, want 5", len(presets))
	}

	p, ok := FloorSensorPresetByName("10 kOhm")
	if !ok {
		t.Fatal("10 kOhm preset missing")
	}
	if p.Config.SensorType != 2 || p.Config.Resistance25C != 10000 {
		t.Errorf("10 kOhm preset = %+v", p.Config)
	}

	// Every preset shares the app's fixed measurement circuit values.
	for _, p := range presets {
		if p.Config.MissingLimitADC != 4007 {
			t.Errorf("%s MissingLimitADC = %d, want 4007", p.Name, p.Config.MissingLimitADC)
		}
		if p.Config.PullUpResistor != 47000 {
			t.Errorf("%s PullUpResistor = %d, want 47000", p.Name, p.Config.PullUpResistor)
		}
		if p.Config.BrokenLimitADC != 100 {
			t.Errorf("%s BrokenLimitADC = %d, want 100", p.Name, p.Config.BrokenLimitADC)
		}
	}

	if _, ok := FloorSensorPresetByName("6.8 kOhm"); ok {
		t.Error("6.8 kOhm is not offered by the app")
	}

	byType, ok := FloorSensorPresetByType(7)
	if !ok || byType.Name != "47 kOhm" {
		t.Errorf("FloorSensorPresetByType(7) = %+v, %v", byType, ok)
	}
}

func TestParseSoftwareRevision(t *testing.T) {
	tests := []struct {
		raw  string
		want SoftwareRevision
	}{
		{"1.14;2.0;3", SoftwareRevision{"1.14", "2.0", "3"}},
		{"1.9", SoftwareRevision{Application: "1.9"}},
		{"1.14 ; 2.0 ; 3", SoftwareRevision{"1.14", "2.0", "3"}},
	}
	for _, tt := range tests {
		if got := ParseSoftwareRevision(tt.raw); got != tt.want {
			t.Errorf("ParseSoftwareRevision(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestSupportsExternalControl(t *testing.T) {
	tests := []struct {
		app  string
		want bool
	}{
		{"1.14", true},
		{"1.15", true},
		{"2.0", true},
		{"1.13", false},
		{"1.9", false},
		{"0.99", false},
		{"garbage", false},
		{"", false},
		{"v1.14.2", true},
	}
	for _, tt := range tests {
		rev := SoftwareRevision{Application: tt.app}
		if got := rev.SupportsExternalControl(); got != tt.want {
			t.Errorf("SupportsExternalControl(%q) = %v, want %v", tt.app, got, tt.want)
		}
	}
}
