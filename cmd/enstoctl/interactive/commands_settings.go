package interactive

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ensto-ble/ensto-go/pkg/model"
	"github.com/ensto-ble/ensto-go/pkg/thermostat"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// heatingModeNames maps command arguments to wire modes.
var heatingModeNames = map[string]wire.HeatingMode{
	"floor":       wire.HeatingModeFloor,
	"room":        wire.HeatingModeRoom,
	"combination": wire.HeatingModeCombination,
	"combi":       wire.HeatingModeCombination,
	"power":       wire.HeatingModePower,
	"force":       wire.HeatingModeForceControl,
}

func (s *Shell) cmdMode(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		mode, err := d.HeatingMode(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Mode read failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.out(), "Heating mode: %s\n", mode)
		return
	}

	mode, ok := heatingModeNames[strings.ToLower(args[0])]
	if !ok {
		fmt.Fprintf(s.out(), "Unknown mode %q (floor, room, combination, power, force)\n", args[0])
		return
	}
	if err := d.WriteHeatingMode(ctx, mode); err != nil {
		if thermostat.IsUnsupportedMode(err) {
			fmt.Fprintf(s.out(), "This model does not support %s mode\n", mode)
			return
		}
		fmt.Fprintf(s.out(), "Mode write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Heating mode set to %s\n", mode)
}

func (s *Shell) cmdBoost(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		b, err := d.Boost(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Boost read failed: %v\n", err)
			return
		}
		if !b.Enabled {
			fmt.Fprintln(s.out(), "Boost: disarmed")
			return
		}
		fmt.Fprintf(s.out(), "Boost: %+.1f °C for %d minutes (%d remaining)\n",
			b.OffsetDegrees, b.SetpointMinutes, b.RemainingMinutes)
		return
	}

	if len(args) < 2 {
		fmt.Fprintln(s.out(), "Usage: boost <minutes> <offset-deg>  (boost 0 0 disarms)")
		return
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil || minutes < 0 {
		fmt.Fprintf(s.out(), "Invalid minutes: %s\n", args[0])
		return
	}
	offset, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(s.out(), "Invalid offset: %s\n", args[1])
		return
	}

	b := &wire.BoostConfig{
		Enabled:         minutes > 0,
		OffsetDegrees:   offset,
		SetpointMinutes: uint16(minutes),
	}
	if err := d.WriteBoost(ctx, b); err != nil {
		fmt.Fprintf(s.out(), "Boost write failed: %v\n", err)
		return
	}
	if b.Enabled {
		fmt.Fprintf(s.out(), "Boost armed: %+.1f °C for %d minutes\n", offset, minutes)
	} else {
		fmt.Fprintln(s.out(), "Boost disarmed")
	}
}

func (s *Shell) cmdLimits(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		l, err := d.FloorLimits(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Limits read failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.out(), "Floor limits: %.1f to %.1f °C\n", l.Low, l.High)
		return
	}

	if len(args) < 2 {
		fmt.Fprintln(s.out(), "Usage: limits <low> <high>")
		return
	}
	low, err1 := strconv.ParseFloat(args[0], 64)
	high, err2 := strconv.ParseFloat(args[1], 64)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(s.out(), "Limits must be numbers")
		return
	}
	if err := d.WriteFloorLimits(ctx, &wire.FloorLimits{Low: low, High: high}); err != nil {
		fmt.Fprintf(s.out(), "Limits write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Floor limits set to %.1f to %.1f °C\n", low, high)
}

func (s *Shell) cmdCalibration(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		offset, err := d.RoomCalibration(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Calibration read failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.out(), "Room calibration: %+.1f °C\n", offset)
		return
	}

	offset, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(s.out(), "Invalid offset: %s\n", args[0])
		return
	}
	if err := d.WriteRoomCalibration(ctx, offset); err != nil {
		fmt.Fprintf(s.out(), "Calibration write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Room calibration set to %+.1f °C\n", offset)
}

func (s *Shell) cmdSensor(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		cfg, err := d.FloorSensorConfig(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Sensor read failed: %v\n", err)
			return
		}
		label := fmt.Sprintf("type %d", cfg.SensorType)
		if preset, ok := model.FloorSensorPresetByType(cfg.SensorType); ok {
			label = preset.Name
		}
		fmt.Fprintf(s.out(), "Floor sensor: %s (B=%d, R25=%d Ohm)\n",
			label, cfg.BValue, cfg.Resistance25C)
		fmt.Fprintln(s.out(), "Available presets:")
		for _, p := range model.FloorSensorPresets() {
			fmt.Fprintf(s.out(), "  %s\n", p.Name)
		}
		return
	}

	name := joinArgs(args)
	preset, ok := model.FloorSensorPresetByName(name)
	if !ok {
		fmt.Fprintf(s.out(), "Unknown preset %q\n", name)
		return
	}
	if err := d.ApplyFloorSensorPreset(ctx, preset); err != nil {
		fmt.Fprintf(s.out(), "Sensor write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Floor sensor set to %s\n", preset.Name)
}

func (s *Shell) cmdUnit(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		e, err := d.EnergyUnit(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Unit read failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.out(), "Energy unit: %.2f %s/kWh\n", e.Price, e.Currency)
		return
	}

	if len(args) < 2 {
		fmt.Fprintln(s.out(), "Usage: unit <currency> <price>")
		return
	}
	currency, ok := currencyNames[strings.ToUpper(args[0])]
	if !ok {
		fmt.Fprintf(s.out(), "Unknown currency %q (EUR, SEK, NOK, RUB, USD)\n", args[0])
		return
	}
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(s.out(), "Invalid price: %s\n", args[1])
		return
	}
	if err := d.WriteEnergyUnit(ctx, &wire.EnergyUnit{Currency: currency, Price: price}); err != nil {
		fmt.Fprintf(s.out(), "Unit write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Energy unit set to %.2f %s/kWh\n", price, currency)
}

var currencyNames = map[string]wire.Currency{
	"EUR": wire.CurrencyEUR,
	"SEK": wire.CurrencySEK,
	"NOK": wire.CurrencyNOK,
	"RUB": wire.CurrencyRUB,
	"USD": wire.CurrencyUSD,
}
