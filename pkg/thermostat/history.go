package thermostat

import (
	"context"

	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// PowerConsumption reads the rolling 25-hour relay ratio history.
func (d *Device) PowerConsumption(ctx context.Context) (*wire.PowerConsumption, error) {
	data, err := d.session.ReadSplit(ctx, wire.UUIDPowerConsumption)
	if err != nil {
		return nil, err
	}
	return wire.DecodePowerConsumption(data)
}

// MonitoringData reads the long-term consumption and temperature
// history: daily ratios for a week, monthly ratios for a year and
// hourly temperatures for a week.
func (d *Device) MonitoringData(ctx context.Context) (*wire.MonitoringData, error) {
	data, err := d.session.ReadSplit(ctx, wire.UUIDMonitoringData)
	if err != nil {
		return nil, err
	}
	return wire.DecodeMonitoringData(data)
}
