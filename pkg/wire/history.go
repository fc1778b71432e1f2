package wire

import (
	"encoding/binary"
	"time"
)

// Monitoring data section offsets. The record is three fixed sections
// back to back: 3+8*2 daily bytes, 2+13*2 monthly bytes and 4+168*5
// hourly temperature bytes.
const (
	monitoringDailySamples   = 8
	monitoringMonthlySamples = 13
	monitoringTempSamples    = 168

	monitoringMonthlyOff = 3 + monitoringDailySamples*2
	monitoringTempOff    = monitoringMonthlyOff + 2 + monitoringMonthlySamples*2
	monitoringLen        = monitoringTempOff + 4 + monitoringTempSamples*5

	powerConsumptionSamples = 25
	powerConsumptionLen     = 4 + powerConsumptionSamples*2
)

// RatioSample is one relay on/off ratio measurement. A nil Ratio means
// the device has not recorded that slot yet.
type RatioSample struct {
	// Time is the start of the measured period, device wall clock.
	Time time.Time

	// Ratio is the relay duty percentage, 0 to 100.
	Ratio *uint8
}

// TemperatureSample is one hourly temperature measurement. Nil values
// mean the device has not recorded that slot yet.
type TemperatureSample struct {
	// Time is the start of the measured hour, device wall clock.
	Time time.Time

	// Floor is the floor temperature in degrees Celsius.
	Floor *float64

	// Room is the room temperature in degrees Celsius.
	Room *float64
}

// MonitoringData is the device's consumption and temperature history:
// daily relay ratios for the last week, monthly ratios for the last
// year plus a cumulative slot, and hourly temperatures for the last
// week. All timestamps are device wall clock carried in time.Local.
type MonitoringData struct {
	Daily        []RatioSample
	Monthly      []RatioSample
	Temperatures []TemperatureSample
}

// DecodeMonitoringData decodes the 891-byte monitoring record.
//
// Each section starts with a wall-clock header stamp; samples carry a
// delta from that stamp in days, months or hours. Month deltas use
// calendar arithmetic. The transfer layer strips trailing zero padding,
// which can also strip trailing zero-valued content; the decoder
// restores the nominal length with zeros first, so a shortened record
// decodes to what the device held.
func DecodeMonitoringData(data []byte) (*MonitoringData, error) {
	if len(data) < 3 {
		return nil, decodeErrShort("monitoring data", 3, len(data))
	}
	data = padToLen(data, monitoringLen)

	out := &MonitoringData{}

	// Daily section: header day, month, year, then (delta days, ratio)
	// pairs.
	dayStamp := time.Date(2000+int(data[2]), time.Month(data[1]), int(data[0]), 0, 0, 0, 0, time.Local)
	for i := 0; i < monitoringDailySamples; i++ {
		off := 3 + i*2
		out.Daily = append(out.Daily, RatioSample{
			Time:  dayStamp.AddDate(0, 0, -int(data[off])),
			Ratio: ratioOrNil(data[off+1]),
		})
	}

	// Monthly section: header month, year, then (delta months, ratio)
	// pairs. The stamp pins day 1 so subtracting months can never
	// overflow into a neighboring month.
	monthStamp := time.Date(2000+int(data[monitoringMonthlyOff+1]), time.Month(data[monitoringMonthlyOff]), 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < monitoringMonthlySamples; i++ {
		off := monitoringMonthlyOff + 2 + i*2
		out.Monthly = append(out.Monthly, RatioSample{
			Time:  monthStamp.AddDate(0, -int(data[off]), 0),
			Ratio: ratioOrNil(data[off+1]),
		})
	}

	// Temperature section: header hour, day, month, year, then (delta
	// hours, floor, room) records. Day bytes outside 1..28 have been
	// seen on devices with unset clocks; they are clamped the same way
	// the vendor application clamps them.
	tempDay := int(data[monitoringTempOff+1])
	if tempDay < 1 {
		tempDay = 1
	} else if tempDay > 28 {
		tempDay = 28
	}
	tempStamp := time.Date(2000+int(data[monitoringTempOff+3]), time.Month(data[monitoringTempOff+2]), tempDay,
		int(data[monitoringTempOff]), 0, 0, 0, time.Local)
	for i := 0; i < monitoringTempSamples; i++ {
		off := monitoringTempOff + 4 + i*5
		out.Temperatures = append(out.Temperatures, TemperatureSample{
			Time:  tempStamp.Add(-time.Duration(data[off]) * time.Hour),
			Floor: tempOrNil(int16(binary.LittleEndian.Uint16(data[off+1 : off+3]))),
			Room:  tempOrNil(int16(binary.LittleEndian.Uint16(data[off+3 : off+5]))),
		})
	}

	return out, nil
}

// PowerConsumption is the rolling 25-hour relay ratio history the
// device refreshes once per second while no other transfer is active.
type PowerConsumption struct {
	// Time is the header stamp, the start of the current hour in device
	// wall clock.
	Time time.Time

	// Samples holds one entry per recorded hour, newest first. Slots
	// the device has not filled yet are omitted.
	Samples []RatioSample
}

// DecodePowerConsumption decodes the 54-byte power consumption record.
//
// Layout: [0:4] wall-clock header as hour, day, month, year, then 25
// (delta hours, ratio) pairs. Pairs with ratio 0xFF are unrecorded and
// skipped. Trailing zeros lost to padding removal are restored before
// decoding, like DecodeMonitoringData.
func DecodePowerConsumption(data []byte) (*PowerConsumption, error) {
	if len(data) < 4 {
		return nil, decodeErrShort("power consumption", 4, len(data))
	}
	data = padToLen(data, powerConsumptionLen)

	stamp := time.Date(2000+int(data[3]), time.Month(data[2]), int(data[1]), int(data[0]), 0, 0, 0, time.Local)
	out := &PowerConsumption{Time: stamp}
	for i := 0; i < powerConsumptionSamples; i++ {
		off := 4 + i*2
		ratio := data[off+1]
		if ratio == 0xFF {
			continue
		}
		r := ratio
		out.Samples = append(out.Samples, RatioSample{
			Time:  stamp.Add(-time.Duration(data[off]) * time.Hour),
			Ratio: &r,
		})
	}
	return out, nil
}

// padToLen returns data zero-extended to n bytes. Data at least n bytes
// long is returned as is.
func padToLen(data []byte, n int) []byte {
	if len(data) >= n {
		return data
	}
	padded := make([]byte, n)
	copy(padded, data)
	return padded
}

func ratioOrNil(raw byte) *uint8 {
	if raw == 0xFF {
		return nil
	}
	r := raw
	return &r
}

func tempOrNil(raw int16) *float64 {
	if raw == 0x7FFF {
		return nil
	}
	t := float64(raw) / 10
	return &t
}
