package wire

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

// monitoringFixture builds a full 891-byte monitoring record with a
// daily stamp of 2026-08-22, a monthly stamp of August 2026 and an
// hourly stamp of 2026-08-22 13:00.
func monitoringFixture() []byte {
	data := make([]byte, 891)

	// Daily: header day, month, year then (delta, ratio) pairs.
	data[0], data[1], data[2] = 22, 8, 26
	for i := 0; i < 8; i++ {
		data[3+i*2] = byte(i)
		data[3+i*2+1] = byte(10 * i)
	}
	data[3+7*2+1] = 0xFF // oldest day unrecorded

	// Monthly: header month, year then (delta, ratio) pairs.
	data[19], data[20] = 8, 26
	for i := 0; i < 13; i++ {
		data[21+i*2] = byte(i)
		data[21+i*2+1] = byte(50 + i)
	}

	// Temperatures: header hour, day, month, year then (delta, floor,
	// room) records.
	data[47], data[48], data[49], data[50] = 13, 22, 8, 26
	binary.LittleEndian.PutUint16(data[52:54], 215) // floor 21.5
	binary.LittleEndian.PutUint16(data[54:56], 198) // room 19.8
	data[56] = 1
	binary.LittleEndian.PutUint16(data[57:59], 0x7FFF) // unrecorded
	binary.LittleEndian.PutUint16(data[59:61], 0x7FFF)
	return data
}

func TestDecodeMonitoringData(t *testing.T) {
	m, err := DecodeMonitoringData(monitoringFixture())
	if err != nil {
		t.Fatalf("DecodeMonitoringData failed: %v", err)
	}

	if len(m.Daily) != 8 {
		t.Fatalf("len(Daily) = %d, want 8", len(m.Daily))
	}
	if want := time.Date(2026, 8, 22, 0, 0, 0, 0, time.Local); !m.Daily[0].Time.Equal(want) {
		t.Errorf("Daily[0].Time = %v, want %v", m.Daily[0].Time, want)
	}
	if want := time.Date(2026, 8, 19, 0, 0, 0, 0, time.Local); !m.Daily[3].Time.Equal(want) {
		t.Errorf("Daily[3].Time = %v, want %v", m.Daily[3].Time, want)
	}
	if m.Daily[3].Ratio == nil || *m.Daily[3].Ratio != 30 {
		t.Errorf("Daily[3].Ratio = %v, want 30", m.Daily[3].Ratio)
	}
	if m.Daily[7].Ratio != nil {
		t.Errorf("Daily[7].Ratio = %v, want nil for 0xFF", *m.Daily[7].Ratio)
	}

	if len(m.Monthly) != 13 {
		t.Fatalf("len(Monthly) = %d, want 13", len(m.Monthly))
	}
	if want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local); !m.Monthly[0].Time.Equal(want) {
		t.Errorf("Monthly[0].Time = %v, want %v", m.Monthly[0].Time, want)
	}
	// Nine months back from August 2026 crosses the year boundary.
	if want := time.Date(2025, 11, 1, 0, 0, 0, 0, time.Local); !m.Monthly[9].Time.Equal(want) {
		t.Errorf("Monthly[9].Time = %v, want %v", m.Monthly[9].Time, want)
	}

	if len(m.Temperatures) != 168 {
		t.Fatalf("len(Temperatures) = %d, want 168", len(m.Temperatures))
	}
	if want := time.Date(2026, 8, 22, 13, 0, 0, 0, time.Local); !m.Temperatures[0].Time.Equal(want) {
		t.Errorf("Temperatures[0].Time = %v, want %v", m.Temperatures[0].Time, want)
	}
	if m.Temperatures[0].Floor == nil || *m.Temperatures[0].Floor != 21.5 {
		t.Errorf("Temperatures[0].Floor = %v, want 21.5", m.Temperatures[0].Floor)
	}
	if m.Temperatures[0].Room == nil || *m.Temperatures[0].Room != 19.8 {
		t.Errorf("Temperatures[0].Room = %v, want 19.8", m.Temperatures[0].Room)
	}
	if m.Temperatures[1].Floor != nil || m.Temperatures[1].Room != nil {
		t.Error("Temperatures[1] should be unrecorded")
	}
	if want := time.Date(2026, 8, 22, 12, 0, 0, 0, time.Local); !m.Temperatures[1].Time.Equal(want) {
		t.Errorf("Temperatures[1].Time = %v, want %v", m.Temperatures[1].Time, want)
	}
}

func TestDecodeMonitoringDataStrippedTail(t *testing.T) {
	// The transfer layer strips trailing zeros, so a record whose
	// temperature tail is all zeros arrives shortened.
	m, err := DecodeMonitoringData(monitoringFixture()[:200])
	if err != nil {
		t.Fatalf("DecodeMonitoringData failed: %v", err)
	}
	if len(m.Daily) != 8 || len(m.Monthly) != 13 || len(m.Temperatures) != 168 {
		t.Fatalf("section lengths = %d/%d/%d, want 8/13/168",
			len(m.Daily), len(m.Monthly), len(m.Temperatures))
	}
	last := m.Temperatures[167]
	if last.Floor == nil || *last.Floor != 0 {
		t.Errorf("restored tail Floor = %v, want 0", last.Floor)
	}
}

func TestDecodeMonitoringDataClampsTempDay(t *testing.T) {
	data := monitoringFixture()
	data[48] = 31 // day byte beyond the clamp range

	m, err := DecodeMonitoringData(data)
	if err != nil {
		t.Fatalf("DecodeMonitoringData failed: %v", err)
	}
	if got := m.Temperatures[0].Time.Day(); got != 28 {
		t.Errorf("clamped day = %d, want 28", got)
	}
}

func TestDecodeMonitoringDataShort(t *testing.T) {
	_, err := DecodeMonitoringData([]byte{1, 2})
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestDecodePowerConsumption(t *testing.T) {
	// Hour 5 on 2016-01-01, six recorded hours, rest unrecorded.
	data := make([]byte, 54)
	data[0], data[1], data[2], data[3] = 5, 1, 1, 16
	ratios := []byte{90, 89, 90, 90, 90, 90}
	for i, r := range ratios {
		data[4+i*2] = byte(i)
		data[4+i*2+1] = r
	}
	for i := len(ratios); i < 25; i++ {
		data[4+i*2+1] = 0xFF
	}

	pc, err := DecodePowerConsumption(data)
	if err != nil {
		t.Fatalf("DecodePowerConsumption failed: %v", err)
	}

	if want := time.Date(2016, 1, 1, 5, 0, 0, 0, time.Local); !pc.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", pc.Time, want)
	}
	if len(pc.Samples) != 6 {
		t.Fatalf("len(Samples) = %d, want 6", len(pc.Samples))
	}
	if *pc.Samples[0].Ratio != 90 || !pc.Samples[0].Time.Equal(pc.Time) {
		t.Errorf("Samples[0] = %+v", pc.Samples[0])
	}
	if want := time.Date(2016, 1, 1, 0, 0, 0, 0, time.Local); !pc.Samples[5].Time.Equal(want) {
		t.Errorf("Samples[5].Time = %v, want %v", pc.Samples[5].Time, want)
	}
}

func TestDecodePowerConsumptionStrippedZeros(t *testing.T) {
	// A trailing (delta, 0) pair loses its ratio byte to zero stripping;
	// the decoder restores it as a recorded zero ratio.
	data := make([]byte, 54)
	data[0], data[1], data[2], data[3] = 10, 2, 3, 26
	for i := 0; i < 25; i++ {
		data[4+i*2] = byte(i)
		data[4+i*2+1] = 0xFF
	}
	data[4+24*2+1] = 0 // oldest hour recorded as zero

	pc, err := DecodePowerConsumption(data[:53])
	if err != nil {
		t.Fatalf("DecodePowerConsumption failed: %v", err)
	}
	if len(pc.Samples) != 1 {
		t.Fatalf("len(Samples) = %d, want 1", len(pc.Samples))
	}
	if *pc.Samples[0].Ratio != 0 {
		t.Errorf("Ratio = %d, want 0", *pc.Samples[0].Ratio)
	}
}

func TestDecodePowerConsumptionShort(t *testing.T) {
	if _, err := DecodePowerConsumption([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for short payload")
	}
}
