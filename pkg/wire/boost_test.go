package wire

import (
	"errors"
	"testing"
)

func TestBoostConfigRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cfg  BoostConfig
	}{
		{
			name: "enabled with positive offset",
			cfg:  BoostConfig{Enabled: true, OffsetDegrees: 2.5, OffsetPercent: 10, SetpointMinutes: 60},
		},
		{
			name: "negative offsets",
			cfg:  BoostConfig{Enabled: true, OffsetDegrees: -5.0, OffsetPercent: -40, SetpointMinutes: 30},
		},
		{
			name: "disabled",
			cfg:  BoostConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeBoostConfig(&tt.cfg)
			if err != nil {
				t.Fatalf("EncodeBoostConfig failed: %v", err)
			}
			if len(data) != 8 {
				t.Fatalf("payload length = %d, want 8", len(data))
			}

			out, err := DecodeBoostConfig(data)
			if err != nil {
				t.Fatalf("DecodeBoostConfig failed: %v", err)
			}
			if *out != tt.cfg {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", out, tt.cfg)
			}
		})
	}
}

func TestEncodeBoostConfigClearsRemaining(t *testing.T) {
	data, err := EncodeBoostConfig(&BoostConfig{Enabled: true, SetpointMinutes: 90, RemainingMinutes: 42})
	if err != nil {
		t.Fatalf("EncodeBoostConfig failed: %v", err)
	}
	if data[6] != 0 || data[7] != 0 {
		t.Errorf("remaining bytes = [%#x %#x], want zero", data[6], data[7])
	}
}

func TestEncodeBoostConfigOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		cfg  BoostConfig
	}{
		{name: "offset too high", cfg: BoostConfig{OffsetDegrees: 20.5}},
		{name: "offset too low", cfg: BoostConfig{OffsetDegrees: -21}},
		{name: "percent too low", cfg: BoostConfig{OffsetPercent: -101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeBoostConfig(&tt.cfg)
			var rerr *OutOfRangeError
			if !errors.As(err, &rerr) {
				t.Fatalf("expected OutOfRangeError, got %v", err)
			}
		})
	}
}
