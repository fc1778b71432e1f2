package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// scanAdapter replays a fixed set of advertisements.
type scanAdapter struct {
	advs []transport.Advertisement
}

func (a *scanAdapter) Enable() error { return nil }

func (a *scanAdapter) Scan(ctx context.Context, found func(transport.Advertisement) bool) error {
	for _, adv := range a.advs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if found(adv) {
			return nil
		}
	}
	// A real scan blocks until stopped; emulate by waiting out the
	// caller's deadline.
	<-ctx.Done()
	return ctx.Err()
}

func (a *scanAdapter) Connect(ctx context.Context, address string) (transport.Peripheral, error) {
	return nil, errors.New("not implemented")
}

var _ transport.Adapter = (*scanAdapter)(nil)

func enstoAdv(address, payload string) transport.Advertisement {
	return transport.Advertisement{
		Address:   address,
		LocalName: "ECO16BT;" + address,
		RSSI:      -60,
		ManufacturerData: map[uint16][]byte{
			wire.ManufacturerID: []byte(payload),
		},
	}
}

func TestInPairingMode(t *testing.T) {
	tests := []struct {
		name string
		adv  transport.Advertisement
		want bool
	}{
		{"pairing flag set", enstoAdv("AA:00", "123456;1;0"), true},
		{"pairing flag clear", enstoAdv("AA:00", "123456;0;0"), false},
		{"two fields only", enstoAdv("AA:00", "123456;1"), true},
		{"single field", enstoAdv("AA:00", "123456"), false},
		{"empty payload", enstoAdv("AA:00", ""), false},
		{"flag not literal 1", enstoAdv("AA:00", "123456;11"), false},
		{"no ensto manufacturer data", transport.Advertisement{
			Address:          "AA:00",
			ManufacturerData: map[uint16][]byte{0x004C: []byte("x;1")},
		}, false},
		{"no manufacturer data at all", transport.Advertisement{Address: "AA:00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InPairingMode(tt.adv); got != tt.want {
				t.Errorf("InPairingMode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindDevice(t *testing.T) {
	adapter := &scanAdapter{advs: []transport.Advertisement{
		enstoAdv("11:11:11:11:11:11", "a;0"),
		enstoAdv("22:22:22:22:22:22", "b;1"),
	}}
	f := NewFinder(adapter)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	d, err := f.FindDevice(ctx, "22:22:22:22:22:22")
	if err != nil {
		t.Fatalf("FindDevice: %v", err)
	}
	if d.Address != "22:22:22:22:22:22" || !d.InPairingMode {
		t.Errorf("FindDevice = %+v", d)
	}
}

func TestFindDeviceCaseInsensitive(t *testing.T) {
	adapter := &scanAdapter{advs: []transport.Advertisement{
		enstoAdv("AA:BB:CC:DD:EE:FF", "a;0"),
	}}
	f := NewFinder(adapter)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := f.FindDevice(ctx, "aa:bb:cc:dd:ee:ff"); err != nil {
		t.Fatalf("FindDevice with lowercase address: %v", err)
	}
}

func TestFindDeviceNotFound(t *testing.T) {
	adapter := &scanAdapter{advs: []transport.Advertisement{
		enstoAdv("11:11:11:11:11:11", "a;0"),
	}}
	f := NewFinder(adapter)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := f.FindDevice(ctx, "99:99:99:99:99:99")
	if !errors.Is(err, transport.ErrDeviceNotFound) {
		t.Fatalf("FindDevice = %v, want ErrDeviceNotFound", err)
	}
}

func TestFindAllDeduplicates(t *testing.T) {
	adapter := &scanAdapter{advs: []transport.Advertisement{
		enstoAdv("11:11:11:11:11:11", "a;0"),
		enstoAdv("11:11:11:11:11:11", "a;0"),
		enstoAdv("22:22:22:22:22:22", "b;1"),
		{Address: "33:33", ManufacturerData: map[uint16][]byte{0x004C: []byte("x")}},
	}}
	f := NewFinder(adapter)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	devices, err := f.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("FindAll returned %d devices, want 2", len(devices))
	}
}

func TestDevicesInPairingMode(t *testing.T) {
	adapter := &scanAdapter{advs: []transport.Advertisement{
		enstoAdv("11:11:11:11:11:11", "a;0"),
		enstoAdv("22:22:22:22:22:22", "b;1"),
		enstoAdv("33:33:33:33:33:33", "c;1"),
	}}
	f := NewFinder(adapter)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	devices, err := f.DevicesInPairingMode(ctx)
	if err != nil {
		t.Fatalf("DevicesInPairingMode: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("got %d pairing devices, want 2", len(devices))
	}
	for _, d := range devices {
		if !d.InPairingMode {
			t.Errorf("device %s not in pairing mode", d.Address)
		}
	}
}
