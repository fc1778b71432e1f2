package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ensto-ble/ensto-go/pkg/transport"
)

// Finder scans for thermostats through a transport adapter.
type Finder struct {
	adapter transport.Adapter
}

// NewFinder creates a Finder over the adapter.
func NewFinder(adapter transport.Adapter) *Finder {
	return &Finder{adapter: adapter}
}

// FindDevice scans until the device with the given address advertises,
// or ctx is done. Returns transport.ErrDeviceNotFound if the scan window
// closes without seeing it.
func (f *Finder) FindDevice(ctx context.Context, address string) (Device, error) {
	var found *Device

	err := f.adapter.Scan(ctx, func(adv transport.Advertisement) bool {
		if !strings.EqualFold(adv.Address, address) {
			return false
		}
		d := fromAdvertisement(adv)
		found = &d
		return true
	})

	if found != nil {
		return *found, nil
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return Device{}, err
	}
	return Device{}, fmt.Errorf("%w: %s", transport.ErrDeviceNotFound, address)
}

// FindAll scans until ctx is done and returns every Ensto device seen,
// deduplicated by address.
func (f *Finder) FindAll(ctx context.Context) ([]Device, error) {
	var devices []Device
	seen := make(map[string]bool)

	err := f.adapter.Scan(ctx, func(adv transport.Advertisement) bool {
		if !IsEnsto(adv) || seen[adv.Address] {
			return false
		}
		seen[adv.Address] = true
		devices = append(devices, fromAdvertisement(adv))
		return false
	})

	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return devices, err
	}
	return devices, nil
}

// DevicesInPairingMode scans until ctx is done and returns the devices
// currently advertising the pairing flag.
func (f *Finder) DevicesInPairingMode(ctx context.Context) ([]Device, error) {
	all, err := f.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var pairing []Device
	for _, d := range all {
		if d.InPairingMode {
			pairing = append(pairing, d)
		}
	}
	return pairing, nil
}
