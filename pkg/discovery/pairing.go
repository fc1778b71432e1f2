package discovery

import (
	"strings"

	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// pairingFlagField is the index of the pairing flag in the
// semicolon-joined manufacturer data.
const pairingFlagField = 1

// Device is one discovered thermostat.
type Device struct {
	// Address is the device's link address.
	Address string

	// Name is the advertised local name, if any.
	Name string

	// RSSI is the received signal strength in dBm.
	RSSI int

	// InPairingMode reports whether the advertisement carried the
	// pairing flag.
	InPairingMode bool
}

// IsEnsto reports whether the advertisement carries Ensto manufacturer
// data.
func IsEnsto(adv transport.Advertisement) bool {
	_, ok := adv.ManufacturerData[wire.ManufacturerID]
	return ok
}

// InPairingMode reports whether the advertisement's manufacturer data
// carries the pairing flag. Non-Ensto and malformed advertisements
// report false.
func InPairingMode(adv transport.Advertisement) bool {
	data, ok := adv.ManufacturerData[wire.ManufacturerID]
	if !ok {
		return false
	}
	fields := strings.Split(string(data), ";")
	return len(fields) > pairingFlagField && fields[pairingFlagField] == "1"
}

// fromAdvertisement builds a Device from an Ensto advertisement.
func fromAdvertisement(adv transport.Advertisement) Device {
	return Device{
		Address:       adv.Address,
		Name:          adv.LocalName,
		RSSI:          adv.RSSI,
		InPairingMode: InPairingMode(adv),
	}
}
