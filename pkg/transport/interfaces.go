package transport

import (
	"context"
)

// Advertisement is one received BLE advertisement.
type Advertisement struct {
	// Address is the advertiser's link address. On Linux this is the MAC
	// address; on macOS it is the CoreBluetooth UUID.
	Address string

	// LocalName is the advertised device name, if present.
	LocalName string

	// RSSI is the received signal strength in dBm.
	RSSI int

	// ManufacturerData holds the manufacturer-specific payloads keyed by
	// the Bluetooth SIG company identifier.
	ManufacturerData map[uint16][]byte
}

// Peripheral is an established GATT connection to one device.
// Implementations process one request at a time; callers must serialize
// their own operations on a single Peripheral.
type Peripheral interface {
	// Read reads the current value of a characteristic.
	Read(ctx context.Context, characteristic string) ([]byte, error)

	// Write writes a characteristic value. When withResponse is set the
	// write is acknowledged at the ATT layer.
	Write(ctx context.Context, characteristic string, data []byte, withResponse bool) error

	// Pair initiates pairing/bonding on the link. Stacks that bond
	// implicitly on secured characteristic access return nil.
	Pair(ctx context.Context) error

	// MTU returns the negotiated maximum transfer unit.
	MTU() int

	// OnDisconnect registers a callback invoked when the link drops.
	OnDisconnect(func())

	// Disconnect terminates the connection. The Peripheral must not be
	// used afterwards.
	Disconnect() error
}

// Adapter abstracts the host BLE stack.
// Implemented by BluetoothAdapter and by the test harness.
type Adapter interface {
	// Enable powers on the BLE adapter. Must be called once before any
	// other method.
	Enable() error

	// Scan reports advertisements to found until the callback returns
	// true (stop) or ctx is done.
	Scan(ctx context.Context, found func(Advertisement) (stop bool)) error

	// Connect establishes a connection to the device with the given
	// address. A failed attempt is retried with backoff until ctx is
	// done.
	Connect(ctx context.Context, address string) (Peripheral, error)
}

// Compile-time interface satisfaction checks.
var (
	_ Adapter    = (*BluetoothAdapter)(nil)
	_ Peripheral = (*bluetoothPeripheral)(nil)
)
