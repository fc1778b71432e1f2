package testharness

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// Adapter is a simulated BLE stack hosting any number of simulated
// thermostats. It implements transport.Adapter.
type Adapter struct {
	mu      sync.Mutex
	devices map[string]*Thermostat
	enabled bool

	// ConnectErr, when set, makes every Connect attempt fail.
	ConnectErr error
}

// NewAdapter creates an empty simulated BLE stack.
func NewAdapter(devices ...*Thermostat) *Adapter {
	a := &Adapter{devices: make(map[string]*Thermostat)}
	for _, d := range devices {
		a.Add(d)
	}
	return a
}

// Add registers a simulated thermostat with the stack.
func (a *Adapter) Add(t *Thermostat) {
	a.mu.Lock()
	a.devices[strings.ToUpper(t.Address)] = t
	a.mu.Unlock()
}

// Enable implements transport.Adapter.
func (a *Adapter) Enable() error {
	a.mu.Lock()
	a.enabled = true
	a.mu.Unlock()
	return nil
}

// Scan replays one advertisement per registered device, then blocks
// until the callback stops the scan or ctx is done.
func (a *Adapter) Scan(ctx context.Context, found func(transport.Advertisement) (stop bool)) error {
	a.mu.Lock()
	devices := make([]*Thermostat, 0, len(a.devices))
	for _, d := range a.devices {
		devices = append(devices, d)
	}
	a.mu.Unlock()

	for _, d := range devices {
		if found(d.advertisement()) {
			return nil
		}
	}
	<-ctx.Done()
	return nil
}

// Connect implements transport.Adapter.
func (a *Adapter) Connect(ctx context.Context, address string) (transport.Peripheral, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	err := a.ConnectErr
	device := a.devices[strings.ToUpper(address)]
	a.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, fmt.Errorf("%w: %s", transport.ErrDeviceNotFound, address)
	}

	p := &simPeripheral{device: device}
	device.attach(p)
	return p, nil
}

var _ transport.Adapter = (*Adapter)(nil)

// advertisement builds the device's advertisement, including the
// manufacturer data pairing flag.
func (t *Thermostat) advertisement() transport.Advertisement {
	t.mu.Lock()
	pairing := "0"
	if t.InPairingMode {
		pairing = "1"
	}
	name := "ECO16BT"
	if model, ok := t.values[wire.UUIDModelNumber]; ok {
		name = string(model)
	}
	address := t.Address
	t.mu.Unlock()

	return transport.Advertisement{
		Address:   address,
		LocalName: name,
		RSSI:      -60,
		ManufacturerData: map[uint16][]byte{
			wire.ManufacturerID: []byte(address + ";" + pairing + ";0"),
		},
	}
}

// simPeripheral is one connection to a simulated thermostat.
type simPeripheral struct {
	device *Thermostat

	mu           sync.Mutex
	closed       bool
	onDisconnect func()
}

func (p *simPeripheral) Read(ctx context.Context, characteristic string) ([]byte, error) {
	if err := p.check(ctx); err != nil {
		return nil, err
	}
	return p.device.read(characteristic)
}

func (p *simPeripheral) Write(ctx context.Context, characteristic string, data []byte, withResponse bool) error {
	if err := p.check(ctx); err != nil {
		return err
	}
	return p.device.write(characteristic, data, withResponse)
}

func (p *simPeripheral) Pair(ctx context.Context) error {
	if err := p.check(ctx); err != nil {
		return err
	}
	return p.device.pair()
}

func (p *simPeripheral) MTU() int { return 23 }

func (p *simPeripheral) OnDisconnect(fn func()) {
	p.mu.Lock()
	p.onDisconnect = fn
	p.mu.Unlock()
}

func (p *simPeripheral) Disconnect() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// sever simulates an unsolicited link loss.
func (p *simPeripheral) sever() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	fn := p.onDisconnect
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (p *simPeripheral) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return fmt.Errorf("connection closed")
	}
	return nil
}

var _ transport.Peripheral = (*simPeripheral)(nil)
