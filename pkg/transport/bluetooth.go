package transport

import (
	"context"
	"fmt"
	"sync"

	"tinygo.org/x/bluetooth"
)

// defaultMTU is reported when the stack does not expose the negotiated
// value. Ensto thermostats negotiate at least this much; the split
// transfer never depends on the exact number.
const defaultMTU = 23

// BluetoothAdapter implements Adapter on tinygo.org/x/bluetooth.
// On Linux device addresses are MAC addresses; on macOS they are
// CoreBluetooth UUIDs.
type BluetoothAdapter struct {
	adapter *bluetooth.Adapter
	backoff BackoffConfig

	// mu protects the connections map.
	mu          sync.Mutex
	connections map[string]*bluetoothPeripheral // keyed by device address
}

// NewBluetoothAdapter creates a BLE adapter over the platform's default
// Bluetooth hardware.
func NewBluetoothAdapter() *BluetoothAdapter {
	return &BluetoothAdapter{
		adapter:     bluetooth.DefaultAdapter,
		connections: make(map[string]*bluetoothPeripheral),
	}
}

// SetBackoff overrides the connect retry backoff parameters.
func (a *BluetoothAdapter) SetBackoff(cfg BackoffConfig) {
	a.backoff = cfg
}

// Enable powers on the adapter and registers the link loss handler.
func (a *BluetoothAdapter) Enable() error {
	if err := a.adapter.Enable(); err != nil {
		return linkErr("enable", "", err)
	}

	// The stack fires this callback with connected=false when a
	// peripheral disconnects.
	a.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		if connected {
			return
		}
		addr := device.Address.String()
		a.mu.Lock()
		p, ok := a.connections[addr]
		delete(a.connections, addr)
		a.mu.Unlock()
		if ok {
			p.linkLost()
		}
	})

	return nil
}

// Scan reports advertisements until found returns true or ctx is done.
func (a *BluetoothAdapter) Scan(ctx context.Context, found func(Advertisement) (stop bool)) error {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			a.adapter.StopScan()
		case <-done:
		}
	}()

	err := a.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		adv := Advertisement{
			Address:   result.Address.String(),
			LocalName: result.LocalName(),
			RSSI:      int(result.RSSI),
		}
		for _, md := range result.ManufacturerData() {
			if adv.ManufacturerData == nil {
				adv.ManufacturerData = make(map[uint16][]byte)
			}
			adv.ManufacturerData[md.CompanyID] = append([]byte(nil), md.Data...)
		}
		if found(adv) {
			adapter.StopScan()
		}
	})
	close(done)

	if err != nil && ctx.Err() == nil {
		return linkErr("scan", "", err)
	}
	return ctx.Err()
}

// Connect establishes a connection to address, retrying with jittered
// exponential backoff until ctx is done.
func (a *BluetoothAdapter) Connect(ctx context.Context, address string) (Peripheral, error) {
	backoff := NewBackoffWithConfig(a.backoff)

	for {
		p, err := a.connectOnce(ctx, address)
		if err == nil {
			return p, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		if serr := sleepCtx(ctx, backoff.Next()); serr != nil {
			return nil, err
		}
	}
}

// connectOnce performs a single connect attempt.
func (a *BluetoothAdapter) connectOnce(ctx context.Context, address string) (*bluetoothPeripheral, error) {
	var addr bluetooth.Address
	addr.Set(address)

	// The stack's Connect blocks with its own internal timeout. Wrap it
	// so ctx cancellation returns promptly; an eventual late success is
	// discarded by the disconnect below.
	type connectResult struct {
		device bluetooth.Device
		err    error
	}
	ch := make(chan connectResult, 1)
	go func() {
		device, err := a.adapter.Connect(addr, bluetooth.ConnectionParams{})
		ch <- connectResult{device, err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if result := <-ch; result.err == nil {
				result.device.Disconnect()
			}
		}()
		return nil, linkErr("connect", "", ctx.Err())
	case result := <-ch:
		if result.err != nil {
			return nil, linkErr("connect", "", result.err)
		}

		p := &bluetoothPeripheral{
			adapter: a,
			address: address,
			device:  result.device,
		}
		a.mu.Lock()
		a.connections[address] = p
		a.mu.Unlock()
		return p, nil
	}
}

// bluetoothPeripheral is one established tinygo bluetooth connection.
type bluetoothPeripheral struct {
	adapter *BluetoothAdapter
	address string
	device  bluetooth.Device

	// mu protects chars and disconnectCb.
	mu           sync.Mutex
	chars        map[string]*bluetooth.DeviceCharacteristic
	disconnectCb func()
}

// characteristic returns the discovered characteristic for uuid,
// discovering all services lazily on first use and caching the result
// for the life of the connection.
func (p *bluetoothPeripheral) characteristic(uuid string) (*bluetooth.DeviceCharacteristic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.chars == nil {
		svcs, err := p.device.DiscoverServices(nil)
		if err != nil {
			return nil, fmt.Errorf("discover services: %w", err)
		}
		p.chars = make(map[string]*bluetooth.DeviceCharacteristic)
		for i := range svcs {
			chars, err := svcs[i].DiscoverCharacteristics(nil)
			if err != nil {
				return nil, fmt.Errorf("discover characteristics: %w", err)
			}
			for j := range chars {
				c := chars[j]
				p.chars[c.UUID().String()] = &c
			}
		}
	}

	c, ok := p.chars[uuid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCharacteristicNotFound, uuid)
	}
	return c, nil
}

func (p *bluetoothPeripheral) Read(ctx context.Context, characteristic string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := p.characteristic(characteristic)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 512)
	n, err := c.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (p *bluetoothPeripheral) Write(ctx context.Context, characteristic string, data []byte, withResponse bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := p.characteristic(characteristic)
	if err != nil {
		return err
	}

	// The BlueZ backend issues acknowledged writes for characteristics
	// whose properties require them; the stack exposes a single write
	// entry point.
	_, err = c.WriteWithoutResponse(data)
	return err
}

func (p *bluetoothPeripheral) Pair(ctx context.Context) error {
	// The stack has no explicit pair call. Bonding is triggered by the
	// OS agent on first access to a secured characteristic, which the
	// session performs immediately after this during authentication.
	return ctx.Err()
}

func (p *bluetoothPeripheral) MTU() int {
	return defaultMTU
}

func (p *bluetoothPeripheral) OnDisconnect(cb func()) {
	p.mu.Lock()
	p.disconnectCb = cb
	p.mu.Unlock()
}

// linkLost fires the disconnect callback after an unsolicited link drop.
func (p *bluetoothPeripheral) linkLost() {
	p.mu.Lock()
	cb := p.disconnectCb
	p.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (p *bluetoothPeripheral) Disconnect() error {
	p.adapter.mu.Lock()
	delete(p.adapter.connections, p.address)
	p.adapter.mu.Unlock()
	return p.device.Disconnect()
}
