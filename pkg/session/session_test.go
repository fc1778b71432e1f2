package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/persistence"
	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

const testAddress = "90:FD:9F:11:22:33"

type writeRecord struct {
	characteristic string
	data           []byte
	withResponse   bool
}

// fakePeripheral serves canned characteristic values and records writes.
type fakePeripheral struct {
	mu           sync.Mutex
	values       map[string][]byte
	writes       []writeRecord
	pairErr      error
	onDisconnect func()
	disconnected bool
}

func newFakePeripheral() *fakePeripheral {
	return &fakePeripheral{values: make(map[string][]byte)}
}

func (f *fakePeripheral) Read(ctx context.Context, characteristic string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.values[characteristic]
	if !ok {
		return nil, errors.New("no such characteristic")
	}
	return append([]byte(nil), data...), nil
}

func (f *fakePeripheral) Write(ctx context.Context, characteristic string, data []byte, withResponse bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, writeRecord{
		characteristic: characteristic,
		data:           append([]byte(nil), data...),
		withResponse:   withResponse,
	})
	return nil
}

func (f *fakePeripheral) Pair(ctx context.Context) error { return f.pairErr }
func (f *fakePeripheral) MTU() int                       { return 23 }

func (f *fakePeripheral) OnDisconnect(fn func()) {
	f.mu.Lock()
	f.onDisconnect = fn
	f.mu.Unlock()
}

func (f *fakePeripheral) Disconnect() error {
	f.mu.Lock()
	f.disconnected = true
	f.mu.Unlock()
	return nil
}

// dropLink simulates an unsolicited link loss.
func (f *fakePeripheral) dropLink() {
	f.mu.Lock()
	fn := f.onDisconnect
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (f *fakePeripheral) writtenTo(characteristic string) []writeRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []writeRecord
	for _, w := range f.writes {
		if w.characteristic == characteristic {
			out = append(out, w)
		}
	}
	return out
}

var _ transport.Peripheral = (*fakePeripheral)(nil)

// fakeAdapter advertises one device and hands out fresh peripherals.
type fakeAdapter struct {
	mu           sync.Mutex
	address      string
	newPeripheral func() *fakePeripheral
	peripherals  []*fakePeripheral
	connectGate  chan struct{} // when non-nil, Connect blocks on it
	connectErr   error
}

func (a *fakeAdapter) Enable() error { return nil }

func (a *fakeAdapter) Scan(ctx context.Context, found func(transport.Advertisement) (stop bool)) error {
	a.mu.Lock()
	address := a.address
	a.mu.Unlock()
	if address != "" {
		if found(transport.Advertisement{Address: address, LocalName: "ECO16BT"}) {
			return nil
		}
	}
	<-ctx.Done()
	return nil
}

func (a *fakeAdapter) Connect(ctx context.Context, address string) (transport.Peripheral, error) {
	a.mu.Lock()
	gate := a.connectGate
	a.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.connectErr != nil {
		return nil, a.connectErr
	}
	p := a.newPeripheral()
	a.peripherals = append(a.peripherals, p)
	return p, nil
}

func (a *fakeAdapter) connectCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.peripherals)
}

func (a *fakeAdapter) lastPeripheral() *fakePeripheral {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.peripherals) == 0 {
		return nil
	}
	return a.peripherals[len(a.peripherals)-1]
}

var _ transport.Adapter = (*fakeAdapter)(nil)

func deviceValues(factoryResetID uint32) map[string][]byte {
	return map[string][]byte{
		wire.UUIDFactoryResetID: wire.EncodeFactoryResetID(factoryResetID),
		wire.UUIDModelNumber:    []byte("ECO16BT"),
		wire.UUIDDeviceName:     append([]byte{0}, "Living room"...),
	}
}

func newTestAdapter(factoryResetID uint32) *fakeAdapter {
	return &fakeAdapter{
		address: testAddress,
		newPeripheral: func() *fakePeripheral {
			p := newFakePeripheral()
			p.values = deviceValues(factoryResetID)
			return p
		},
	}
}

func newTestSession(t *testing.T, adapter *fakeAdapter, store persistence.CredentialStore) *Session {
	t.Helper()
	s, err := New(Config{
		Address:     testAddress,
		Adapter:     adapter,
		Credentials: store,
		ScanTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestConnectFirstPairing(t *testing.T) {
	adapter := newTestAdapter(0x12345678)
	store := persistence.NewMemoryStore()
	s := newTestSession(t, adapter, store)

	var transitions []State
	s.OnStateChange(func(old, new State) {
		transitions = append(transitions, new)
	})

	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if got := s.State(); got != StateReady {
		t.Fatalf("state = %v, want %v", got, StateReady)
	}

	// The id read from the device must be persisted.
	cred, err := store.Load(testAddress)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cred == nil {
		t.Fatal("credential not saved after first pairing")
	}
	if cred.FactoryResetID != 0x12345678 {
		t.Fatalf("stored id = %#x, want %#x", cred.FactoryResetID, uint32(0x12345678))
	}

	// The id must be written back to the device with response before Ready.
	writes := adapter.lastPeripheral().writtenTo(wire.UUIDFactoryResetID)
	if len(writes) != 1 {
		t.Fatalf("factory reset id writes = %d, want 1", len(writes))
	}
	if !writes[0].withResponse {
		t.Fatal("factory reset id write was not with-response")
	}
	id, err := wire.DecodeFactoryResetID(writes[0].data)
	if err != nil {
		t.Fatalf("decode written id: %v", err)
	}
	if id != 0x12345678 {
		t.Fatalf("written id = %#x, want %#x", id, uint32(0x12345678))
	}

	identity := s.Identity()
	if !identity.FirstPairing {
		t.Fatal("Identity.FirstPairing = false, want true")
	}
	if identity.Model != "ECO16BT" {
		t.Fatalf("Identity.Model = %q, want %q", identity.Model, "ECO16BT")
	}

	want := []State{StateConnecting, StateConnected, StatePairing, StateAuthenticating, StateReady}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", transitions, want)
		}
	}
}

func TestConnectStoredCredential(t *testing.T) {
	adapter := newTestAdapter(0x12345678)
	store := persistence.NewMemoryStore()
	if err := store.Save(testAddress, &persistence.Credential{FactoryResetID: 999}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	s := newTestSession(t, adapter, store)

	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	// The stored id wins over whatever the device currently reports.
	writes := adapter.lastPeripheral().writtenTo(wire.UUIDFactoryResetID)
	if len(writes) != 1 {
		t.Fatalf("factory reset id writes = %d, want 1", len(writes))
	}
	id, err := wire.DecodeFactoryResetID(writes[0].data)
	if err != nil {
		t.Fatalf("decode written id: %v", err)
	}
	if id != 999 {
		t.Fatalf("written id = %d, want 999", id)
	}
	if s.Identity().FirstPairing {
		t.Fatal("Identity.FirstPairing = true, want false")
	}
}

func TestConnectPairFailure(t *testing.T) {
	adapter := &fakeAdapter{
		address: testAddress,
		newPeripheral: func() *fakePeripheral {
			p := newFakePeripheral()
			p.values = deviceValues(1)
			p.pairErr = errors.New("insufficient authentication")
			return p
		},
	}
	s := newTestSession(t, adapter, persistence.NewMemoryStore())

	err := s.Connect(context.Background())
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("Connect() error = %v, want ErrAuthenticationFailed", err)
	}
	if got := s.State(); got != StateDisconnected {
		t.Fatalf("state = %v, want %v", got, StateDisconnected)
	}
	p := adapter.lastPeripheral()
	p.mu.Lock()
	disconnected := p.disconnected
	p.mu.Unlock()
	if !disconnected {
		t.Fatal("peripheral not disconnected after pairing failure")
	}
}

func TestConnectDeviceNotFound(t *testing.T) {
	adapter := &fakeAdapter{} // advertises nothing
	s, err := New(Config{
		Address:     testAddress,
		Adapter:     adapter,
		Credentials: persistence.NewMemoryStore(),
		ScanTimeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	err = s.Connect(context.Background())
	if !errors.Is(err, transport.ErrDeviceNotFound) {
		t.Fatalf("Connect() error = %v, want ErrDeviceNotFound", err)
	}
	if got := s.State(); got != StateDisconnected {
		t.Fatalf("state = %v, want %v", got, StateDisconnected)
	}
}

func TestConnectConcurrentFailsFast(t *testing.T) {
	adapter := newTestAdapter(1)
	gate := make(chan struct{})
	adapter.connectGate = gate
	s := newTestSession(t, adapter, persistence.NewMemoryStore())

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Connect(context.Background())
	}()

	// Wait until the first attempt is blocked inside the adapter.
	deadline := time.Now().Add(time.Second)
	for s.State() != StateConnecting {
		if time.Now().After(deadline) {
			t.Fatal("first Connect never reached Connecting")
		}
		time.Sleep(time.Millisecond)
	}

	if err := s.Connect(context.Background()); !errors.Is(err, ErrAlreadyConnecting) {
		t.Fatalf("second Connect() error = %v, want ErrAlreadyConnecting", err)
	}

	close(gate)
	if err := <-firstDone; err != nil {
		t.Fatalf("first Connect() error: %v", err)
	}
	if got := adapter.connectCount(); got != 1 {
		t.Fatalf("transport connects = %d, want 1", got)
	}
}

func TestEnsureReadyWaitsForInFlight(t *testing.T) {
	adapter := newTestAdapter(1)
	gate := make(chan struct{})
	adapter.connectGate = gate
	s := newTestSession(t, adapter, persistence.NewMemoryStore())

	connectDone := make(chan error, 1)
	go func() {
		connectDone <- s.Connect(context.Background())
	}()

	deadline := time.Now().Add(time.Second)
	for s.State() != StateConnecting {
		if time.Now().After(deadline) {
			t.Fatal("Connect never reached Connecting")
		}
		time.Sleep(time.Millisecond)
	}

	ensureDone := make(chan error, 1)
	go func() {
		ensureDone <- s.EnsureReady(context.Background())
	}()

	close(gate)
	if err := <-connectDone; err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := <-ensureDone; err != nil {
		t.Fatalf("EnsureReady() error: %v", err)
	}
	if got := adapter.connectCount(); got != 1 {
		t.Fatalf("transport connects = %d, want 1", got)
	}
}

func TestExecLazyReconnect(t *testing.T) {
	adapter := newTestAdapter(1)
	s := newTestSession(t, adapter, persistence.NewMemoryStore())

	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	// The device drops the link; the session must notice.
	adapter.lastPeripheral().dropLink()
	if got := s.State(); got != StateDisconnected {
		t.Fatalf("state after link loss = %v, want %v", got, StateDisconnected)
	}

	// The next operation reconnects transparently.
	ran := false
	err := s.Exec(context.Background(), func(ctx context.Context, p transport.Peripheral) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("Exec() error: %v", err)
	}
	if !ran {
		t.Fatal("Exec callback did not run")
	}
	if got := adapter.connectCount(); got != 2 {
		t.Fatalf("transport connects = %d, want 2", got)
	}
	if got := s.State(); got != StateReady {
		t.Fatalf("state = %v, want %v", got, StateReady)
	}
}

func TestExecTransportErrorInvalidates(t *testing.T) {
	adapter := newTestAdapter(1)
	s := newTestSession(t, adapter, persistence.NewMemoryStore())

	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	linkErr := &transport.TransportError{Op: "read", Characteristic: wire.UUIDRealTimeIndication, Err: errors.New("ATT timeout")}
	err := s.Exec(context.Background(), func(ctx context.Context, p transport.Peripheral) error {
		return linkErr
	})
	if !errors.Is(err, linkErr) {
		t.Fatalf("Exec() error = %v, want %v", err, linkErr)
	}
	if got := s.State(); got != StateDisconnected {
		t.Fatalf("state = %v, want %v", got, StateDisconnected)
	}
}

func TestExecPlainErrorKeepsSession(t *testing.T) {
	adapter := newTestAdapter(1)
	s := newTestSession(t, adapter, persistence.NewMemoryStore())

	opErr := errors.New("value out of range")
	err := s.Exec(context.Background(), func(ctx context.Context, p transport.Peripheral) error {
		return opErr
	})
	if !errors.Is(err, opErr) {
		t.Fatalf("Exec() error = %v, want %v", err, opErr)
	}
	if got := s.State(); got != StateReady {
		t.Fatalf("state = %v, want %v", got, StateReady)
	}
}

func TestReadCharacteristicWrapsFailure(t *testing.T) {
	adapter := newTestAdapter(1)
	s := newTestSession(t, adapter, persistence.NewMemoryStore())

	_, err := s.ReadCharacteristic(context.Background(), "no-such-uuid")
	if !transport.IsTransportError(err) {
		t.Fatalf("ReadCharacteristic() error = %v, want a transport error", err)
	}
	// A failed read invalidates the session.
	if got := s.State(); got != StateDisconnected {
		t.Fatalf("state = %v, want %v", got, StateDisconnected)
	}
}

func TestClose(t *testing.T) {
	adapter := newTestAdapter(1)
	s := newTestSession(t, adapter, persistence.NewMemoryStore())

	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if got := s.State(); got != StateDisconnected {
		t.Fatalf("state = %v, want %v", got, StateDisconnected)
	}
	if err := s.Connect(context.Background()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("Connect() after Close error = %v, want ErrSessionClosed", err)
	}
	if err := s.Exec(context.Background(), func(context.Context, transport.Peripheral) error { return nil }); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("Exec() after Close error = %v, want ErrSessionClosed", err)
	}
}

func TestNewValidation(t *testing.T) {
	adapter := newTestAdapter(1)
	store := persistence.NewMemoryStore()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"no address", Config{Adapter: adapter, Credentials: store}},
		{"no adapter", Config{Address: testAddress, Credentials: store}},
		{"no store", Config{Address: testAddress, Adapter: adapter}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg); err == nil {
				t.Fatal("New() succeeded, want error")
			}
		})
	}
}
