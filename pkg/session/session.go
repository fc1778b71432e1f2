package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ensto-ble/ensto-go/pkg/discovery"
	"github.com/ensto-ble/ensto-go/pkg/log"
	"github.com/ensto-ble/ensto-go/pkg/persistence"
	"github.com/ensto-ble/ensto-go/pkg/transport"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// DefaultScanTimeout bounds device discovery during connect.
const DefaultScanTimeout = 10 * time.Second

// Config configures a Session.
type Config struct {
	// Address is the device's link address.
	Address string

	// Adapter is the BLE stack to connect through.
	Adapter transport.Adapter

	// Credentials stores the factory reset id across restarts.
	Credentials persistence.CredentialStore

	// Logger receives debug logging. Nil disables.
	Logger *slog.Logger

	// ProtocolLogger receives protocol events. Nil disables.
	ProtocolLogger log.Logger

	// ScanTimeout bounds device discovery during connect.
	// Defaults to DefaultScanTimeout.
	ScanTimeout time.Duration

	// SplitWriteDelay overrides the split write settle delay.
	// Zero keeps the standard delay; tests shorten it.
	SplitWriteDelay time.Duration
}

// Identity is what the session learns about the device while becoming
// Ready. The secondary fields are read opportunistically and may be
// empty if those reads failed.
type Identity struct {
	// Address is the device's link address.
	Address string

	// FactoryResetID is the authentication id in use.
	FactoryResetID uint32

	// FirstPairing reports whether the id was obtained from the device
	// during this connect rather than loaded from the credential store.
	FirstPairing bool

	// Model is the model number string, e.g. "ECO16BT".
	Model string

	// DeviceName is the user-visible device name.
	DeviceName string

	// SoftwareRevision is the raw "app;ble;bootloader" revision string.
	SoftwareRevision string

	// HardwareRevision is the hardware revision number.
	HardwareRevision uint32
}

// Session owns the BLE link to one thermostat. Create with New; one
// Session per physical device.
type Session struct {
	id   string
	cfg  Config
	plog log.Logger

	// mu guards the lifecycle fields.
	mu          sync.Mutex
	state       State
	peripheral  transport.Peripheral
	identity    Identity
	closed      bool
	connecting  bool
	connectDone chan struct{}
	connectErr  error

	// opMu serializes GATT operations; the link processes one request
	// at a time.
	opMu sync.Mutex

	// cbMu guards the callback slot.
	cbMu          sync.Mutex
	onStateChange func(old, new State)
}

// New creates a session for the device at cfg.Address. No I/O happens
// until Connect or the first operation.
func New(cfg Config) (*Session, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("session: address is required")
	}
	if cfg.Adapter == nil {
		return nil, fmt.Errorf("session: adapter is required")
	}
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("session: credential store is required")
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = DefaultScanTimeout
	}

	plog := cfg.ProtocolLogger
	if plog == nil {
		plog = log.NoopLogger{}
	}

	return &Session{
		id:    uuid.NewString(),
		cfg:   cfg,
		plog:  plog,
		state: StateDisconnected,
	}, nil
}

// ID returns the session's unique id, stamped on its protocol events.
func (s *Session) ID() string {
	return s.id
}

// Address returns the device's link address.
func (s *Session) Address() string {
	return s.cfg.Address
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns what is known about the device. Complete once the
// session has been Ready at least once.
func (s *Session) Identity() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// OnStateChange registers a callback invoked (outside the session lock)
// after every state transition.
func (s *Session) OnStateChange(fn func(old, new State)) {
	s.cbMu.Lock()
	s.onStateChange = fn
	s.cbMu.Unlock()
}

// Connect explicitly walks the session to Ready. A second Connect while
// an attempt is in flight fails fast with ErrAlreadyConnecting; use
// EnsureReady to wait for the in-flight attempt instead.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state == StateReady {
		s.mu.Unlock()
		return nil
	}
	if s.connecting {
		s.mu.Unlock()
		return ErrAlreadyConnecting
	}
	s.connecting = true
	s.connectDone = make(chan struct{})
	s.mu.Unlock()

	return s.runConnect(ctx)
}

// EnsureReady returns once the session is Ready, waiting for an
// in-flight connect attempt or starting one itself. Failure is reported
// as ErrNotReady wrapping the cause.
func (s *Session) EnsureReady(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return ErrSessionClosed
		}
		if s.state == StateReady {
			s.mu.Unlock()
			return nil
		}
		if s.connecting {
			done := s.connectDone
			s.mu.Unlock()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-done:
			}

			s.mu.Lock()
			err := s.connectErr
			ready := s.state == StateReady
			s.mu.Unlock()
			if ready {
				return nil
			}
			if err == nil {
				// The attempt succeeded but the link dropped since;
				// loop and try again.
				continue
			}
			return fmt.Errorf("%w: %w", ErrNotReady, err)
		}
		s.connecting = true
		s.connectDone = make(chan struct{})
		s.mu.Unlock()

		if err := s.runConnect(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrNotReady, err)
		}
		return nil
	}
}

// runConnect performs one connect attempt and publishes its result to
// waiters.
func (s *Session) runConnect(ctx context.Context) error {
	err := s.connect(ctx)

	s.mu.Lock()
	s.connecting = false
	s.connectErr = err
	close(s.connectDone)
	s.mu.Unlock()

	return err
}

// connect walks Disconnected -> Ready. Every failure tears the link
// down and lands in Disconnected.
func (s *Session) connect(ctx context.Context) error {
	s.setState(StateConnecting, "")

	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	_, err := discovery.NewFinder(s.cfg.Adapter).FindDevice(scanCtx, s.cfg.Address)
	cancel()
	if err != nil {
		s.setState(StateDisconnected, "device not found")
		return fmt.Errorf("find device: %w", err)
	}

	p, err := s.cfg.Adapter.Connect(ctx, s.cfg.Address)
	if err != nil {
		s.setState(StateDisconnected, "connect failed")
		return fmt.Errorf("connect: %w", err)
	}
	p.OnDisconnect(func() {
		s.invalidate("link lost")
	})
	s.mu.Lock()
	s.peripheral = p
	s.mu.Unlock()
	s.setState(StateConnected, "")

	// Encryption state does not persist across the link layer; re-pair
	// on every fresh connection even if previously bonded.
	s.setState(StatePairing, "")
	if err := p.Pair(ctx); err != nil {
		s.teardown("pairing failed")
		return fmt.Errorf("%w: pair: %w", ErrAuthenticationFailed, err)
	}

	s.setState(StateAuthenticating, "")
	authID, firstPairing, err := s.authenticationID(ctx, p)
	if err != nil {
		s.teardown("authentication failed")
		return err
	}
	if err := p.Write(ctx, wire.UUIDFactoryResetID, wire.EncodeFactoryResetID(authID), true); err != nil {
		// No separate acceptance signal exists; a clean write is
		// success, a failed one is not distinguishable from a reset
		// device.
		s.teardown("authentication failed")
		return fmt.Errorf("%w: write authentication id: %w", ErrAuthenticationFailed, err)
	}

	identity := Identity{
		Address:        s.cfg.Address,
		FactoryResetID: authID,
		FirstPairing:   firstPairing,
	}
	s.readIdentity(ctx, p, &identity)

	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
	s.setState(StateReady, "")
	return nil
}

// authenticationID resolves the id to present to the device: the stored
// credential, or on first pairing the device's own factory reset id,
// which is then persisted.
func (s *Session) authenticationID(ctx context.Context, p transport.Peripheral) (id uint32, firstPairing bool, err error) {
	cred, err := s.cfg.Credentials.Load(s.cfg.Address)
	if err != nil {
		return 0, false, fmt.Errorf("load credential: %w", err)
	}
	if cred != nil {
		return cred.FactoryResetID, false, nil
	}

	if s.cfg.Logger != nil {
		s.cfg.Logger.Info("no stored authentication id, reading factory reset id",
			"address", s.cfg.Address)
	}
	data, err := p.Read(ctx, wire.UUIDFactoryResetID)
	if err != nil {
		return 0, false, fmt.Errorf("%w: read factory reset id: %w", ErrAuthenticationFailed, err)
	}
	id, err = wire.DecodeFactoryResetID(data)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	if err := s.cfg.Credentials.Save(s.cfg.Address, &persistence.Credential{FactoryResetID: id}); err != nil {
		return 0, false, fmt.Errorf("save credential: %w", err)
	}
	return id, true, nil
}

// readIdentity fills the secondary identity fields. Best effort:
// failures here do not abort the transition to Ready.
func (s *Session) readIdentity(ctx context.Context, p transport.Peripheral, identity *Identity) {
	if data, err := p.Read(ctx, wire.UUIDModelNumber); err == nil {
		identity.Model, _ = wire.DecodeModelNumber(data)
	} else if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("model number read failed", "address", s.cfg.Address, "err", err)
	}
	if data, err := p.Read(ctx, wire.UUIDDeviceName); err == nil {
		identity.DeviceName, _ = wire.DecodeDeviceName(data)
	}
	if data, err := p.Read(ctx, wire.UUIDSoftwareRevision); err == nil {
		identity.SoftwareRevision, _ = wire.DecodeSoftwareRevision(data)
	}
	if data, err := p.Read(ctx, wire.UUIDHardwareRevision); err == nil {
		identity.HardwareRevision, _ = wire.DecodeHardwareRevision(data)
	}
}

// Exec runs fn with exclusive use of the transport, lazily connecting
// first. A transport error from fn invalidates the session.
func (s *Session) Exec(ctx context.Context, fn func(ctx context.Context, p transport.Peripheral) error) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.EnsureReady(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	p := s.peripheral
	s.mu.Unlock()
	if p == nil {
		return fmt.Errorf("%w: link lost", ErrNotReady)
	}

	err := fn(ctx, p)
	if transport.IsTransportError(err) {
		s.invalidate("transport error")
	}
	return err
}

// ReadCharacteristic reads a plain (non-split) characteristic.
func (s *Session) ReadCharacteristic(ctx context.Context, characteristic string) ([]byte, error) {
	var out []byte
	err := s.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		data, err := p.Read(ctx, characteristic)
		if err != nil {
			return &transport.TransportError{Op: "read", Characteristic: characteristic, Err: err}
		}
		out = data
		return nil
	})
	return out, err
}

// WriteCharacteristic writes a plain (non-split) characteristic.
func (s *Session) WriteCharacteristic(ctx context.Context, characteristic string, data []byte, withResponse bool) error {
	return s.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		if err := p.Write(ctx, characteristic, data, withResponse); err != nil {
			return &transport.TransportError{Op: "write", Characteristic: characteristic, Err: err}
		}
		return nil
	})
}

// ReadSplit reads and reassembles a split characteristic.
func (s *Session) ReadSplit(ctx context.Context, characteristic string) ([]byte, error) {
	var out []byte
	err := s.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		data, err := s.splitRead(ctx, p, characteristic)
		if err != nil {
			return err
		}
		out = data
		return nil
	})
	return out, err
}

// WriteSplit writes a split characteristic as two frames.
func (s *Session) WriteSplit(ctx context.Context, characteristic string, payload []byte) error {
	return s.Exec(ctx, func(ctx context.Context, p transport.Peripheral) error {
		return s.splitWrite(ctx, p, characteristic, payload)
	})
}

// splitRead performs a split read on an already-acquired peripheral.
// For use inside Exec callbacks that combine several operations.
func (s *Session) splitRead(ctx context.Context, p transport.Peripheral, characteristic string) ([]byte, error) {
	r := transport.NewSplitReader(p)
	r.SetLogger(s.plog, s.id, s.cfg.Address)
	return r.Read(ctx, characteristic)
}

// splitWrite performs a split write on an already-acquired peripheral.
func (s *Session) splitWrite(ctx context.Context, p transport.Peripheral, characteristic string, payload []byte) error {
	w := transport.NewSplitWriter(p)
	w.SetLogger(s.plog, s.id, s.cfg.Address)
	if s.cfg.SplitWriteDelay > 0 {
		w.SetDelay(s.cfg.SplitWriteDelay)
	}
	return w.Write(ctx, characteristic, payload)
}

// SplitRead performs a split read inside a compound Exec callback.
func (s *Session) SplitRead(ctx context.Context, p transport.Peripheral, characteristic string) ([]byte, error) {
	return s.splitRead(ctx, p, characteristic)
}

// SplitWrite performs a split write inside a compound Exec callback.
func (s *Session) SplitWrite(ctx context.Context, p transport.Peripheral, characteristic string, payload []byte) error {
	return s.splitWrite(ctx, p, characteristic, payload)
}

// invalidate drops the session back to Disconnected after a link loss
// or transport error. The next operation reconnects lazily.
func (s *Session) invalidate(reason string) {
	s.teardown(reason)
}

// teardown closes the peripheral, if any, and lands in Disconnected.
func (s *Session) teardown(reason string) {
	s.mu.Lock()
	p := s.peripheral
	s.peripheral = nil
	s.mu.Unlock()

	if p != nil {
		_ = p.Disconnect()
	}
	s.setState(StateDisconnected, reason)
}

// Close permanently tears the session down. The session must not be
// reused afterwards.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	p := s.peripheral
	s.peripheral = nil
	s.mu.Unlock()

	if p != nil {
		_ = p.Disconnect()
	}
	s.setState(StateDisconnected, "closed")
	return nil
}

// setState records a transition and notifies listeners outside the
// lock. No-op when the state is unchanged.
func (s *Session) setState(newState State, reason string) {
	s.mu.Lock()
	oldState := s.state
	if oldState == newState {
		s.mu.Unlock()
		return
	}
	s.state = newState
	s.mu.Unlock()

	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("session state change",
			"address", s.cfg.Address,
			"old", oldState.String(),
			"new", newState.String(),
			"reason", reason)
	}
	s.plog.Log(log.Event{
		Timestamp:     time.Now(),
		SessionID:     s.id,
		Layer:         log.LayerSession,
		Category:      log.CategoryState,
		DeviceAddress: s.cfg.Address,
		StateChange: &log.StateChangeEvent{
			OldState: oldState.String(),
			NewState: newState.String(),
			Reason:   reason,
		},
	})

	s.cbMu.Lock()
	fn := s.onStateChange
	s.cbMu.Unlock()
	if fn != nil {
		fn(oldState, newState)
	}
}
