// Package coordinator caches the real time status characteristic so
// that several consumers polling the same device share one GATT read
// per time window.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// DefaultMaxAge is the cache window: a value younger than this is
// served without touching the device.
const DefaultMaxAge = 25 * time.Second

// SplitReader reads and reassembles one split characteristic.
// Satisfied by *session.Session.
type SplitReader interface {
	ReadSplit(ctx context.Context, characteristic string) ([]byte, error)
}

// Coordinator is a single-flight cache over the real time indication
// characteristic. Concurrent Get calls within one window share a single
// device read. Safe for concurrent use.
type Coordinator struct {
	reader SplitReader

	// mu covers the whole check-read-store sequence, which is what
	// collapses concurrent callers onto one read.
	mu        sync.Mutex
	cached    *wire.RealTimeStatus
	fetchedAt time.Time

	cbMu     sync.Mutex
	onUpdate func(*wire.RealTimeStatus)
}

// New creates a coordinator reading through r.
func New(r SplitReader) *Coordinator {
	return &Coordinator{reader: r}
}

// Get returns the real time status, reading from the device only when
// the cached value is older than DefaultMaxAge. The returned value is
// shared between callers and must not be mutated.
func (c *Coordinator) Get(ctx context.Context) (*wire.RealTimeStatus, error) {
	return c.GetMaxAge(ctx, DefaultMaxAge)
}

// GetMaxAge is Get with a caller-chosen freshness bound. maxAge <= 0
// forces a device read.
func (c *Coordinator) GetMaxAge(ctx context.Context, maxAge time.Duration) (*wire.RealTimeStatus, error) {
	c.mu.Lock()
	if c.cached != nil && maxAge > 0 && time.Since(c.fetchedAt) < maxAge {
		status := c.cached
		c.mu.Unlock()
		return status, nil
	}

	// Read while holding mu so that callers who raced us wait for this
	// result instead of issuing their own reads. A failure propagates
	// to this caller only; the cache stays empty and the next Get
	// retries.
	data, err := c.reader.ReadSplit(ctx, wire.UUIDRealTimeIndication)
	if err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("read real time status: %w", err)
	}
	status, err := wire.DecodeRealTimeStatus(data)
	if err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("decode real time status: %w", err)
	}
	c.cached = status
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	c.cbMu.Lock()
	fn := c.onUpdate
	c.cbMu.Unlock()
	if fn != nil {
		fn(status)
	}
	return status, nil
}

// Invalidate clears the cached value. The next Get performs a device
// read. Called on session invalidation.
func (c *Coordinator) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// OnUpdate registers a callback invoked after every successful device
// read. Cache hits do not fire it. The callback runs outside the
// coordinator's lock and may call Get.
func (c *Coordinator) OnUpdate(fn func(*wire.RealTimeStatus)) {
	c.cbMu.Lock()
	c.onUpdate = fn
	c.cbMu.Unlock()
}
