package transport

import (
	"bytes"
	"context"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/log"
)

// Split transfer constants.
const (
	// FinalFlag is the header bit marking the last frame of a transfer.
	FinalFlag = 0x40

	// WriteSettleDelay is the pause between the two frames of a split
	// write. The device needs this to process the first frame; writing
	// back to back corrupts the transfer.
	WriteSettleDelay = 100 * time.Millisecond

	// writeFrameCount is the fixed number of frames per split write.
	// The firmware expects exactly two regardless of payload size.
	writeFrameCount = 2
)

// SplitReader reassembles a characteristic value spread across split
// frames.
type SplitReader struct {
	p Peripheral

	// Logging support (optional)
	logger    log.Logger
	sessionID string
	address   string
}

// NewSplitReader creates a split reader over p.
func NewSplitReader(p Peripheral) *SplitReader {
	return &SplitReader{p: p}
}

// SetLogger configures protocol event logging for this reader.
// Pass nil to disable logging.
func (r *SplitReader) SetLogger(logger log.Logger, sessionID, address string) {
	r.logger = logger
	r.sessionID = sessionID
	r.address = address
}

// Read reads the characteristic repeatedly until a frame carries the
// final flag or the device returns an empty or header-only frame, then
// returns the assembled payload with trailing zero padding stripped.
func (r *SplitReader) Read(ctx context.Context, characteristic string) ([]byte, error) {
	var combined []byte

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frame, err := r.p.Read(ctx, characteristic)
		if err != nil {
			return nil, linkErr("read", characteristic, err)
		}
		if len(frame) == 0 {
			break
		}

		header := frame[0]
		payload := frame[1:]
		combined = append(combined, payload...)

		final := header&FinalFlag != 0
		r.logFrame(characteristic, frame, final, log.DirectionIn)

		// A header-only frame without the final flag means the device has
		// nothing more to send.
		if final || len(payload) == 0 {
			break
		}
	}

	return bytes.TrimRight(combined, "\x00"), nil
}

// logFrame emits a transport-layer frame event.
func (r *SplitReader) logFrame(characteristic string, frame []byte, final bool, dir log.Direction) {
	if r.logger == nil {
		return
	}
	r.logger.Log(log.Event{
		Timestamp:      time.Now(),
		SessionID:      r.sessionID,
		Direction:      dir,
		Layer:          log.LayerTransport,
		Category:       log.CategoryFrame,
		DeviceAddress:  r.address,
		Characteristic: characteristic,
		Frame: &log.FrameEvent{
			Size:  len(frame),
			Data:  append([]byte(nil), frame...),
			Final: final,
		},
	})
}

// SplitWriter writes a characteristic value as exactly two split frames.
type SplitWriter struct {
	p     Peripheral
	delay time.Duration

	// Logging support (optional)
	logger    log.Logger
	sessionID string
	address   string
}

// NewSplitWriter creates a split writer over p with the standard settle
// delay.
func NewSplitWriter(p Peripheral) *SplitWriter {
	return &SplitWriter{p: p, delay: WriteSettleDelay}
}

// SetDelay overrides the inter-frame settle delay. Intended for tests;
// real devices need the standard delay.
func (w *SplitWriter) SetDelay(d time.Duration) {
	w.delay = d
}

// SetLogger configures protocol event logging for this writer.
// Pass nil to disable logging.
func (w *SplitWriter) SetLogger(logger log.Logger, sessionID, address string) {
	w.logger = logger
	w.sessionID = sessionID
	w.address = address
}

// Write splits payload into two frames: the first carries the ceil half
// with a zero header, the second carries the remainder with the final
// flag. Both frames are written with response, separated by the settle
// delay.
func (w *SplitWriter) Write(ctx context.Context, characteristic string, payload []byte) error {
	first := (len(payload) + 1) / 2

	frames := [writeFrameCount][]byte{
		append([]byte{0x00}, payload[:first]...),
		append([]byte{FinalFlag}, payload[first:]...),
	}

	for i, frame := range frames {
		if i > 0 {
			if err := sleepCtx(ctx, w.delay); err != nil {
				return err
			}
		}
		if err := w.p.Write(ctx, characteristic, frame, true); err != nil {
			return linkErr("write", characteristic, err)
		}
		w.logFrame(characteristic, frame, frame[0]&FinalFlag != 0)
	}

	return nil
}

// logFrame emits a transport-layer frame event.
func (w *SplitWriter) logFrame(characteristic string, frame []byte, final bool) {
	if w.logger == nil {
		return
	}
	w.logger.Log(log.Event{
		Timestamp:      time.Now(),
		SessionID:      w.sessionID,
		Direction:      log.DirectionOut,
		Layer:          log.LayerTransport,
		Category:       log.CategoryFrame,
		DeviceAddress:  w.address,
		Characteristic: characteristic,
		Frame: &log.FrameEvent{
			Size:  len(frame),
			Data:  append([]byte(nil), frame...),
			Final: final,
		},
	})
}

// sleepCtx sleeps for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
