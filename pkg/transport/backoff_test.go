package transport

import (
	"errors"
	"testing"
	"time"
)

func TestBackoffProgression(t *testing.T) {
	b := NewBackoffWithConfig(BackoffConfig{
		Initial:    time.Second,
		Max:        8 * time.Second,
		Multiplier: 2,
		Jitter:     0, // deterministic
	})

	want := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		8 * time.Second, // capped
	}
	for i, w := range want {
		if got := b.Next(); got != w {
			t.Errorf("Next() #%d = %v, want %v", i, got, w)
		}
	}
	if b.Attempts() != len(want) {
		t.Errorf("Attempts = %d, want %d", b.Attempts(), len(want))
	}

	b.Reset()
	if got := b.Current(); got != time.Second {
		t.Errorf("Current after Reset = %v, want 1s", got)
	}
	if b.Attempts() != 0 {
		t.Errorf("Attempts after Reset = %d, want 0", b.Attempts())
	}
}

func TestBackoffJitterBounds(t *testing.T) {
	b := NewBackoff()
	for i := 0; i < 20; i++ {
		base := b.Current()
		d := b.Next()
		if d < base || d > base+time.Duration(float64(base)*JitterFactor) {
			t.Fatalf("jittered delay %v outside [%v, %v]", d, base, base+base/4)
		}
		if b.Current() > MaxBackoff {
			t.Fatalf("backoff exceeded max: %v", b.Current())
		}
	}
}

func TestBackoffConfigDefaults(t *testing.T) {
	b := NewBackoffWithConfig(BackoffConfig{})
	if b.Current() != InitialBackoff {
		t.Errorf("zero config initial = %v, want %v", b.Current(), InitialBackoff)
	}
}

func TestTransportErrorWrapping(t *testing.T) {
	inner := errors.New("link reset")
	err := linkErr("write", testChar, inner)

	if !errors.Is(err, inner) {
		t.Error("Unwrap lost the inner error")
	}
	if !IsTransportError(err) {
		t.Error("IsTransportError = false")
	}
	if IsTransportError(inner) {
		t.Error("bare error reported as TransportError")
	}
}
