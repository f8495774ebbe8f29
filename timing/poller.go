package timing

import (
	"context"
	"time"
)

// A Yielder suspends the caller until the next tick.
type Yielder interface {
	// Yield blocks until the next tick. It returns the context's error if the
	// context ends first.
	Yield(ctx context.Context) error
}

// A Poller is a Yielder that ticks at a fixed frequency on the wall clock.
//
// A tick that runs late does not cause a burst of catch-up ticks; the
// schedule restarts from the late tick.
type Poller struct {
	freq  Freq
	next  time.Time
	ticks uint64
	now   func() time.Time
}

// NewPoller creates a poller ticking at freq. It panics if freq is not
// positive.
func NewPoller(freq Freq) *Poller {
	_ = freq.Period()

	return &Poller{
		freq: freq,
		now:  time.Now,
	}
}

// Freq returns the tick frequency.
func (p *Poller) Freq() Freq {
	return p.freq
}

// Ticks returns the number of ticks completed so far.
func (p *Poller) Ticks() uint64 {
	return p.ticks
}

// Yield implements Yielder.
func (p *Poller) Yield(ctx context.Context) error {
	now := p.now()
	if p.next.Before(now) {
		p.next = now
	}

	p.next = p.next.Add(p.freq.Period())

	t := time.NewTimer(p.next.Sub(now))
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		p.ticks++
		return nil
	}
}

// Retry calls f once per tick until it succeeds. There is no upper bound on
// the number of attempts; only the end of ctx stops it.
func Retry[T any](ctx context.Context, y Yielder, f func() (T, bool)) (T, error) {
	for {
		if v, ok := f(); ok {
			return v, nil
		}

		if err := y.Yield(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
}
