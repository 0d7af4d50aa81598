package tui

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// Pacer slows rendering down so a human can follow the deal.
type Pacer struct {
	clock quartz.Clock
	delay time.Duration
}

// NewPacer creates a pacer that waits delay between steps. A nil clock uses
// the wall clock.
func NewPacer(clock quartz.Clock, delay time.Duration) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Pacer{clock: clock, delay: delay}
}

// Wait blocks for the pacing delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil || p.delay <= 0 {
		return nil
	}
	timer := p.clock.NewTimer(p.delay, "pacer")
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Delay returns the configured pause.
func (p *Pacer) Delay() time.Duration {
	if p == nil {
		return 0
	}
	return p.delay
}
