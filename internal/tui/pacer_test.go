package tui

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerZeroDelayDoesNotWait(t *testing.T) {
	t.Parallel()
	p := NewPacer(quartz.NewMock(t), 0)
	assert.NoError(t, p.Wait(context.Background()))

	var nilPacer *Pacer
	assert.NoError(t, nilPacer.Wait(context.Background()))
	assert.Zero(t, nilPacer.Delay())
}

func TestPacerWaitsForDelay(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	trap := clock.Trap().NewTimer("pacer")
	defer trap.Close()

	p := NewPacer(clock, 500*time.Millisecond)
	done := make(chan error, 1)
	go func() { done <- p.Wait(ctx) }()

	call := trap.MustWait(ctx)
	call.MustRelease(ctx)

	select {
	case <-done:
		t.Fatal("pacer returned before the delay elapsed")
	default:
	}

	clock.Advance(500 * time.Millisecond).MustWait(ctx)
	require.NoError(t, <-done)
}

func TestPacerHonoursCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPacer(quartz.NewMock(t), time.Hour)
	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}
