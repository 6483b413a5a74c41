package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/hibou/internal/logger"
)

// DefaultPollTimeout bounds how long the loop waits for a keypress each tick.
const DefaultPollTimeout = 100 * time.Millisecond

// Keys that end the loop. Ctrl+C only arrives as a byte when the terminal
// is in raw mode; otherwise it is a SIGINT and cancels the context.
const (
	QuitKey  byte = 'q'
	CtrlCKey byte = 0x03
)

// Renderer draws a Frame.
type Renderer interface {
	Render(Frame) error
}

// Poller waits up to timeout for a single keypress.
type Poller interface {
	Poll(timeout time.Duration) (key byte, ok bool, err error)
}

// Loop drives a running Sampler at a fixed rate on the calling goroutine.
type Loop struct {
	sampler     *Sampler
	renderer    Renderer
	poller      Poller
	period      time.Duration
	pollTimeout time.Duration
	log         logger.Logger
}

// NewLoop creates a loop ticking every period. A nil poller never reports
// keys; the loop then ends only through its context.
func NewLoop(s *Sampler, r Renderer, p Poller, period time.Duration, log logger.Logger) *Loop {
	if log == nil {
		log = logger.Noop()
	}
	pollTimeout := DefaultPollTimeout
	if pollTimeout > period {
		pollTimeout = period
	}
	return &Loop{
		sampler:     s,
		renderer:    r,
		poller:      p,
		period:      period,
		pollTimeout: pollTimeout,
		log:         log,
	}
}

// Run ticks until the quit key is pressed or ctx is cancelled, then stops
// the sampler. Both are normal exits and return nil. The sampler must
// already be running.
func (l *Loop) Run(ctx context.Context) error {
	if l.sampler.State() != StateRunning {
		return ErrNotRunning
	}
	defer l.sampler.Stop()

	for {
		start := time.Now()

		if ctx.Err() != nil {
			return nil
		}

		if l.quitRequested() {
			return nil
		}

		frame, err := l.sampler.Tick()
		if err != nil {
			return err
		}

		if err := l.renderer.Render(frame); err != nil {
			return fmt.Errorf("rendering frame %d: %w", frame.Seq, err)
		}

		remaining := l.period - time.Since(start)
		if remaining <= 0 {
			continue
		}

		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// quitRequested polls once for a key and reports whether it ends the loop.
// A poll error is logged and treated as "no key" so one bad read never
// stops the dashboard.
func (l *Loop) quitRequested() bool {
	if l.poller == nil {
		return false
	}
	key, ok, err := l.poller.Poll(l.pollTimeout)
	if err != nil {
		l.log.Warn("keyboard poll failed: %v", err)
		return false
	}
	return ok && (key == QuitKey || key == CtrlCKey)
}
