// Package loop drives a game session frame by frame with an explicit stop handle.
package loop

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxDT caps a single frame delta, in nominal frames, after a stall.
const DefaultMaxDT = 3.0

// StepFunc advances a session by dt nominal frames (1.0 at the target rate).
type StepFunc func(dt float64)

// Loop runs a StepFunc on a ticker in its own goroutine. At most one step is
// in flight at a time and Stop waits for it to return.
type Loop struct {
	tickRate int
	maxDT    float64
	step     StepFunc

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a stopped loop targeting tickRate frames per second.
func New(tickRate int, step StepFunc) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Loop{
		tickRate: tickRate,
		maxDT:    DefaultMaxDT,
		step:     step,
	}
}

// SetMaxDT changes the per-frame delta cap. Non-positive values disable it.
func (l *Loop) SetMaxDT(maxDT float64) {
	l.mu.Lock()
	l.maxDT = maxDT
	l.mu.Unlock()
}

// Interval returns the nominal frame duration.
func (l *Loop) Interval() time.Duration {
	return time.Second / time.Duration(l.tickRate)
}

// Start begins ticking. It returns false if the loop is already running.
// The loop also stops when ctx is cancelled.
func (l *Loop) Start(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.running = true

	go l.run(ctx, l.done, l.maxDT)
	return true
}

// Stop cancels the loop and waits for the in-flight step to finish.
// It is safe to call on a stopped loop.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	cancel, done := l.cancel, l.done
	l.running = false
	l.mu.Unlock()

	cancel()
	<-done
}

// Running reports whether the loop is ticking.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) run(ctx context.Context, done chan struct{}, maxDT float64) {
	defer close(done)

	interval := l.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := FrameDelta(last, now, interval, maxDT)
			last = now
			// A Stop racing with the tick wins.
			if ctx.Err() != nil {
				return
			}
			l.step(dt)
		}
	}
}

// FrameDelta converts the wall time between two frames into nominal frames,
// capped at maxDT. A zero or backwards clock yields a single frame.
func FrameDelta(prev, now time.Time, interval time.Duration, maxDT float64) float64 {
	if prev.IsZero() || interval <= 0 {
		return 1
	}
	elapsed := now.Sub(prev)
	if elapsed <= 0 {
		return 1
	}
	dt := float64(elapsed) / float64(interval)
	if maxDT > 0 && dt > maxDT {
		dt = maxDT
	}
	return dt
}
