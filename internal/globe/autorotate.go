package globe

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the auto-rotation tick interval
const DefaultInterval = 200 * time.Millisecond

// AutoRotator is a cancellable periodic task. Its ticker goroutine never runs
// the tick itself: it posts the tick onto the Loop so that it executes on the
// goroutine that owns the globe state.
type AutoRotator struct {
	loop *Loop
	tick func()

	mu       sync.Mutex
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}

	// gen is bumped on every Stop; ticks queued by an older run are ignored
	gen atomic.Uint64
}

// NewAutoRotator creates a stopped auto-rotator that posts tick onto loop
func NewAutoRotator(loop *Loop, interval time.Duration, tick func()) *AutoRotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &AutoRotator{
		loop:     loop,
		tick:     tick,
		interval: interval,
	}
}

// Start begins ticking until Stop is called or ctx is cancelled.
// Starting a running rotator is a no-op.
func (a *AutoRotator) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.startLocked(ctx)
}

func (a *AutoRotator) startLocked(ctx context.Context) {
	if a.runningLocked() {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done

	go a.run(ctx, a.interval, a.gen.Load(), done)
}

func (a *AutoRotator) run(ctx context.Context, interval time.Duration, gen uint64, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.loop.Post(func() {
				if a.gen.Load() == gen {
					a.tick()
				}
			})
		}
	}
}

// Stop cancels the ticker and waits for its goroutine to exit. Ticks that
// were queued but not yet run are discarded, so once Stop returns the
// rotator causes no further rotation.
func (a *AutoRotator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *AutoRotator) stopLocked() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	<-a.done
	a.gen.Add(1)
	a.cancel = nil
	a.done = nil
}

// Running reports whether the rotator is ticking
func (a *AutoRotator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runningLocked()
}

// runningLocked reports whether the ticker goroutine is alive. A run that
// ended because its parent context was cancelled is cleared here, so the
// rotator can be started again.
func (a *AutoRotator) runningLocked() bool {
	if a.done == nil {
		return false
	}
	select {
	case <-a.done:
		a.stopLocked()
		return false
	default:
		return true
	}
}

// Interval returns the current tick interval
func (a *AutoRotator) Interval() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interval
}

// SetInterval changes the tick interval, restarting the ticker if running
func (a *AutoRotator) SetInterval(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("auto-rotate interval must be positive, got %v", d)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.interval = d
	if a.runningLocked() {
		a.stopLocked()
		a.startLocked(ctx)
	}
	return nil
}
