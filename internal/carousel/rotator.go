// internal/carousel/rotator.go
package carousel

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Rotator fires tick once per interval until stopped. It knows nothing about
// carousel state; the owner hands it the advance transition.
type Rotator struct {
	clock    clockwork.Clock
	interval time.Duration
	tick     func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewRotator(clock clockwork.Clock, interval time.Duration, tick func()) *Rotator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Rotator{clock: clock, interval: interval, tick: tick}
}

// Start schedules the recurring tick. Calling Start on a running rotator is a no-op.
func (r *Rotator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return
	}
	r.startLocked()
}

// Stop cancels the schedule and waits until no tick can run any more.
// It must not be called from inside tick.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// Restart drops the current schedule and acquires a fresh one.
func (r *Rotator) Restart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.startLocked()
	slog.Debug("Carousel rotation re-subscribed", "interval", r.interval)
}

// RestartIfRunning re-subscribes only a running rotator. The check and the
// restart happen under one lock, so a concurrent Stop either wins and the
// rotator stays stopped, or runs after the restart and stops the new schedule.
func (r *Rotator) RestartIfRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop == nil {
		return false
	}
	r.stopLocked()
	r.startLocked()
	slog.Debug("Carousel rotation re-subscribed", "interval", r.interval)
	return true
}

func (r *Rotator) startLocked() {
	// The ticker is acquired here, not in the goroutine, so that the schedule
	// exists by the time Start returns.
	ticker := r.clock.NewTicker(r.interval)
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop, r.done = stop, done

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				r.tick()
			}
		}
	}()
}

func (r *Rotator) stopLocked() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop, r.done = nil, nil
}

func (r *Rotator) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

func (r *Rotator) Interval() time.Duration {
	return r.interval
}
