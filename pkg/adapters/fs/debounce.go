package fs

import (
	"sync"
	"time"

	"github.com/aretw0/margin/pkg/core"
)

// debouncer coalesces bursts of filesystem events for the same note (an
// atomic save touches the sidecar and the note back to back) into a single
// emitted event after a quiet period.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: map[string]*time.Timer{},
	}
}

// add schedules emit for the event after the quiet period, resetting any
// pending timer for the same note+type.
func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := string(e.Type) + ":" + e.ID
	if t, ok := d.timers[key]; ok && t.Stop() {
		// Reset: the pending timer never ran, so release its wait slot.
		d.wg.Done()
	}

	d.wg.Add(1)
	d.timers[key] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			emit(e)
		}
	})
}

// stopAndWait refuses new events and waits for in-flight timers to drain,
// up to the given timeout. Safe to call once during worker shutdown.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
