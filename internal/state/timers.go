package state

import (
	"sync"
	"time"
)

// TimerRegistry tracks delayed-action timers owned by one render
// session. Every timer registered here is cancelled when the session's
// tree unmounts, so a delayed action can never fire against a disposed
// runtime.
type TimerRegistry struct {
	mu     sync.Mutex
	nextID int
	timers map[int]*time.Timer
	closed bool
}

// NewTimerRegistry creates an empty registry.
func NewTimerRegistry() *TimerRegistry {
	return &TimerRegistry{timers: make(map[int]*time.Timer)}
}

// After schedules fn after d and returns a cancellation id. On a closed
// registry the call is a no-op returning 0.
func (tr *TimerRegistry) After(d time.Duration, fn func()) int {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if tr.closed {
		return 0
	}

	tr.nextID++
	id := tr.nextID
	tr.timers[id] = time.AfterFunc(d, func() {
		tr.mu.Lock()
		_, live := tr.timers[id]
		delete(tr.timers, id)
		closed := tr.closed
		tr.mu.Unlock()
		if live && !closed {
			fn()
		}
	})
	return id
}

// Cancel stops one pending timer. Unknown ids are ignored.
func (tr *TimerRegistry) Cancel(id int) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if t, ok := tr.timers[id]; ok {
		t.Stop()
		delete(tr.timers, id)
	}
}

// Pending returns the number of timers not yet fired or cancelled.
func (tr *TimerRegistry) Pending() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.timers)
}

// Close cancels everything and rejects future registrations.
func (tr *TimerRegistry) Close() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.closed = true
	for id, t := range tr.timers {
		t.Stop()
		delete(tr.timers, id)
	}
}
