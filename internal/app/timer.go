package app

import (
	"sync"
	"time"
)

// PhaseTimer is a per-room countdown. Starting a new countdown cancels the
// previous one; a generation counter guards against a canceled instance's
// pending tick firing after a restart within the same scheduling tick, which
// a bare nil check would miss.
type PhaseTimer struct {
	mu          sync.Mutex
	gen         int
	running     bool
	secondsLeft int
	interval    time.Duration
}

// NewPhaseTimer creates a timer ticking at the given real-time interval.
// Production uses one second; tests shrink it.
func NewPhaseTimer(interval time.Duration) *PhaseTimer {
	if interval <= 0 {
		interval = time.Second
	}
	return &PhaseTimer{interval: interval}
}

// Start begins a countdown of the given number of ticks, canceling any
// countdown already running. onTick receives each remaining value above
// zero; onExpire runs exactly once when the count reaches zero, unless the
// timer is stopped or restarted first. Both callbacks run on the timer
// goroutine with the started generation, and must re-verify state under
// their own locks via IsCurrent.
func (t *PhaseTimer) Start(seconds int, onTick func(gen, left int), onExpire func(gen int)) int {
	t.mu.Lock()
	t.gen++
	myGen := t.gen
	t.running = true
	t.secondsLeft = seconds
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for range ticker.C {
			t.mu.Lock()
			if t.gen != myGen {
				t.mu.Unlock()
				return
			}
			t.secondsLeft--
			left := t.secondsLeft
			if left <= 0 {
				t.running = false
			}
			t.mu.Unlock()

			if left > 0 {
				if onTick != nil {
					onTick(myGen, left)
				}
				continue
			}
			if onExpire != nil {
				onExpire(myGen)
			}
			return
		}
	}()

	return myGen
}

// Stop cancels a running countdown. Idempotent; a stopped timer never
// fires its callbacks.
func (t *PhaseTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.running = false
	t.secondsLeft = 0
}

// IsCurrent reports whether the given generation is still the live one.
// Expiry handlers call this under the session lock before acting.
func (t *PhaseTimer) IsCurrent(gen int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen == gen
}

// Running reports whether a countdown is in progress
func (t *PhaseTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// SecondsLeft returns the remaining count, zero if idle. Used to resync
// reconnecting players.
func (t *PhaseTimer) SecondsLeft() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return 0
	}
	return t.secondsLeft
}
