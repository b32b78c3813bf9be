// Package debounce collapses bursts of keystrokes into single committed
// values, so a search box does not refetch the list on every character.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is how long input must stay quiet before it commits.
const DefaultWindow = 300 * time.Millisecond

// Input coalesces rapid Set calls into one commit. Each Set restarts the
// quiet window; commit fires with the latest value once a full window
// passes with no further Set. Commits fire on the timer's goroutine.
type Input struct {
	window time.Duration
	commit func(string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	seq     uint64
	has     bool
	stopped bool
}

// NewInput returns an input that calls commit after the quiet window.
// A non-positive window falls back to DefaultWindow.
func NewInput(window time.Duration, commit func(string)) *Input {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Input{window: window, commit: commit}
}

// Set records the latest value and restarts the quiet window.
func (in *Input) Set(value string) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.stopped {
		return
	}

	in.pending = value
	in.has = true
	in.seq++
	seq := in.seq

	if in.timer != nil {
		in.timer.Stop()
	}
	in.timer = time.AfterFunc(in.window, func() { in.fire(seq) })
}

// fire commits the pending value when the timer that called it is still
// the armed one. A timer superseded by a later Set finds a newer seq and
// does nothing, so a racing stale timer can never commit.
func (in *Input) fire(seq uint64) {
	in.mu.Lock()
	if in.stopped || !in.has || seq != in.seq {
		in.mu.Unlock()
		return
	}
	value := in.pending
	in.has = false
	in.mu.Unlock()

	in.commit(value)
}

// Flush commits the pending value now instead of waiting out the window.
// It is a no-op when nothing is pending. The commit runs on the caller's
// goroutine.
func (in *Input) Flush() {
	in.mu.Lock()
	if in.stopped || !in.has {
		in.mu.Unlock()
		return
	}
	if in.timer != nil {
		in.timer.Stop()
	}
	value := in.pending
	in.has = false
	in.seq++
	in.mu.Unlock()

	in.commit(value)
}

// Pending reports whether a value is waiting for its window to elapse.
func (in *Input) Pending() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.has
}

// Stop drops any pending value and prevents further commits. Safe to call
// more than once; an Input is not reusable after Stop.
func (in *Input) Stop() {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.stopped = true
	in.has = false
	if in.timer != nil {
		in.timer.Stop()
		in.timer = nil
	}
}
