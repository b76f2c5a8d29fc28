// Package timer is the countdown primitive every spawner, lifetime and
// attack cadence in the simulation is built on.
package timer

import "time"

// Mode selects what happens when a timer completes.
type Mode uint8

const (
	// Once completes a single time and stays finished.
	Once Mode = iota
	// Repeating wraps around and completes again every period.
	Repeating
)

// Timer advances by host-supplied elapsed time and reports completion edges.
//
// A Repeating timer completes at most once per Advance. The remainder after
// the last whole period is carried into the next period; any further whole
// periods covered by the same Advance are dropped.
type Timer struct {
	duration     time.Duration
	elapsed      time.Duration
	mode         Mode
	finished     bool
	justFinished bool
	times        int
}

// New creates a timer. A non-positive duration is a programmer error;
// archetype and config validation reject it before timers are built.
func New(d time.Duration, mode Mode) *Timer {
	return &Timer{duration: d, mode: mode}
}

// FromSeconds is New for float second durations.
func FromSeconds(s float64, mode Mode) *Timer {
	return New(time.Duration(s*float64(time.Second)), mode)
}

// Advance moves the timer forward by dt.
func (t *Timer) Advance(dt time.Duration) {
	t.justFinished = false
	if dt <= 0 {
		return
	}

	switch t.mode {
	case Once:
		if t.finished {
			return
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.finished = true
			t.justFinished = true
			t.times++
		}
	case Repeating:
		t.finished = false
		t.elapsed += dt
		if t.elapsed >= t.duration {
			if t.duration > 0 {
				t.elapsed %= t.duration
			} else {
				t.elapsed = 0
			}
			t.finished = true
			t.justFinished = true
			t.times++
		}
	}
}

// JustFinished is true only for the Advance call that crossed completion.
func (t *Timer) JustFinished() bool { return t.justFinished }

// Finished is true once completed. It stays true for Once timers; for
// Repeating timers it mirrors JustFinished.
func (t *Timer) Finished() bool { return t.finished }

// TimesFinished counts completions since construction or Reset.
func (t *Timer) TimesFinished() int { return t.times }

func (t *Timer) Elapsed() time.Duration  { return t.elapsed }
func (t *Timer) Duration() time.Duration { return t.duration }
func (t *Timer) Mode() Mode              { return t.mode }

// Remaining is the time left until the next completion.
func (t *Timer) Remaining() time.Duration {
	return t.duration - t.elapsed
}

// Reset rewinds the timer to zero elapsed with no completions.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = false
	t.times = 0
}
