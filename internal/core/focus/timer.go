// Package focus implements the pomodoro timer state machine.
package focus

import (
	"fmt"
	"time"
)

// Mode is the current timer period.
type Mode int

const (
	ModeFocus Mode = iota
	ModeShortBreak
	ModeLongBreak
)

// Title is the heading shown for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeShortBreak:
		return "SHORT BREAK"
	case ModeLongBreak:
		return "LONG BREAK"
	default:
		return "FOCUS TIME"
	}
}

// IsBreak reports whether m is one of the break modes.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Durations configures period lengths.
type Durations struct {
	Focus          time.Duration
	ShortBreak     time.Duration
	LongBreak      time.Duration
	LongBreakEvery int
}

// DefaultDurations is 25/5/15 with a long break after every fourth round.
func DefaultDurations() Durations {
	return Durations{
		Focus:          25 * time.Minute,
		ShortBreak:     5 * time.Minute,
		LongBreak:      15 * time.Minute,
		LongBreakEvery: 4,
	}
}

func (d Durations) of(m Mode) time.Duration {
	switch m {
	case ModeShortBreak:
		return d.ShortBreak
	case ModeLongBreak:
		return d.LongBreak
	default:
		return d.Focus
	}
}

// Timer is a pomodoro timer. It is not safe for concurrent use; the TUI
// drives it from its update loop.
type Timer struct {
	durations Durations
	mode      Mode
	remaining time.Duration
	running   bool
	completed int
}

// New returns a stopped timer at the start of a focus round.
func New(d Durations) *Timer {
	if d.LongBreakEvery < 1 {
		d.LongBreakEvery = 1
	}
	t := &Timer{durations: d}
	t.Reset()
	return t
}

func (t *Timer) Mode() Mode               { return t.mode }
func (t *Timer) Running() bool            { return t.running }
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Completed is the number of focus rounds finished since the last Reset.
func (t *Timer) Completed() int { return t.completed }

// Toggle starts or pauses the countdown.
func (t *Timer) Toggle() {
	t.running = !t.running
}

// Reset stops the timer and returns to a full focus round with no completed
// rounds.
func (t *Timer) Reset() {
	t.mode = ModeFocus
	t.remaining = t.durations.Focus
	t.running = false
	t.completed = 0
}

// Tick advances a running timer by elapsed. It returns true when the
// current period ran out; the timer then stops at the start of the next
// period.
func (t *Timer) Tick(elapsed time.Duration) bool {
	if !t.running {
		return false
	}

	t.remaining -= elapsed
	if t.remaining > 0 {
		return false
	}

	t.advance()
	return true
}

func (t *Timer) advance() {
	next := ModeFocus
	if t.mode == ModeFocus {
		t.completed++
		next = ModeShortBreak
		if t.completed%t.durations.LongBreakEvery == 0 {
			next = ModeLongBreak
		}
	}

	t.mode = next
	t.remaining = t.durations.of(next)
	t.running = false
}

// Title is the heading for the current mode.
func (t *Timer) Title() string { return t.mode.Title() }

// Display renders the remaining time as MM:SS, rounding partial seconds up.
func (t *Timer) Display() string {
	secs := int((t.remaining + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Progress is the elapsed fraction of the current period in [0, 1].
func (t *Timer) Progress() float64 {
	total := t.durations.of(t.mode)
	if total <= 0 {
		return 0
	}
	p := 1 - float64(t.remaining)/float64(total)
	return min(max(p, 0), 1)
}
