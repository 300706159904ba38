package main

import "time"

// EventSink abstracts the display layer so both the Bubble Tea TUI and
// the Fyne overlay can receive the same session events. Implementations
// must return quickly; the session worker calls these inline. Audio
// levels are not pushed: UIs poll the level gauge on their own tick.
type EventSink interface {
	StateChanged(s State)
	// DoneCountdown reports time left before the session closes on
	// silence; zero hides the hint.
	DoneCountdown(remaining time.Duration)
}

// NullSink is used when the UI polls the state cell instead of
// receiving pushes.
type NullSink struct{}

func (NullSink) StateChanged(State)          {}
func (NullSink) DoneCountdown(time.Duration) {}
