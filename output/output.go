// Package output delivers recognized text to the focused application:
// clipboard write, a short settle delay, then a synthetic paste
// keystroke. The clipboard write is the load-bearing step; paste is
// best-effort and the text survives on the clipboard when it fails.
package output

import (
	"errors"
	"fmt"
	"time"
)

// DefaultSettle is how long to wait between the clipboard write and the
// paste keystroke. Clipboard managers need a moment to pick up the new
// content before the target application reads it.
const DefaultSettle = 50 * time.Millisecond

// ErrPaste marks a delivery where the clipboard write succeeded but the
// synthetic keystroke did not. Recoverable: the user can paste by hand.
var ErrPaste = errors.New("paste keystroke failed")

type Sink struct {
	Settle    time.Duration
	AutoPaste bool

	// Overridable in tests.
	copyFn  func(string) error
	pasteFn func() error
}

func New(autoPaste bool) *Sink {
	return &Sink{
		Settle:    DefaultSettle,
		AutoPaste: autoPaste,
		copyFn:    Copy,
		pasteFn:   Paste,
	}
}

// Deliver puts text on the clipboard and, when auto-paste is on, sends
// the platform paste chord to the focused window. A clipboard failure
// aborts delivery; a paste failure returns ErrPaste with the text
// already on the clipboard.
func (s *Sink) Deliver(text string) error {
	if err := s.copyFn(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	if !s.AutoPaste {
		return nil
	}
	time.Sleep(s.Settle)
	if err := s.pasteFn(); err != nil {
		return fmt.Errorf("%w: %v", ErrPaste, err)
	}
	return nil
}
