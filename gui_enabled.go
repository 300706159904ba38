//go:build gui

package main

import (
	"runtime"
	"time"

	"murmur/gui"
)

// guiSink adapts the overlay to the session event interface.
type guiSink struct {
	app *gui.App
}

func (g guiSink) StateChanged(s State) {
	g.app.StateChanged(gui.Phase(s.Phase), s.Text, s.Err)
}

func (g guiSink) DoneCountdown(remaining time.Duration) {
	g.app.DoneCountdown(remaining)
}

// pollLevel feeds the overlay meter from the level gauge on a tick, the
// same way the TUI does. The audio callback never touches the overlay.
func pollLevel(app *gui.App) {
	t := time.NewTicker(60 * time.Millisecond)
	defer t.Stop()
	for range t.C {
		if s := activeSession.Load(); s != nil {
			app.AudioLevel(s.Level())
		}
	}
}

// initGUI hands the main thread to Fyne and runs the session in the
// background. The overlay quits itself shortly after Result or Error.
func initGUI() {
	runtime.LockOSThread()
	app := gui.NewApp(
		func() { run() },
		func() {
			if s := activeSession.Load(); s != nil {
				s.Cancel()
			}
		},
	)
	sink = guiSink{app: app}
	guiMode = true
	go pollLevel(app)
	gui.Run(app)
}
