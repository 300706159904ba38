//go:build windows

package doctor

import (
	"os"
	"os/signal"
)

// resetTerminal is a no-op; the console host manages its own modes.
func resetTerminal() {}

// setupInterruptHandler exits cleanly on Ctrl+C mid-check, which would
// otherwise leave a capture device running.
func setupInterruptHandler() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		println("\nInterrupted")
		os.Exit(1)
	}()
}
