//go:build !windows

package doctor

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// resetTerminal undoes any raw-mode state a crashed previous run left
// behind; the checks rely on normal line-buffered input.
func resetTerminal() {
	exec.Command("stty", "sane").Run()
}

// setupInterruptHandler exits cleanly on Ctrl+C mid-check, which would
// otherwise leave a capture device running.
func setupInterruptHandler() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		println("\nInterrupted")
		os.Exit(1)
	}()
}
