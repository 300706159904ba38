//go:build !windows

// Package shutdown maps platform stop signals onto one channel so the
// session can finish its open utterance before exiting.
package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

// Notify forwards Ctrl+C and service-manager termination to ch.
func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
}
