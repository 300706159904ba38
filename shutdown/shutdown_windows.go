//go:build windows

package shutdown

import (
	"os"
	"os/signal"
)

// Notify forwards Ctrl+C to ch. SIGTERM does not exist on Windows.
func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt)
}
