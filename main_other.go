//go:build !linux

package main

import (
	"os"
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	// The hotkey event loop and the GUI both require the main OS thread.
	runtime.LockOSThread()
}

func main() {
	initCrashLog()
	for _, arg := range os.Args[1:] {
		if arg == "-gui" || arg == "--gui" {
			initGUI()
			return
		}
	}
	mainthread.Init(run)
}
