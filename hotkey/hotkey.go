// Package hotkey watches for the global stop shortcut
// (Ctrl+Shift+Space). The overlay never takes keyboard focus, so a
// global chord is the only way to end a session from the keyboard.
package hotkey

type Hotkey interface {
	Register() error
	Unregister()
	// Pressed fires once per chord press. The channel has capacity 1;
	// presses during an unconsumed event are coalesced.
	Pressed() <-chan struct{}
}
