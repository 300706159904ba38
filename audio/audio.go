// Package audio acquires mono float32 sample blocks from a capture
// device. Platform backends (PulseAudio on linux, miniaudio elsewhere)
// hide behind the Context/CaptureDevice interfaces; the callback runs
// on the audio thread and must do nothing beyond handing the block off.
package audio

import "errors"

// ErrNoInputDevice reports that no usable capture device exists. It is
// fatal to a session and must surface before any state transition.
var ErrNoInputDevice = errors.New("no audio input device available")

// DataCallback receives one block of mono samples per hardware
// callback. The block is owned by the receiver; the backend never
// touches it again. frameCount is the number of samples in the block.
type DataCallback func(samples []float32, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
	DeviceName() string
}
