package main

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	// RecordRate is the capture rate; the engine rate lives in the
	// whisper package. Capture at 48 kHz and downsample rather than
	// asking the device for 16 kHz directly, which many devices fake
	// badly.
	RecordRate = 48000

	// SilenceThreshold is the RMS level separating speech from silence.
	// Fixed on purpose: an adaptive floor made endpointing behavior
	// depend on room noise history and was impossible to reason about.
	SilenceThreshold = 0.015
)

// Config carries every tunable of a session. Built once from flags and
// defaults, then passed by value into constructors.
type Config struct {
	ModelPath string
	Lang      string
	Device    string

	SilenceDuration   time.Duration
	SpeechMinDuration time.Duration
	MaxUtterance      time.Duration
	DoneTimeout       time.Duration

	AutoPaste bool
	Notes     bool
	Archive   bool

	// Duration caps a listen-mode session; 0 means until silence or
	// cancel.
	Duration time.Duration
}

func DefaultConfig() Config {
	return Config{
		ModelPath:         DefaultModelPath(),
		Lang:              "auto",
		SilenceDuration:   2500 * time.Millisecond,
		SpeechMinDuration: 500 * time.Millisecond,
		MaxUtterance:      120 * time.Second,
		DoneTimeout:       5 * time.Second,
		AutoPaste:         true,
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	case "windows":
		if d := os.Getenv("LOCALAPPDATA"); d != "" {
			return d
		}
		return filepath.Join(home, "AppData", "Local")
	default:
		if d := os.Getenv("XDG_DATA_HOME"); d != "" {
			return d
		}
		return filepath.Join(home, ".local", "share")
	}
}

func ModelsDir() string {
	return filepath.Join(dataDir(), "murmur", "models")
}

func DefaultModelPath() string {
	return filepath.Join(ModelsDir(), "ggml-medium.bin")
}

func NotesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "murmur"
	}
	return filepath.Join(home, "murmur")
}

func ArchiveDir() string {
	return filepath.Join(dataDir(), "murmur", "archive")
}
