// Package whisper runs on-device speech recognition through the
// whisper.cpp Go bindings. Input is mono 16 kHz float32 PCM; output is
// the joined text of the decoded segments.
package whisper

import "errors"

// SampleRate is the only input rate the model accepts. Callers resample
// before handing audio to Transcribe.
const SampleRate = 16000

// ErrModelLoad marks a missing or unreadable model file. Fatal to the
// session; the fix is on the user's side.
var ErrModelLoad = errors.New("model load failed")

// Recognizer turns a finalized utterance into text. Implementations are
// not safe for concurrent use; the session worker serializes calls.
type Recognizer interface {
	// Transcribe decodes mono 16 kHz samples. lang is an ISO 639-1 code
	// or "auto" for detection. An error here is recoverable: the session
	// keeps listening.
	Transcribe(samples []float32, lang string) (string, error)
	Close() error
}
