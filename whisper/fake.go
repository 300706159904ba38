package whisper

import "fmt"

// FakeRecognizer returns scripted results in order, repeating the last
// one when the script runs out.
type FakeRecognizer struct {
	Script []string
	Err    error
	Calls  int
	Langs  []string
}

func NewFake(texts ...string) *FakeRecognizer {
	return &FakeRecognizer{Script: texts}
}

func (f *FakeRecognizer) Transcribe(samples []float32, lang string) (string, error) {
	f.Calls++
	f.Langs = append(f.Langs, lang)
	if f.Err != nil {
		return "", fmt.Errorf("fake recognizer: %w", f.Err)
	}
	if len(f.Script) == 0 {
		return "", nil
	}
	i := f.Calls - 1
	if i >= len(f.Script) {
		i = len(f.Script) - 1
	}
	return f.Script[i], nil
}

func (f *FakeRecognizer) Close() error { return nil }
