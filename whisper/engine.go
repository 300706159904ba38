package whisper

import (
	"fmt"
	"io"
	"os"
	"strings"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"murmur/dsp"
)

// Engine holds a loaded whisper model for the life of the process.
// Loading takes seconds for the larger models, so it happens once, up
// front, before any audio is captured.
type Engine struct {
	model whisper.Model
	path  string
}

// Load reads the ggml model at path. A missing or unreadable file is
// fatal to the session.
func Load(path string) (*Engine, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrModelLoad, path, err)
	}
	model, err := whisper.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrModelLoad, path, err)
	}
	return &Engine{model: model, path: path}, nil
}

func (e *Engine) ModelPath() string { return e.path }

func (e *Engine) Close() error {
	if e.model != nil {
		return e.model.Close()
	}
	return nil
}

// Transcribe decodes one utterance. The samples are normalized and
// silence-trimmed first so the model sees speech at a consistent level
// rather than the endpointer's quiet tail.
func (e *Engine) Transcribe(samples []float32, lang string) (string, error) {
	dsp.Normalize(samples)
	samples = dsp.TrimSilence(samples, SampleRate)
	if len(samples) == 0 {
		return "", nil
	}

	ctx, err := e.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("whisper context: %w", err)
	}
	if lang != "" {
		if err := ctx.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("language %q: %w", lang, err)
		}
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper process: %w", err)
	}

	var parts []string
	for {
		seg, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("whisper segment: %w", err)
		}
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}
