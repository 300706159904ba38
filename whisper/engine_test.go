package whisper

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadMissingModel(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "ggml-nope.bin"))
	if !errors.Is(err, ErrModelLoad) {
		t.Fatalf("Load = %v, want ErrModelLoad", err)
	}
}
