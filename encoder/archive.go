package encoder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Archive writes one FLAC file per utterance into Dir.
type Archive struct {
	Dir string
	now func() time.Time
}

func NewArchive(dir string) *Archive {
	return &Archive{Dir: dir, now: time.Now}
}

// Save encodes samples (mono 16 kHz float32) and writes them to a
// timestamped file. Returns the file's path.
func (a *Archive) Save(samples []float32) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("archive dir: %w", err)
	}

	enc, err := NewFlac()
	if err != nil {
		return "", err
	}

	pcm := toInt16(samples)
	for i := 0; i < len(pcm); i += BlockSize {
		end := min(i+BlockSize, len(pcm))
		if err := enc.EncodeBlock(pcm[i:end]); err != nil {
			return "", err
		}
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("closing flac stream: %w", err)
	}

	path := filepath.Join(a.Dir, a.now().Format("20060102-150405")+".flac")
	if err := os.WriteFile(path, enc.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing archive file: %w", err)
	}
	return path, nil
}

func toInt16(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = int16(s * 32767)
	}
	return out
}
