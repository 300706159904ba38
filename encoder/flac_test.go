package encoder

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func genTone(durationMs int) []float32 {
	n := SampleRate * durationMs / 1000
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/SampleRate))
	}
	return out
}

func TestFlacEncoder(t *testing.T) {
	samples := toInt16(genTone(500))

	enc, err := NewFlac()
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}

	var totalFed uint64
	for i := 0; i < len(samples); i += BlockSize {
		end := min(i+BlockSize, len(samples))
		block := samples[i:end]
		if err := enc.EncodeBlock(block); err != nil {
			t.Fatalf("EncodeBlock at offset %d: %v", i, err)
		}
		totalFed += uint64(len(block))
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if enc.TotalFrames() != totalFed {
		t.Errorf("TotalFrames = %d, want %d", enc.TotalFrames(), totalFed)
	}

	flacData := enc.Bytes()
	if len(flacData) < 4 || string(flacData[:4]) != "fLaC" {
		t.Fatal("output does not start with FLAC magic")
	}
}

func TestFlacEncoderEmpty(t *testing.T) {
	enc, err := NewFlac()
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close on empty encoder: %v", err)
	}
	if enc.TotalFrames() != 0 {
		t.Errorf("TotalFrames = %d, want 0", enc.TotalFrames())
	}
	if len(enc.Bytes()) == 0 {
		t.Error("expected non-empty FLAC output (at least header)")
	}
}

func TestArchiveSave(t *testing.T) {
	dir := t.TempDir()
	a := NewArchive(dir)
	a.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	}

	path, err := a.Save(genTone(700)) // not a multiple of BlockSize
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "20260314-092653.flac" {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "fLaC" {
		t.Error("archive file is not FLAC")
	}
}

func TestToInt16Clips(t *testing.T) {
	out := toInt16([]float32{1.5, -1.5, 0})
	if out[0] != 32767 || out[1] != -32767 || out[2] != 0 {
		t.Errorf("toInt16 = %v", out)
	}
}
