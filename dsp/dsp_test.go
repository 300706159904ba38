package dsp

import (
	"math"
	"testing"
)

func genTone(freq float64, rate, durationMs int) []float32 {
	n := rate * durationMs / 1000
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func TestRMSSilence(t *testing.T) {
	if got := RMS(make([]float32, 4800)); got != 0 {
		t.Errorf("RMS of silence = %v, want 0", got)
	}
	if got := RMS(nil); got != 0 {
		t.Errorf("RMS of empty = %v, want 0", got)
	}
}

func TestRMSSine(t *testing.T) {
	// A sine of amplitude A has RMS A/sqrt(2).
	tone := genTone(440, 48000, 1000)
	want := 0.5 / math.Sqrt2
	if got := RMS(tone); math.Abs(got-want) > 0.01 {
		t.Errorf("RMS = %v, want ~%v", got, want)
	}
}

func TestResampleLengths(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		inLen    int
	}{
		{"48k_to_16k", 48000, 16000, 48000},
		{"48k_to_16k_odd", 48000, 16000, 48001},
		{"44k1_to_16k", 44100, 16000, 44100},
		{"16k_to_48k", 16000, 48000, 16000},
		{"8k_to_16k", 8000, 16000, 8000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := genTone(440, tc.from, 1001)[:tc.inLen]
			out := Resample(in, tc.from, tc.to)
			want := int(int64(tc.inLen) * int64(tc.to) / int64(tc.from))
			if len(out)-want > 1 || want-len(out) > 1 {
				t.Errorf("len = %d, want %d (±1)", len(out), want)
			}
		})
	}
}

func TestResampleSameRate(t *testing.T) {
	in := genTone(440, 16000, 100)
	out := Resample(in, 16000, 16000)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	// Must be a copy, not an alias.
	out[0] = 99
	if in[0] == 99 {
		t.Error("same-rate resample aliases its input")
	}
}

func TestResamplePreservesEnergy(t *testing.T) {
	in := genTone(440, 48000, 1000)
	out := Resample(in, 48000, 16000)
	inRMS, outRMS := RMS(in), RMS(out)
	if math.Abs(inRMS-outRMS) > 0.05 {
		t.Errorf("RMS drifted: in %v out %v", inRMS, outRMS)
	}
}

func TestResampleEmpty(t *testing.T) {
	if out := Resample(nil, 48000, 16000); len(out) != 0 {
		t.Errorf("resampling nil gave %d samples", len(out))
	}
}

func TestNormalizeQuietSignal(t *testing.T) {
	in := genTone(440, 16000, 100)
	for i := range in {
		in[i] *= 0.2 // peak 0.1
	}
	Normalize(in)
	var peak float32
	for _, s := range in {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak < 0.9 || peak > 0.96 {
		t.Errorf("peak after normalize = %v, want ~0.95", peak)
	}
}

func TestNormalizeLeavesNearSilence(t *testing.T) {
	in := make([]float32, 1600)
	in[0] = 0.0005
	Normalize(in)
	if in[0] != 0.0005 {
		t.Errorf("near-silent input was scaled: %v", in[0])
	}
}

func TestNormalizeLeavesHotSignal(t *testing.T) {
	in := []float32{0.97, -0.97, 0.5}
	Normalize(in)
	if in[0] != 0.97 {
		t.Errorf("hot input was scaled: %v", in[0])
	}
}

func TestTrimSilence(t *testing.T) {
	rate := 16000
	lead := make([]float32, rate/2) // 500ms silence
	tone := genTone(440, rate, 200)
	tail := make([]float32, rate/2)
	in := append(append(append([]float32{}, lead...), tone...), tail...)

	out := TrimSilence(in, rate)
	if len(out) == 0 {
		t.Fatal("trimmed everything")
	}
	// Should keep roughly the tone, within a window on each side.
	window := rate / 50
	if len(out) > len(tone)+2*window {
		t.Errorf("kept %d samples, tone is %d", len(out), len(tone))
	}
	if RMS(out) < 0.1 {
		t.Errorf("trimmed output is quiet: RMS %v", RMS(out))
	}
}

func TestTrimSilenceAllSilent(t *testing.T) {
	out := TrimSilence(make([]float32, 16000), 16000)
	if len(out) != 0 {
		t.Errorf("all-silent input kept %d samples", len(out))
	}
}

func TestTrimSilenceShortInput(t *testing.T) {
	in := []float32{0.5, 0.5}
	out := TrimSilence(in, 16000)
	if len(out) != len(in) {
		t.Errorf("sub-window input was trimmed: %d", len(out))
	}
}
