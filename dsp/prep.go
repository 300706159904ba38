package dsp

const (
	normalizeTarget = 0.95
	normalizeFloor  = 0.001
	trimThreshold   = 0.01
)

// Normalize scales samples in place so the peak sits near 95% of full
// scale. Mic gain varies wildly between setups; the engine behaves
// much better on consistent input levels. Near-silent input is left
// alone (scaling noise up helps nobody), as is input already above
// the target.
func Normalize(samples []float32) {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak <= normalizeFloor || peak >= normalizeTarget {
		return
	}
	scale := normalizeTarget / peak
	for i := range samples {
		samples[i] *= scale
	}
}

// TrimSilence drops leading and trailing sub-threshold audio in 20ms
// windows so the engine sees speech, not the endpointer's silence
// tail. Returns a subslice of the input; an all-silent input yields an
// empty slice.
func TrimSilence(samples []float32, rate int) []float32 {
	window := rate / 50
	if window == 0 || len(samples) < window {
		return samples
	}

	start := 0
	for ; start+window <= len(samples); start += window {
		if RMS(samples[start:start+window]) > trimThreshold {
			break
		}
	}
	if start+window > len(samples) {
		return samples[:0]
	}

	end := len(samples)
	for ; end-window >= start; end -= window {
		if RMS(samples[end-window:end]) > trimThreshold {
			break
		}
	}
	if start >= end {
		return samples[:0]
	}
	return samples[start:end]
}
