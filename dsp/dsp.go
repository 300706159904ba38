// Package dsp holds the pure sample math shared by the capture and
// recognition stages: RMS energy, rate conversion, and the
// preconditioning applied to utterances before they reach the engine.
package dsp

import "math"

// RMS returns the root-mean-square energy of a block of samples.
// Empty blocks report zero.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Resample converts samples from one rate to another. It is stateless:
// each call stands alone, so utterances can be converted independently.
// Integer-factor downsampling (the common 48000->16000 case) averages
// each group of source samples, which doubles as a cheap anti-alias
// filter; every other ratio falls back to linear interpolation. Output
// duration matches input duration to within one frame of rounding.
func Resample(samples []float32, from, to int) []float32 {
	if from == to || len(samples) == 0 || from <= 0 || to <= 0 {
		out := make([]float32, len(samples))
		copy(out, samples)
		return out
	}

	if from > to && from%to == 0 {
		return decimate(samples, from/to)
	}

	outLen := int(int64(len(samples)) * int64(to) / int64(from))
	if outLen == 0 {
		return nil
	}
	out := make([]float32, outLen)
	step := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}
	return out
}

func decimate(samples []float32, factor int) []float32 {
	out := make([]float32, len(samples)/factor)
	for i := range out {
		var sum float32
		for j := 0; j < factor; j++ {
			sum += samples[i*factor+j]
		}
		out[i] = sum / float32(factor)
	}
	return out
}
