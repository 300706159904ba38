// Package beep plays short audio cues for session milestones: capture
// started, utterance finalized, and error. Cues are synthesized sine
// ticks with an exponential decay envelope, played asynchronously so
// they never delay the pipeline.
package beep

import "math"

var disabled bool

func Disable() { disabled = true }

const (
	sampleRate = 44100

	// Listening cue: high pitch, short
	listenFreq   = 1175
	listenVolume = 0.5
	listenDecay  = 60

	// Done cue: lower pitch, slightly longer ring
	doneFreq   = 880
	doneVolume = 0.5
	doneDecay  = 40

	// Error cue: low double-beep
	errorFreq   = 330
	errorVolume = 0.6
	errorDecay  = 30
)

func tone(freq, duration, volume, decay float64) []int16 {
	n := int(sampleRate * duration)
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / sampleRate
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

func doubleTone(freq, beepDur, gapDur, volume, decay float64) []int16 {
	beep := tone(freq, beepDur, volume, decay)
	gap := make([]int16, int(sampleRate*gapDur))
	result := make([]int16, 0, len(beep)*2+len(gap))
	result = append(result, beep...)
	result = append(result, gap...)
	result = append(result, beep...)
	return result
}

func PlayListening() {
	if disabled {
		return
	}
	play(tone(listenFreq, 0.12, listenVolume, listenDecay))
}

func PlayDone() {
	if disabled {
		return
	}
	play(tone(doneFreq, 0.15, doneVolume, doneDecay))
}

func PlayError() {
	if disabled {
		return
	}
	play(doubleTone(errorFreq, 0.08, 0.05, errorVolume, errorDecay))
}
