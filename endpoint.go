package main

import (
	"time"

	"murmur/dsp"
)

type endpointEvent int

const (
	evNone endpointEvent = iota
	evOpened
	evFinalized
	evDiscarded
)

// endpointer segments the incoming block stream into utterances by RMS
// energy. It runs entirely on the sample clock: durations are counted
// in samples, never wall time, so the same block sequence always
// produces the same events.
type endpointer struct {
	rate      int
	threshold float64

	silenceSamples   int // closes an open utterance
	minSpeechSamples int // below this an utterance is discarded
	maxSamples       int // force-finalize cap
	doneSamples      int // session-level done timeout

	open            bool
	buf             []float32
	speechSamples   int
	trailingSilence int

	sessionSilence int
	hadUtterance   bool

	finalized []float32
}

func newEndpointer(rate int, cfg Config) *endpointer {
	toSamples := func(d time.Duration) int {
		return int(d.Seconds() * float64(rate))
	}
	return &endpointer{
		rate:             rate,
		threshold:        SilenceThreshold,
		silenceSamples:   toSamples(cfg.SilenceDuration),
		minSpeechSamples: toSamples(cfg.SpeechMinDuration),
		maxSamples:       toSamples(cfg.MaxUtterance),
		doneSamples:      toSamples(cfg.DoneTimeout),
	}
}

// Feed consumes one block and reports what happened. At most one
// finalize or discard event per utterance.
func (d *endpointer) Feed(block []float32) endpointEvent {
	speech := dsp.RMS(block) > d.threshold

	if speech {
		d.sessionSilence = 0
	} else {
		d.sessionSilence += len(block)
	}

	if !d.open {
		if !speech {
			return evNone
		}
		d.open = true
		d.buf = append(d.buf[:0:0], block...)
		d.speechSamples = len(block)
		d.trailingSilence = 0
		return evOpened
	}

	d.buf = append(d.buf, block...)
	if speech {
		d.speechSamples += len(block)
		d.trailingSilence = 0
	} else {
		d.trailingSilence += len(block)
	}

	if d.trailingSilence >= d.silenceSamples || len(d.buf) >= d.maxSamples {
		return d.close()
	}
	return evNone
}

// FinishNow closes any open utterance immediately (hotkey, duration
// cap, cancellation).
func (d *endpointer) FinishNow() endpointEvent {
	if !d.open {
		return evNone
	}
	return d.close()
}

func (d *endpointer) close() endpointEvent {
	buf := d.buf
	enough := d.speechSamples >= d.minSpeechSamples
	d.open = false
	d.buf = nil
	d.speechSamples = 0
	d.trailingSilence = 0

	if !enough {
		return evDiscarded
	}
	d.finalized = buf
	d.hadUtterance = true
	d.sessionSilence = 0
	return evFinalized
}

// Take hands the finalized utterance to exactly one reader.
func (d *endpointer) Take() []float32 {
	buf := d.finalized
	d.finalized = nil
	return buf
}

// DoneSilence reports whether the session has been silent long enough
// after at least one finalized utterance to end with a result.
func (d *endpointer) DoneSilence() bool {
	return d.hadUtterance && !d.open && d.sessionSilence >= d.doneSamples
}

// HadUtterance reports whether anything has been finalized yet.
func (d *endpointer) HadUtterance() bool { return d.hadUtterance }

// Open reports whether an utterance is currently being collected.
func (d *endpointer) Open() bool { return d.open }

// DoneRemaining returns the time left until DoneSilence fires, or the
// full timeout when it is not counting down.
func (d *endpointer) DoneRemaining() time.Duration {
	remaining := d.doneSamples - d.sessionSilence
	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(float64(remaining) / float64(d.rate) * float64(time.Second))
}
