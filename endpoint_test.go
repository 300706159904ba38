package main

import (
	"math"
	"testing"
	"time"
)

const testRate = 48000

// 100ms blocks
func speechBlock() []float32 {
	b := make([]float32, testRate/10)
	for i := range b {
		b[i] = float32(0.1 * math.Sin(2*math.Pi*440*float64(i)/testRate))
	}
	return b
}

func silenceBlock() []float32 {
	return make([]float32, testRate/10)
}

func testEndpointer() *endpointer {
	cfg := DefaultConfig()
	return newEndpointer(testRate, cfg)
}

func feedN(t *testing.T, d *endpointer, block func() []float32, n int) []endpointEvent {
	t.Helper()
	var events []endpointEvent
	for i := 0; i < n; i++ {
		if ev := d.Feed(block()); ev != evNone {
			events = append(events, ev)
		}
	}
	return events
}

func TestSilenceOnlyNeverFinalizes(t *testing.T) {
	d := testEndpointer()
	// 30 seconds of silence
	events := feedN(t, d, silenceBlock, 300)
	if len(events) != 0 {
		t.Fatalf("events = %v, want none", events)
	}
	if d.HadUtterance() {
		t.Error("HadUtterance = true on pure silence")
	}
	// Done timeout never arms without an utterance.
	if d.DoneSilence() {
		t.Error("DoneSilence = true on pure silence")
	}
}

func TestSpeechThenSilenceFinalizes(t *testing.T) {
	d := testEndpointer()
	// 2s speech
	evs := feedN(t, d, speechBlock, 20)
	if len(evs) != 1 || evs[0] != evOpened {
		t.Fatalf("events during speech = %v, want [evOpened]", evs)
	}
	// 2.5s silence closes it
	evs = feedN(t, d, silenceBlock, 25)
	if len(evs) != 1 || evs[0] != evFinalized {
		t.Fatalf("events during silence = %v, want [evFinalized]", evs)
	}

	utter := d.Take()
	// 2s speech + 2.5s trailing silence
	want := 45 * testRate / 10
	if len(utter) != want {
		t.Errorf("utterance length = %d, want %d", len(utter), want)
	}
	if d.Take() != nil {
		t.Error("second Take returned data")
	}
}

func TestExactlyOneFinalizePerUtterance(t *testing.T) {
	d := testEndpointer()
	feedN(t, d, speechBlock, 20)
	finalizes := 0
	// Keep feeding silence well past the window.
	for i := 0; i < 100; i++ {
		if d.Feed(silenceBlock()) == evFinalized {
			finalizes++
		}
	}
	if finalizes != 1 {
		t.Errorf("finalize events = %d, want 1", finalizes)
	}
}

func TestShortBurstDiscarded(t *testing.T) {
	d := testEndpointer()
	// 300ms of speech, under the 500ms minimum
	feedN(t, d, speechBlock, 3)
	evs := feedN(t, d, silenceBlock, 25)
	if len(evs) != 1 || evs[0] != evDiscarded {
		t.Fatalf("events = %v, want [evDiscarded]", evs)
	}
	if d.HadUtterance() {
		t.Error("HadUtterance = true after discard")
	}
	if got := d.Take(); got != nil {
		t.Errorf("Take after discard = %d samples, want nil", len(got))
	}
}

func TestEqualityIsSilence(t *testing.T) {
	d := testEndpointer()
	// A constant block whose RMS is exactly the threshold.
	b := make([]float32, testRate/10)
	for i := range b {
		b[i] = SilenceThreshold
	}
	if ev := d.Feed(b); ev != evNone {
		t.Errorf("threshold-exact block opened an utterance: %v", ev)
	}
}

func TestMaxUtteranceForceFinalizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxUtterance = 2 * time.Second
	d := newEndpointer(testRate, cfg)

	var finalizedAt int
	for i := 1; i <= 40; i++ {
		if d.Feed(speechBlock()) == evFinalized {
			finalizedAt = i
			break
		}
	}
	if finalizedAt == 0 {
		t.Fatal("no finalize despite exceeding the cap")
	}
	// 2s cap at 100ms blocks: finalize on block 20, one block of slack.
	if finalizedAt < 20 || finalizedAt > 21 {
		t.Errorf("finalized at block %d, want 20 or 21", finalizedAt)
	}
	utter := d.Take()
	capSamples := int(cfg.MaxUtterance.Seconds() * testRate)
	if len(utter) > capSamples+testRate/10 {
		t.Errorf("utterance length %d exceeds cap %d by more than a block", len(utter), capSamples)
	}
}

func TestDoneSilenceArmsAfterFinalize(t *testing.T) {
	d := testEndpointer()
	feedN(t, d, speechBlock, 10)
	feedN(t, d, silenceBlock, 25) // finalize
	d.Take()

	if d.DoneSilence() {
		t.Fatal("DoneSilence immediately after finalize")
	}
	// 5s more silence
	feedN(t, d, silenceBlock, 50)
	if !d.DoneSilence() {
		t.Error("DoneSilence = false after done timeout elapsed")
	}
}

func TestDoneSilenceResetBySpeech(t *testing.T) {
	d := testEndpointer()
	feedN(t, d, speechBlock, 10)
	feedN(t, d, silenceBlock, 25)
	d.Take()

	feedN(t, d, silenceBlock, 30) // 3s, not yet
	feedN(t, d, speechBlock, 10)  // new utterance opens
	if d.DoneSilence() {
		t.Error("DoneSilence while an utterance is open")
	}
}

func TestFinishNowClosesOpenUtterance(t *testing.T) {
	d := testEndpointer()
	feedN(t, d, speechBlock, 10)
	if ev := d.FinishNow(); ev != evFinalized {
		t.Fatalf("FinishNow = %v, want evFinalized", ev)
	}
	if got := d.Take(); len(got) != testRate {
		t.Errorf("utterance length = %d, want %d", len(got), testRate)
	}
	if ev := d.FinishNow(); ev != evNone {
		t.Errorf("FinishNow with nothing open = %v, want evNone", ev)
	}
}

func TestDoneRemainingCountsDown(t *testing.T) {
	d := testEndpointer()
	feedN(t, d, speechBlock, 10)
	feedN(t, d, silenceBlock, 25)
	d.Take()

	full := d.DoneRemaining()
	feedN(t, d, silenceBlock, 10) // 1s
	later := d.DoneRemaining()
	if later >= full {
		t.Errorf("DoneRemaining did not decrease: %v -> %v", full, later)
	}
	if diff := full - later - time.Second; diff < -50*time.Millisecond || diff > 50*time.Millisecond {
		t.Errorf("countdown off by %v", diff)
	}
}
