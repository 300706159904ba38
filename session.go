package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"murmur/audio"
	"murmur/beep"
	"murmur/dsp"
	"murmur/encoder"
	"murmur/log"
	"murmur/notes"
	"murmur/output"
	"murmur/whisper"
)

// blockBuffer is the capacity of the callback-to-worker channel. At
// ~20 blocks/s a full buffer is over ten seconds of backlog; blocks
// beyond it are dropped and counted rather than stalling the audio
// thread.
const blockBuffer = 256

// Session drives one capture-to-delivery run: load engine, capture,
// endpoint, transcribe, deliver, until silence or cancellation ends it.
// All pipeline work happens on the worker goroutine inside Run; UIs
// observe through the state cell, level gauge, and sink.
type Session struct {
	cfg    Config
	ctx    audio.Context
	device *audio.DeviceInfo

	// loadEngine is deferred so Run owns the Loading phase and tests
	// can inject fakes.
	loadEngine func() (whisper.Recognizer, error)

	sink    EventSink
	deliver func(text string) error
	book    *notes.Book
	arch    *encoder.Archive

	cell  StateCell
	level LevelGauge

	cancelOnce sync.Once
	cancelCh   chan struct{}

	dropped       atomic.Uint64
	doneRemaining atomic.Int64

	utterances []string
}

func NewSession(cfg Config, ctx audio.Context, device *audio.DeviceInfo) *Session {
	s := &Session{
		cfg:    cfg,
		ctx:    ctx,
		device: device,
		loadEngine: func() (whisper.Recognizer, error) {
			return whisper.Load(cfg.ModelPath)
		},
		sink:     NullSink{},
		deliver:  output.New(cfg.AutoPaste).Deliver,
		cancelCh: make(chan struct{}),
	}
	if cfg.Notes {
		s.book = notes.NewBook(NotesDir())
	}
	if cfg.Archive {
		s.arch = encoder.NewArchive(ArchiveDir())
	}
	return s
}

func (s *Session) SetSink(sink EventSink) { s.sink = sink }

// DisableDelivery keeps recognized text in the transcript without
// touching the clipboard or pasting. Used by listen mode, which prints
// to stdout instead.
func (s *Session) DisableDelivery() { s.deliver = nil }

// State returns the latest published snapshot.
func (s *Session) State() State { return s.cell.Get() }

// Level returns the most recent capture block's RMS.
func (s *Session) Level() float64 { return s.level.Get() }

// DoneHint returns the time left before the session closes on silence,
// or zero when no countdown is running.
func (s *Session) DoneHint() time.Duration {
	return time.Duration(s.doneRemaining.Load())
}

// Cancel requests a cooperative stop. Safe to call from any goroutine,
// any number of times. An in-flight transcription completes; an open
// utterance is finalized and delivered.
func (s *Session) Cancel() {
	s.cancelOnce.Do(func() { close(s.cancelCh) })
}

func (s *Session) publish(st State) {
	s.cell.Set(st)
	s.sink.StateChanged(st)
}

func (s *Session) transcript() string {
	return strings.Join(s.utterances, " ")
}

func (s *Session) fail(err error) error {
	log.Errorf("session error: %v", err)
	s.publish(State{Phase: PhaseError, Err: err})
	beep.PlayError()
	return err
}

// Run executes the session to completion and returns the first fatal
// error, or nil when it ended with a result (possibly empty).
func (s *Session) Run() error {
	s.publish(State{Phase: PhaseLoading})

	engine, err := s.loadEngine()
	if err != nil {
		return s.fail(fmt.Errorf("loading model: %w", err))
	}
	defer engine.Close()

	capture, err := s.ctx.NewCapture(s.device, audio.CaptureConfig{
		SampleRate: RecordRate,
		Channels:   1,
	})
	if err != nil {
		return s.fail(fmt.Errorf("opening capture device: %w", err))
	}
	defer capture.Close()

	// The callback does a gauge write and a non-blocking send, nothing
	// more. UIs poll the gauge on their own tick.
	blocks := make(chan []float32, blockBuffer)
	capture.SetCallback(func(samples []float32, _ uint32) {
		s.level.Set(dsp.RMS(samples))
		select {
		case blocks <- samples:
		default:
			s.dropped.Add(1)
		}
	})
	if err := capture.Start(); err != nil {
		return s.fail(fmt.Errorf("starting capture: %w", err))
	}
	defer func() {
		capture.ClearCallback()
		capture.Stop()
	}()

	log.SessionStart(capture.DeviceName(), s.cfg.ModelPath, s.cfg.Lang)
	s.publish(State{Phase: PhaseListening})
	beep.PlayListening()

	ep := newEndpointer(RecordRate, s.cfg)

	var deadline <-chan time.Time
	if s.cfg.Duration > 0 {
		t := time.NewTimer(s.cfg.Duration)
		defer t.Stop()
		deadline = t.C
	}

	finish := func() {
		if ep.FinishNow() == evFinalized {
			s.processUtterance(engine, ep.Take())
		}
		s.finishWithResult()
	}

	for {
		select {
		case <-s.cancelCh:
			finish()
			return nil

		case <-deadline:
			finish()
			return nil

		case block := <-blocks:
			switch ep.Feed(block) {
			case evFinalized:
				s.publish(State{Phase: PhaseTranscribing, Text: s.transcript()})
				s.processUtterance(engine, ep.Take())
				s.publish(State{Phase: PhaseListening, Text: s.transcript()})
			}

			if ep.HadUtterance() && !ep.Open() && !ep.DoneSilence() {
				remaining := ep.DoneRemaining()
				s.doneRemaining.Store(int64(remaining))
				s.sink.DoneCountdown(remaining)
			} else {
				s.doneRemaining.Store(0)
			}
			if ep.DoneSilence() {
				s.finishWithResult()
				return nil
			}
		}
	}
}

func (s *Session) finishWithResult() {
	if n := s.dropped.Load(); n > 0 {
		log.DroppedBlocks(n)
	}
	s.doneRemaining.Store(0)
	s.sink.DoneCountdown(0)
	s.publish(State{Phase: PhaseResult, Text: s.transcript()})
	beep.PlayDone()
	log.SessionEnd(len(s.utterances))
}

// processUtterance runs one finalized utterance through resample,
// transcribe, and delivery. Failures here are recoverable; the session
// keeps listening.
func (s *Session) processUtterance(engine whisper.Recognizer, samples []float32) {
	if len(samples) == 0 {
		return
	}

	resampled := dsp.Resample(samples, RecordRate, whisper.SampleRate)
	audioLen := float64(len(resampled)) / whisper.SampleRate

	start := time.Now()
	text, err := engine.Transcribe(resampled, s.cfg.Lang)
	elapsed := time.Since(start)
	if err != nil {
		log.Warnf("transcription failed: %v", err)
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	log.UtteranceMetrics(log.Metrics{
		AudioLengthS:  audioLen,
		TranscribeMs:  float64(elapsed.Milliseconds()),
		MemoryAllocMB: float64(mem.Alloc) / 1024 / 1024,
		MemoryPeakMB:  float64(mem.Sys) / 1024 / 1024,
	}, s.cfg.ModelPath, s.cfg.Lang)

	text = strings.TrimSpace(text)
	if text == "" || whisper.IsNoise(text) {
		log.Infof("discarded noise result: %q", text)
		return
	}

	if s.deliver != nil {
		// Trailing space so consecutive utterances paste as a sentence
		// stream. Delivery failures never lose the text: it stays in
		// the transcript, notes, and archive regardless.
		if err := s.deliver(text + " "); err != nil {
			if errors.Is(err, output.ErrPaste) {
				log.Warnf("delivery degraded: %v", err)
			} else {
				log.Errorf("delivery failed, text kept in transcript: %v", err)
			}
		}
	}
	s.utterances = append(s.utterances, text)
	log.TranscriptionText(text)

	if s.book != nil {
		if _, err := s.book.Append(text); err != nil {
			log.Warnf("notes append failed: %v", err)
		}
	}
	if s.arch != nil {
		if _, err := s.arch.Save(resampled); err != nil {
			log.Warnf("archive save failed: %v", err)
		}
	}
}
