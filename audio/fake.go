package audio

import (
	"sync"
	"time"
)

const fakeBlockSize = 1024

// FakeContext replays a prepared sample buffer through the capture
// interfaces, then feeds silence until stopped. Used by session and
// pipeline tests.
type FakeContext struct {
	samples    []float32
	sampleRate int
	realtime   bool
}

func NewFakeContext(samples []float32, sampleRate int, realtime bool) *FakeContext {
	return &FakeContext{samples: samples, sampleRate: sampleRate, realtime: realtime}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) { return nil, nil }
func (f *FakeContext) Close()                         {}

func (f *FakeContext) NewCapture(_ *DeviceInfo, _ CaptureConfig) (CaptureDevice, error) {
	return &FakeCapture{
		samples:    f.samples,
		sampleRate: f.sampleRate,
		realtime:   f.realtime,
		audioDone:  make(chan struct{}),
	}, nil
}

type FakeCapture struct {
	samples    []float32
	sampleRate int
	realtime   bool
	audioDone  chan struct{}

	mu       sync.Mutex
	cb       DataCallback
	stopCh   chan struct{}
	feedDone chan struct{}
}

// AudioDone is closed once the prepared samples have all been fed and
// the capture has switched to the silence tail.
func (f *FakeCapture) AudioDone() <-chan struct{} { return f.audioDone }

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *FakeCapture) ClearCallback() {
	f.mu.Lock()
	f.cb = nil
	f.mu.Unlock()
}

func (f *FakeCapture) DeviceName() string { return "fake" }

func (f *FakeCapture) feedBlock(cb DataCallback, pos int) int {
	end := min(pos+fakeBlockSize, len(f.samples))
	block := make([]float32, end-pos)
	copy(block, f.samples[pos:end])
	cb(block, uint32(len(block)))
	return end
}

func (f *FakeCapture) Start() error {
	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})
	// audioDone is NOT recreated here -- callers may already be waiting
	// on it. It's reset in Stop() for replay.

	if !f.realtime {
		f.mu.Lock()
		cb := f.cb
		f.mu.Unlock()
		if cb != nil {
			for pos := 0; pos < len(f.samples); {
				pos = f.feedBlock(cb, pos)
			}
		}
		close(f.audioDone)

		go func() {
			defer close(f.feedDone)
			for {
				select {
				case <-f.stopCh:
					return
				case <-time.After(time.Millisecond):
				}
				f.mu.Lock()
				cb := f.cb
				f.mu.Unlock()
				if cb != nil {
					cb(make([]float32, fakeBlockSize), fakeBlockSize)
				}
			}
		}()
	} else {
		interval := time.Duration(fakeBlockSize) * time.Second / time.Duration(f.sampleRate)
		go func() {
			defer close(f.feedDone)
			pos := 0
			audioFinished := false

			for {
				select {
				case <-f.stopCh:
					return
				default:
				}

				f.mu.Lock()
				cb := f.cb
				f.mu.Unlock()
				if cb == nil {
					time.Sleep(time.Millisecond)
					continue
				}

				if pos < len(f.samples) {
					pos = f.feedBlock(cb, pos)
				} else {
					if !audioFinished {
						audioFinished = true
						close(f.audioDone)
					}
					cb(make([]float32, fakeBlockSize), fakeBlockSize)
				}

				select {
				case <-f.stopCh:
					return
				case <-time.After(interval):
				}
			}
		}()
	}

	return nil
}

func (f *FakeCapture) Stop() {
	select {
	case <-f.stopCh:
	default:
		close(f.stopCh)
	}
	if f.feedDone != nil {
		<-f.feedDone
	}
	f.audioDone = make(chan struct{}) // reset for replay
}

func (f *FakeCapture) Close() {}
