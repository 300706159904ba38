package main

import (
	"math"
	"sync/atomic"
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseListening
	PhaseTranscribing
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseListening:
		return "listening"
	case PhaseTranscribing:
		return "transcribing"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// State is one snapshot of the session. Text carries the accumulated
// transcript from PhaseListening onward; Err is set only for
// PhaseError.
type State struct {
	Phase Phase
	Text  string
	Err   error
}

// StateCell publishes the latest State to any number of readers.
// Single writer (the session worker); readers poll on their own tick
// and must tolerate seeing the same snapshot twice.
type StateCell struct {
	p atomic.Pointer[State]
}

func (c *StateCell) Set(s State) {
	c.p.Store(&s)
}

func (c *StateCell) Get() State {
	if s := c.p.Load(); s != nil {
		return *s
	}
	return State{Phase: PhaseLoading}
}

// LevelGauge is a single-writer RMS level indicator for the UI meter.
type LevelGauge struct {
	bits atomic.Uint64
}

func (g *LevelGauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *LevelGauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}
