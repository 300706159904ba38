package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// The TUI polls the session's state cell and level gauge on a tick
// instead of receiving pushes, so redrawing the same snapshot twice is
// harmless and the session never blocks on the display.

type tickMsg time.Time

const (
	tuiTickInterval = 60 * time.Millisecond
	resultLinger    = 1500 * time.Millisecond
	meterWidth      = 24
)

var (
	dotLoadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dotListenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dotBusyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	dotErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	meterOnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	meterOffStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	transcriptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Width(60)
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type tuiModel struct {
	session *Session

	state       State
	level       float64
	smoothLevel float64
	endSeen     time.Time
	width       int
}

func NewTUIProgram(s *Session) *tea.Program {
	return tea.NewProgram(tuiModel{session: s})
}

func tuiTick() tea.Cmd {
	return tea.Tick(tuiTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			m.session.Cancel()
		}

	case tickMsg:
		m.state = m.session.State()
		m.level = m.session.Level()
		m.smoothLevel = m.smoothLevel*0.6 + m.level*0.4

		switch m.state.Phase {
		case PhaseResult, PhaseError:
			if m.endSeen.IsZero() {
				m.endSeen = time.Now()
			} else if time.Since(m.endSeen) >= resultLinger {
				return m, tea.Quit
			}
		}
		return m, tuiTick()
	}
	return m, nil
}

func renderMeter(level float64) string {
	// 0.10 RMS is already loud speech; scale so the bar moves.
	filled := int(level / 0.10 * meterWidth)
	if filled > meterWidth {
		filled = meterWidth
	}
	return meterOnStyle.Render(strings.Repeat("▮", filled)) +
		meterOffStyle.Render(strings.Repeat("▯", meterWidth-filled))
}

func (m tuiModel) statusLine() string {
	switch m.state.Phase {
	case PhaseLoading:
		return dotLoadingStyle.Render("●") + statusStyle.Render(" Loading model…")
	case PhaseListening:
		return dotListenStyle.Render("●") + statusStyle.Render(" Listening")
	case PhaseTranscribing:
		return dotBusyStyle.Render("●") + statusStyle.Render(" Transcribing…")
	case PhaseResult:
		return dotListenStyle.Render("✓") + statusStyle.Render(" Done")
	case PhaseError:
		return dotErrorStyle.Render("✗") + statusStyle.Render(" Error")
	}
	return ""
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + m.statusLine() + "\n")

	switch m.state.Phase {
	case PhaseListening, PhaseTranscribing:
		b.WriteString("  " + renderMeter(m.smoothLevel) + "\n")
	}

	if m.state.Text != "" {
		b.WriteString("\n  " + transcriptStyle.Render(m.state.Text) + "\n")
	}

	switch m.state.Phase {
	case PhaseListening:
		if m.state.Text != "" {
			remaining := m.session.DoneHint()
			if remaining > 0 {
				b.WriteString("\n  " + hintStyle.Render(
					fmt.Sprintf("Done in %ds…", int(remaining.Seconds()+0.999))) + "\n")
			}
		}
		b.WriteString("\n  " + hintStyle.Render("Esc to cancel") + "\n")
	case PhaseError:
		if m.state.Err != nil {
			b.WriteString("\n  " + errStyle.Render(m.state.Err.Error()) + "\n")
		}
	}

	return b.String()
}
