//go:build gui

// Package gui renders the desktop overlay: a small frameless window in
// the top-right corner that shows the session phase, the input level,
// and a cancel button, without ever taking keyboard focus.
package gui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const resultLinger = 1500 * time.Millisecond

// Phase mirrors the session phases without importing the main package.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseListening
	PhaseTranscribing
	PhaseResult
	PhaseError
)

var dotColors = map[Phase]color.Color{
	PhaseLoading:      color.RGBA{230, 190, 60, 255},
	PhaseListening:    color.RGBA{70, 200, 110, 255},
	PhaseTranscribing: color.RGBA{70, 150, 230, 255},
	PhaseResult:       color.RGBA{70, 200, 110, 255},
	PhaseError:        color.RGBA{230, 70, 70, 255},
}

type App struct {
	fyneApp fyne.App
	window  fyne.Window

	dot        *canvas.Circle
	status     *widget.Label
	level      *widget.ProgressBar
	transcript *widget.Label
	hint       *widget.Label

	onReady  func()
	onCancel func()
	posX     int
	posY     int
}

func NewApp(onReady, onCancel func()) *App {
	return &App{onReady: onReady, onCancel: onCancel}
}

func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.murmur.overlay")
	a.fyneApp.Settings().SetTheme(&darkTheme{})

	var screenW int
	monitor := glfw.GetPrimaryMonitor()
	if monitor != nil {
		_, _, screenW, _ = monitor.GetWorkarea()
	} else {
		screenW = 1920 // fallback
	}

	// Frameless splash window so no window manager chrome appears.
	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		a.window = drv.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow("murmur")
	}

	a.dot = canvas.NewCircle(dotColors[PhaseLoading])
	a.dot.Resize(fyne.NewSize(14, 14))
	a.status = widget.NewLabel("Loading model…")
	a.level = widget.NewProgressBar()
	a.level.TextFormatter = func() string { return "" }
	a.transcript = widget.NewLabel("")
	a.transcript.Wrapping = fyne.TextWrapWord
	a.hint = widget.NewLabel("")

	cancel := widget.NewButton("✕", func() {
		if a.onCancel != nil {
			a.onCancel()
		}
	})

	top := container.NewBorder(nil, nil,
		container.NewCenter(a.dot), cancel, a.status)
	content := container.NewVBox(top, a.level, a.transcript, a.hint)

	a.window.SetContent(content)
	a.window.Resize(fyne.NewSize(320, 140))
	a.window.SetFixedSize(true)

	// Anchor top-right with a small margin.
	a.posX = screenW - 320 - 20
	a.posY = 20

	a.window.Show()
	fyne.Do(a.positionOverlay)

	go a.onReady()

	a.fyneApp.Run()
	return nil
}

// positionOverlay runs on the render thread once the event loop is up.
func (a *App) positionOverlay() {
	glfwWin := glfw.GetCurrentContext()
	if glfwWin == nil {
		return
	}
	glfwWin.SetPos(a.posX, a.posY)
	// The overlay must never steal keyboard focus from the window
	// receiving the paste.
	glfwWin.SetAttrib(glfw.FocusOnShow, glfw.False)
	glfwWin.SetAttrib(glfw.Floating, glfw.True)
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

// StateChanged implements the session event sink. Called from the
// worker goroutine.
func (a *App) StateChanged(phase Phase, text string, err error) {
	fyne.Do(func() {
		a.dot.FillColor = dotColors[phase]
		a.dot.Refresh()

		switch phase {
		case PhaseLoading:
			a.status.SetText("Loading model…")
		case PhaseListening:
			a.status.SetText("Listening")
		case PhaseTranscribing:
			a.status.SetText("Transcribing…")
		case PhaseResult:
			a.status.SetText("Done")
		case PhaseError:
			a.status.SetText("Error")
			if err != nil {
				a.transcript.SetText(err.Error())
			}
		}
		if text != "" {
			a.transcript.SetText(text)
		}
	})

	if phase == PhaseResult || phase == PhaseError {
		time.AfterFunc(resultLinger, a.Quit)
	}
}

func (a *App) AudioLevel(level float64) {
	// 0.10 RMS is loud speech; scale so the bar moves.
	v := level / 0.10
	if v > 1 {
		v = 1
	}
	fyne.Do(func() {
		a.level.SetValue(v)
	})
}

func (a *App) DoneCountdown(remaining time.Duration) {
	fyne.Do(func() {
		if remaining <= 0 {
			a.hint.SetText("")
			return
		}
		a.hint.SetText(fmt.Sprintf("Done in %ds…", int(remaining.Seconds()+0.999)))
	})
}
