// Package doctor walks the user through interactive checks of every
// pipeline stage: model file, microphone, recognition, clipboard and
// paste.
package doctor

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"murmur/audio"
	"murmur/dsp"
	"murmur/output"
	"murmur/whisper"
)

const recordRate = 48000

// Run executes interactive diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(modelPath, lang string) int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("murmur doctor - interactive system diagnostics")
	fmt.Println("===============================================")

	allPass := true

	engine := checkModel(modelPath)
	if engine == nil {
		allPass = false
	} else {
		defer engine.Close()
	}

	var recorded []float32
	if allPass {
		recorded = checkMicrophone()
		if recorded == nil {
			allPass = false
		}
	}
	if allPass && !checkTranscription(engine, recorded, lang) {
		allPass = false
	}
	if allPass && !checkClipboard() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkModel(modelPath string) *whisper.Engine {
	fmt.Println()
	fmt.Println("[1/4] Recognition model")
	fmt.Printf("  Loading %s (takes a few seconds)...\n", modelPath)

	engine, err := whisper.Load(modelPath)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		fmt.Println("  Download a ggml model and place it at the path above,")
		fmt.Println("  or point murmur at it with -model.")
		return nil
	}
	fmt.Println("  PASS: model loaded")
	return engine
}

func checkMicrophone() []float32 {
	fmt.Println()
	fmt.Println("[2/4] Microphone")

	reader := bufio.NewReader(os.Stdin)

	ctx, err := audio.NewContext()
	if err != nil {
		fmt.Printf("  FAIL: cannot connect to audio: %v\n", err)
		return nil
	}
	defer ctx.Close()

	devices, err := ctx.Devices()
	if err != nil {
		fmt.Printf("  FAIL: cannot list devices: %v\n", err)
		return nil
	}
	if len(devices) == 0 {
		fmt.Println("  FAIL: no capture devices found")
		return nil
	}

	var device *audio.DeviceInfo
	if len(devices) == 1 {
		device = &devices[0]
		fmt.Printf("Using device: %s\n", device.Name)
	} else {
		fmt.Println()
		fmt.Println("Select input device:")
		for i, d := range devices {
			fmt.Printf("  %d. %s\n", i+1, d.Name)
		}
		fmt.Printf("Choice [1-%d]: ", len(devices))

		devChoice, _ := reader.ReadString('\n')
		devChoice = strings.TrimSpace(devChoice)
		idx := 0
		if devChoice != "" {
			fmt.Sscanf(devChoice, "%d", &idx)
			idx--
		}
		if idx < 0 || idx >= len(devices) {
			fmt.Println("  FAIL: invalid choice")
			return nil
		}
		device = &devices[idx]
		fmt.Printf("Selected: %s\n", device.Name)
	}

	fmt.Println()
	fmt.Print("Press Enter and speak for 3 seconds...")
	reader.ReadString('\n')

	samples, err := recordAudio(ctx, device, 3*time.Second)
	if err != nil {
		fmt.Printf("  FAIL: recording error: %v\n", err)
		return nil
	}
	if len(samples) == 0 {
		fmt.Println("  FAIL: no audio captured")
		return nil
	}

	var peak float64
	for _, s := range samples {
		if v := math.Abs(float64(s)); v > peak {
			peak = v
		}
	}
	fmt.Printf("  Recorded %.1fs, peak level %.3f\n", float64(len(samples))/recordRate, peak)
	if peak <= 0.015 {
		fmt.Println("  FAIL: level never rose above the silence threshold")
		fmt.Println("  Check the input device and its gain.")
		return nil
	}
	fmt.Println("  PASS: microphone captures speech-level audio")
	return samples
}

func recordAudio(ctx audio.Context, device *audio.DeviceInfo, d time.Duration) ([]float32, error) {
	var buf []float32
	var mu sync.Mutex

	capture, err := ctx.NewCapture(device, audio.CaptureConfig{
		SampleRate: recordRate,
		Channels:   1,
	})
	if err != nil {
		return nil, err
	}
	defer capture.Close()

	capture.SetCallback(func(samples []float32, _ uint32) {
		mu.Lock()
		buf = append(buf, samples...)
		mu.Unlock()
	})

	if err := capture.Start(); err != nil {
		return nil, err
	}

	fmt.Print("  Recording")
	ticker := time.NewTicker(500 * time.Millisecond)
	deadline := time.After(d)
loop:
	for {
		select {
		case <-deadline:
			break loop
		case <-ticker.C:
			fmt.Print(".")
		}
	}
	ticker.Stop()

	capture.ClearCallback()
	capture.Stop()
	fmt.Println(" done")

	mu.Lock()
	defer mu.Unlock()
	return buf, nil
}

func checkTranscription(engine *whisper.Engine, samples []float32, lang string) bool {
	fmt.Println()
	fmt.Println("[3/4] Transcription")

	resampled := dsp.Resample(samples, recordRate, whisper.SampleRate)
	start := time.Now()
	text, err := engine.Transcribe(resampled, lang)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  Transcribed in %.1fs\n", time.Since(start).Seconds())

	text = strings.TrimSpace(text)
	if text == "" {
		text = "(no speech detected)"
	}
	fmt.Printf("\n  Transcribed text: %s\n\n", text)

	confirmReader := bufio.NewReader(os.Stdin)
	fmt.Print("Is this correct? [y/n]: ")
	confirm, _ := confirmReader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))

	if confirm == "y" || confirm == "yes" {
		fmt.Println("  PASS: transcription verified by user")
		return true
	}
	fmt.Println("  FAIL: transcription not confirmed")
	return false
}

func checkClipboard() bool {
	fmt.Println()
	fmt.Println("[4/4] Clipboard and paste")

	if err := output.Init(); err != nil {
		fmt.Printf("  FAIL: paste init: %v\n", err)
		fmt.Println("  Fix with: sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput")
		return false
	}

	testStr := "murmur-doctor-test"
	if err := output.Copy(testStr); err != nil {
		fmt.Printf("  FAIL: clipboard copy failed: %v\n", err)
		return false
	}
	got, err := output.Read()
	if err != nil {
		fmt.Printf("  FAIL: clipboard read failed: %v\n", err)
		return false
	}
	if got != testStr {
		fmt.Printf("  FAIL: clipboard readback mismatch (got %q)\n", got)
		return false
	}
	fmt.Println("  PASS: clipboard round-trip")

	msg, err := output.Verify()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: %s\n", msg)
	return true
}
