package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync/atomic"

	"murmur/audio"
	"murmur/beep"
	"murmur/doctor"
	"murmur/hotkey"
	"murmur/log"
	"murmur/output"
	"murmur/shutdown"
)

var version = "dev"

// Set by the platform main before run() when -gui was requested. The
// session pointer is atomic because the overlay's cancel button and
// level poller read it from other goroutines.
var (
	sink          EventSink
	guiMode       bool
	activeSession atomic.Pointer[Session]
)

// initCrashLog redirects panic output to a file next to the other logs,
// since the process usually runs detached from a terminal.
func initCrashLog() {
	dir, err := log.ResolveDir("")
	if err != nil {
		return
	}
	log.SetDir(dir)
	if err := log.EnsureDir(); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "crash_log.txt"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	debug.SetCrashOutput(f, debug.CrashOptions{})
}

// run is the shared entry point after platform main() setup. Commands:
//
//	murmur [popup]   capture until silence, deliver via clipboard+paste
//	murmur listen    capture and print the transcript to stdout
func run() {
	command := "popup"
	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "popup" || args[0] == "listen") {
		command = args[0]
		args = args[1:]
	}

	flags := flag.NewFlagSet("murmur", flag.ExitOnError)
	modelPath := flags.String("model", DefaultModelPath(), "path to ggml model file")
	lang := flags.String("lang", "auto", "language code, or auto")
	duration := flags.Duration("duration", 0, "listen mode time cap (0 = until silence)")
	autoPaste := flags.Bool("autopaste", true, "paste into the focused window after copying")
	setup := flags.Bool("setup", false, "pick the capture device interactively and exit")
	device := flags.String("device", "", "capture device name (default system default)")
	notesFlag := flags.Bool("notes", false, "append utterances to the daily notes file")
	archiveFlag := flags.Bool("archive", false, "save utterance audio as FLAC")
	logPath := flags.String("logpath", "", "log directory (default OS data dir)")
	showVersion := flags.Bool("version", false, "print version and exit")
	runDoctor := flags.Bool("doctor", false, "run interactive diagnostics and exit")
	flags.Bool("gui", false, "show the desktop overlay instead of the terminal UI")
	noBeep := flags.Bool("nobeep", false, "disable audio cues")
	flags.Parse(args)

	if *showVersion {
		fmt.Printf("murmur %s\n", version)
		return
	}

	logDir, err := log.ResolveDir(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolving log path: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logDir)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "opening logs: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if *noBeep {
		beep.Disable()
	}

	if *runDoctor {
		log.Close()
		os.Exit(doctor.Run(*modelPath, *lang))
	}

	if *setup {
		runSetup()
		return
	}

	cfg := DefaultConfig()
	cfg.ModelPath = *modelPath
	cfg.Lang = *lang
	cfg.Device = *device
	cfg.AutoPaste = *autoPaste
	cfg.Notes = *notesFlag
	cfg.Archive = *archiveFlag
	if command == "listen" {
		cfg.Duration = *duration
		cfg.AutoPaste = false
	}

	ctx, err := audio.NewContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	dev, err := findDevice(ctx, cfg.Device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio: %v\n", err)
		os.Exit(1)
	}

	if cfg.AutoPaste {
		if err := output.Init(); err != nil {
			log.Warnf("paste unavailable, falling back to clipboard only: %v", err)
			cfg.AutoPaste = false
		}
	}

	session := NewSession(cfg, ctx, dev)
	activeSession.Store(session)

	sig := make(chan os.Signal, 1)
	shutdown.Notify(sig)
	go func() {
		<-sig
		session.Cancel()
	}()

	hk := hotkey.New()
	if err := hk.Register(); err != nil {
		log.Warnf("hotkey unavailable: %v", err)
	} else {
		defer hk.Unregister()
		go func() {
			<-hk.Pressed()
			session.Cancel()
		}()
	}

	switch {
	case command == "listen":
		session.DisableDelivery()
		if err := session.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "murmur: %v\n", err)
			os.Exit(1)
		}
		if text := session.State().Text; text != "" {
			fmt.Println(text)
		}

	case guiMode:
		session.SetSink(sink)
		session.Run()

	default:
		program := NewTUIProgram(session)
		go session.Run()
		if _, err := program.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "murmur: %v\n", err)
			os.Exit(1)
		}
	}
}

func runSetup() {
	ctx, err := audio.NewContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	dev, err := audio.SelectDevice(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Selected device: %s\n", dev.Name)
	fmt.Printf("Start murmur with: murmur -device %q\n", dev.Name)
}

// findDevice resolves a device by name, or nil for the system default.
func findDevice(ctx audio.Context, name string) (*audio.DeviceInfo, error) {
	if name == "" {
		return nil, nil
	}
	devices, err := ctx.Devices()
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].Name == name {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("no capture device named %q", name)
}
