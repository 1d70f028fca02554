package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/pong/assets"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/autopilot"
	"github.com/automoto/pong/shared/session"
	"github.com/automoto/pong/tui"
	"github.com/gdamore/tcell/v2"
)

func main() {
	cpu := flag.Bool("cpu", true, "Let the CPU play the right paddle")
	difficulty := flag.String("difficulty", "normal", "CPU difficulty: easy, normal or hard")
	target := flag.Int("target", 7, "Score that wins a match (0 = endless)")
	mute := flag.Bool("mute", false, "Disable sound")
	logPath := flag.String("log", "", "Write logs to this file (the terminal is taken over otherwise)")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	tuning, ok := map[string]autopilot.Tuning{
		"easy":   autopilot.Easy,
		"normal": autopilot.Normal,
		"hard":   autopilot.Hard,
	}[*difficulty]
	if !ok {
		log.SetOutput(os.Stderr)
		log.Fatalf("Unknown difficulty %q", *difficulty)
	}

	layout, err := arena.Load(assets.Arenas, assets.ClassicArena)
	if err != nil {
		log.Printf("[tui] failed to load arena, using the built-in table: %v", err)
		layout = arena.Default()
	}

	cfg := session.DefaultConfig()
	cfg.TargetScore = *target

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to init terminal: %v", err)
	}
	defer screen.Fini()

	var sound *tui.Beeper
	if !*mute {
		sound = tui.NewBeeper()
		defer sound.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer := tui.NewViewer(screen, tui.Options{
		Layout:  layout,
		Session: cfg,
		CPU:     *cpu,
		Tuning:  tuning,
		Sound:   sound,
	})
	if err := viewer.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("[tui] %v", err)
	}
}
