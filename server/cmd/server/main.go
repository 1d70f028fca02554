package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/pong/assets"
	"github.com/automoto/pong/server/core"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/protocol"
	"github.com/automoto/pong/shared/session"
)

func main() {
	port := flag.Uint("port", 7373, "Server port")
	tickRate := flag.Int("tickrate", 60, "Server tick rate (paddle speed is per tick)")
	name := flag.String("name", "Pong Server", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	target := flag.Int("target", 0, "Score that wins a match (0 = endless)")
	spectators := flag.Int("spectators", 8, "Maximum spectators (-1 = unlimited)")
	results := flag.Float64("results", 5, "Seconds the final score is shown before a rematch")
	master := flag.String("master", "", "Master server URL to register with (empty = unlisted)")
	public := flag.String("public", "", "Address clients should dial, required with -master")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	layout, err := arena.Load(assets.Arenas, assets.ClassicArena)
	if err != nil {
		log.Fatalf("Failed to load arena: %v", err)
	}

	cfg := session.DefaultConfig()
	cfg.TargetScore = *target

	server, err := core.NewServer(core.Options{
		Name:          *name,
		Version:       *version,
		TickRate:      *tickRate,
		MaxSpectators: *spectators,
		ResultsDelay:  *results,
		Session:       cfg,
		Layout:        layout,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	var reg *core.Registration
	if *master != "" {
		if *public == "" {
			log.Fatalf("-public is required with -master")
		}
		reg = core.NewRegistration(*master, *public, server)
		reg.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if reg != nil {
			reg.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting Pong server %q on port %d (tick rate: %d/s, version: %s, arena: %s)",
		*name, *port, *tickRate, *version, layout.Name)
	if err := server.Start(ctx, *port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
