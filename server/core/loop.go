package core

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

// maxCatchUp bounds how many fixed steps one wakeup may run after a stall.
const maxCatchUp = 5

// GameLoop advances the match in fixed steps of 1/tickRate seconds and
// broadcasts the world after each wakeup.
type GameLoop struct {
	step     func(dt float64)
	flush    func() error
	tickRate int
	dt       time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return newLoop(server.step, srvsync.DoSync, tickRate)
}

func newLoop(step func(dt float64), doSync func() error, tickRate int) *GameLoop {
	return &GameLoop{
		step:     step,
		flush:    doSync,
		tickRate: tickRate,
		dt:       time.Second / time.Duration(tickRate),
		stopChan: make(chan struct{}),
	}
}

// Run blocks until ctx is done or Stop is called.
func (g *GameLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(g.dt)
	defer ticker.Stop()

	log.Printf("[server] game loop started at %d ticks/second", g.tickRate)

	var pending time.Duration
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Println("[server] game loop stopped")
			return
		case <-g.stopChan:
			log.Println("[server] game loop stopped")
			return
		case now := <-ticker.C:
			pending += now.Sub(last)
			last = now
			pending = g.advance(pending)
		}
	}
}

// advance runs every whole step covered by pending and returns the remainder.
func (g *GameLoop) advance(pending time.Duration) time.Duration {
	steps := int(pending / g.dt)
	if steps > maxCatchUp {
		log.Printf("[server] loop fell behind by %d ticks, skipping", steps-maxCatchUp)
		steps = maxCatchUp
		pending = time.Duration(steps) * g.dt
	}
	for i := 0; i < steps; i++ {
		g.step(g.dt.Seconds())
	}
	pending -= time.Duration(steps) * g.dt

	if steps > 0 {
		if err := g.flush(); err != nil {
			log.Printf("[server] sync error: %v", err)
		}
	}
	return pending
}

func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}
