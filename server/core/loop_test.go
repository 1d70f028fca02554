package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type loopProbe struct {
	steps []float64
	syncs int
	err   error
}

func (p *loopProbe) loop(tickRate int) *GameLoop {
	return newLoop(
		func(dt float64) { p.steps = append(p.steps, dt) },
		func() error { p.syncs++; return p.err },
		tickRate,
	)
}

func TestAdvanceRunsWholeSteps(t *testing.T) {
	var p loopProbe
	g := p.loop(50)

	rest := g.advance(45 * time.Millisecond)

	assert.Equal(t, []float64{0.02, 0.02}, p.steps)
	assert.Equal(t, 5*time.Millisecond, rest)
	assert.Equal(t, 1, p.syncs)
}

func TestAdvanceWithoutStepSkipsSync(t *testing.T) {
	var p loopProbe
	g := p.loop(50)

	rest := g.advance(10 * time.Millisecond)

	assert.Empty(t, p.steps)
	assert.Zero(t, p.syncs)
	assert.Equal(t, 10*time.Millisecond, rest)
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	var p loopProbe
	g := p.loop(100)

	rest := g.advance(time.Second)

	assert.Len(t, p.steps, maxCatchUp)
	assert.Zero(t, rest)
}

func TestAdvanceSurvivesSyncError(t *testing.T) {
	p := loopProbe{err: errors.New("no clients")}
	g := p.loop(10)

	assert.NotPanics(t, func() { g.advance(100 * time.Millisecond) })
	assert.Len(t, p.steps, 1)
}

func TestRunStopsOnContextAndStop(t *testing.T) {
	var p loopProbe
	g := p.loop(1000)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on cancel")
	}

	g.Stop()
	g.Stop()
}
