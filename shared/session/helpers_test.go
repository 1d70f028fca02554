package session

import (
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
)

const dt = 1.0 / 60.0

// scriptedRand replays values in order, wrapping around.
type scriptedRand struct {
	values []int
	calls  int
}

func (r *scriptedRand) IntN(n int) int {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v % n
}

// serveUp makes every serve (12, +1): IntN(25)=13 maps to 13-12.
func serveUp() *scriptedRand {
	return &scriptedRand{values: []int{13}}
}

func newTestSession(rng RandomSource) *Session {
	return New(DefaultConfig(), arena.Default(), rng)
}

// placeBall teleports the ball and stops it.
func placeBall(s *Session, at gamemath.Vec2) {
	s.world.SetPosition(s.ball.Ball.Body, at)
	s.world.SetVelocity(s.ball.Ball.Body, gamemath.Zero)
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
