package session

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickBeforeStartDoesNothing(t *testing.T) {
	s := newTestSession(serveUp())

	s.Tick(dt)

	assert.False(t, s.Started())
	assert.Equal(t, uint64(0), s.Ticks())
	assert.Equal(t, gamemath.Zero, s.Ball().Velocity)
}

func TestStartServesOnce(t *testing.T) {
	rng := serveUp()
	s := newTestSession(rng)

	s.Start()
	s.Start()

	assert.Equal(t, 1, rng.calls)
	assert.Equal(t, gamemath.Vec2{X: 12, Y: 1}, s.Ball().Velocity)
	assert.Equal(t, netconfig.RallyInPlay, s.State())
	assert.Equal(t, 1, countEvents(s.DrainEvents(), EventBallLaunched))
}

func TestGoalLinesScore(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want Score
	}{
		{"left line scores for player 2", -43, Score{Player2: 1}},
		{"right line scores for player 1", 43, Score{Player1: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(serveUp())
			s.Start()
			placeBall(s, gamemath.Vec2{X: tt.x})

			s.Tick(dt)

			assert.Equal(t, tt.want, s.Score())
			assert.Equal(t, netconfig.RallyRespawning, s.State())
			assert.Equal(t, RespawnTimer{Remaining: 1.5, Active: true}, s.Respawn())
		})
	}
}

func TestBallInsideGoalLinesDoesNotScore(t *testing.T) {
	s := newTestSession(serveUp())
	s.Start()
	placeBall(s, gamemath.Vec2{X: 42.9})

	s.Tick(dt)

	assert.Equal(t, Score{}, s.Score())
	assert.Equal(t, netconfig.RallyInPlay, s.State())
}

func TestGoalScoresOnceWhileRespawning(t *testing.T) {
	s := newTestSession(serveUp())
	s.Start()
	placeBall(s, gamemath.Vec2{X: -43})
	s.Tick(dt)
	require.Equal(t, Score{Player2: 1}, s.Score())

	for i := 0; i < 30; i++ {
		placeBall(s, gamemath.Vec2{X: -44})
		s.Tick(dt)
	}

	assert.Equal(t, Score{Player2: 1}, s.Score())
	assert.Equal(t, 1, countEvents(s.DrainEvents(), EventGoal))
}

func TestGoalResetsBallAndPaddles(t *testing.T) {
	s := newTestSession(serveUp())
	s.Start()
	s.MoveUp(netconfig.Player1)
	s.MoveDown(netconfig.Player2)
	for i := 0; i < 10; i++ {
		s.Tick(dt)
	}
	require.NotZero(t, s.Paddle(netconfig.Player1).PositionY)

	placeBall(s, gamemath.Vec2{X: 43})
	s.Tick(dt)

	snap := s.Snapshot()
	assert.Equal(t, gamemath.Zero, snap.Ball.Position)
	assert.Equal(t, gamemath.Zero, snap.Ball.Velocity)
	assert.Equal(t, gamemath.Vec2{X: -40}, snap.Paddles[0].Position)
	assert.Equal(t, gamemath.Vec2{X: 40}, snap.Paddles[1].Position)
	assert.Zero(t, snap.Paddles[0].VelocityY)
	assert.Zero(t, snap.Paddles[1].VelocityY)
}

func TestRespawnFiresOnceAfterDelay(t *testing.T) {
	const step = 0.25

	s := newTestSession(serveUp())
	s.Start()
	s.DrainEvents()
	placeBall(s, gamemath.Vec2{X: -43})
	s.Tick(step)
	require.Equal(t, netconfig.RallyRespawning, s.State())

	for i := 0; i < 5; i++ {
		s.Tick(step)
		require.True(t, s.Respawn().Active, "tick %d", i)
		require.Equal(t, gamemath.Zero, s.Ball().Position)
	}
	assert.InDelta(t, 0.25, s.Respawn().Remaining, 1e-12)

	s.Tick(step)
	assert.Equal(t, RespawnTimer{Remaining: 1.5, Active: false}, s.Respawn())
	assert.Equal(t, netconfig.RallyInPlay, s.State())

	s.Tick(step)
	s.Tick(step)
	assert.Equal(t, 1, countEvents(s.DrainEvents(), EventBallLaunched))
}

func TestRespawnAtSixtyTicksPerSecond(t *testing.T) {
	s := newTestSession(serveUp())
	s.Start()
	placeBall(s, gamemath.Vec2{X: 43})
	s.Tick(dt)
	s.DrainEvents()

	for i := 0; i < 89; i++ {
		s.Tick(dt)
	}
	require.True(t, s.Respawn().Active)
	assert.Zero(t, countEvents(s.DrainEvents(), EventBallLaunched))

	s.Tick(dt)
	assert.False(t, s.Respawn().Active)
	assert.Equal(t, 1, countEvents(s.DrainEvents(), EventBallLaunched))
	assert.Equal(t, gamemath.Vec2{X: 12, Y: 1}, s.Ball().Velocity)
}

func TestIntentsAreLastWriteWins(t *testing.T) {
	s := newTestSession(serveUp())
	s.Start()

	s.MoveUp(netconfig.Player1)
	s.MoveDown(netconfig.Player1)
	s.MoveUp(netconfig.PlayerNone)
	s.Tick(dt)

	p1 := s.Paddle(netconfig.Player1)
	assert.Equal(t, -0.5, p1.VelocityY)
	assert.Equal(t, -0.5, p1.PositionY)
	assert.Zero(t, s.Paddle(netconfig.Player2).VelocityY)
}

func TestPaddleKeepsMovingWithoutNewIntent(t *testing.T) {
	s := newTestSession(serveUp())
	s.Start()

	s.MoveUp(netconfig.Player2)
	for i := 0; i < 4; i++ {
		s.Tick(dt)
	}
	assert.Equal(t, 2.0, s.Paddle(netconfig.Player2).PositionY)

	s.StopPaddle(netconfig.Player2)
	s.Tick(dt)
	assert.Equal(t, 2.0, s.Paddle(netconfig.Player2).PositionY)
}

func TestWallHitEmitsEvent(t *testing.T) {
	s := newTestSession(serveUp())
	s.Start()
	s.DrainEvents()
	placeBall(s, gamemath.Vec2{Y: 40})
	s.world.SetVelocity(s.ball.Ball.Body, gamemath.Vec2{Y: 12})

	var events []Event
	for i := 0; i < 60 && countEvents(events, EventWallHit) == 0; i++ {
		s.Tick(dt)
		events = append(events, s.DrainEvents()...)
	}

	require.Equal(t, 1, countEvents(events, EventWallHit))
	assert.InDelta(t, -15, s.Ball().Velocity.Y, 1e-9)
}

func TestEndToEndPlayerTwoScores(t *testing.T) {
	s := newTestSession(serveUp())
	assert.Equal(t, Score{}, s.Score())
	s.Start()

	var events []Event
	for i := 0; i < 60*20 && s.State() == netconfig.RallyInPlay; i++ {
		s.Tick(dt)
		events = append(events, s.DrainEvents()...)
	}

	// The serve goes right, comes back off the right paddle faster and
	// climbs past the left paddle.
	require.Equal(t, netconfig.RallyRespawning, s.State())
	assert.Equal(t, Score{Player1: 0, Player2: 1}, s.Score())
	assert.Equal(t, gamemath.Zero, s.Ball().Position)
	assert.Equal(t, gamemath.Vec2{X: -40}, s.Paddle(netconfig.Player1).Position())
	assert.Equal(t, gamemath.Vec2{X: 40}, s.Paddle(netconfig.Player2).Position())
	assert.True(t, s.Respawn().Active)

	require.Equal(t, 1, countEvents(events, EventPaddleHit))
	for _, e := range events {
		if e.Kind == EventPaddleHit {
			assert.Equal(t, netconfig.Player2, e.Player)
		}
		if e.Kind == EventGoal {
			assert.Equal(t, netconfig.Player2, e.Player)
			assert.LessOrEqual(t, e.Position.X, -43.0)
		}
	}
	assert.Equal(t, 1, s.Snapshot().LongestRally)
}

func TestTargetScoreFinishesMatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetScore = 2
	s := New(cfg, nil, serveUp())
	s.Start()

	for goal := 0; goal < 2; goal++ {
		placeBall(s, gamemath.Vec2{X: 43})
		s.Tick(dt)
		for i := 0; i < 90 && s.State() == netconfig.RallyRespawning; i++ {
			s.Tick(dt)
		}
	}

	assert.Equal(t, netconfig.RallyFinished, s.State())
	assert.Equal(t, netconfig.Player1, s.Winner())
	assert.Equal(t, Score{Player1: 2}, s.Score())
	assert.False(t, s.Respawn().Active)

	events := s.DrainEvents()
	assert.Equal(t, 1, countEvents(events, EventMatchWon))

	for i := 0; i < 200; i++ {
		s.Tick(dt)
	}
	assert.Empty(t, s.DrainEvents())
	assert.Equal(t, gamemath.Zero, s.Ball().Position)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSession(serveUp())
	s.Start()
	snap := s.Snapshot()

	for i := 0; i < 10; i++ {
		s.Tick(dt)
	}

	assert.Equal(t, gamemath.Zero, snap.Ball.Position)
	assert.NotEqual(t, snap.Ball.Position, s.Snapshot().Ball.Position)
	assert.Equal(t, netconfig.Player1, snap.Paddles[0].Side)
	assert.Equal(t, 3.0, snap.Paddles[0].Width)
	assert.Equal(t, 10.0, snap.Paddles[0].Height)
}

func TestBallStaysInsideCourt(t *testing.T) {
	seeds := 200
	if testing.Short() {
		seeds = 20
	}

	// Inner wall faces are at ±45 and the ball radius is 1.
	const limit = 44 + 1e-6

	for seed := uint64(0); seed < uint64(seeds); seed++ {
		s := newTestSession(rand.New(rand.NewPCG(seed, 1)))
		moves := rand.New(rand.NewPCG(seed, 2))
		s.Start()

		for i := 0; i < 60*120; i++ {
			for _, p := range []netconfig.PlayerID{netconfig.Player1, netconfig.Player2} {
				switch moves.IntN(8) {
				case 0:
					s.MoveUp(p)
				case 1:
					s.MoveDown(p)
				case 2:
					s.StopPaddle(p)
				}
			}
			s.Tick(dt)

			pos := s.Ball().Position
			if math.Abs(pos.Y) > limit || math.Abs(pos.X) > limit {
				t.Fatalf("seed %d tick %d: ball left the court at %v moving %v", seed, i, pos, s.Ball().Velocity)
			}
		}
	}
}
