package physics

import (
	"testing"

	"github.com/automoto/pong/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

func newTestWorld() *World {
	return NewWorld(110, 110)
}

func TestImpulseSetsVelocityByMass(t *testing.T) {
	w := newTestWorld()
	ball := NewDynamicBall(gamemath.Zero, 1, "ball")
	ball.Mass = 2
	w.AddBody(ball)

	w.ApplyImpulse(ball, gamemath.Vec2{X: 12, Y: -4})

	assert.Equal(t, gamemath.Vec2{X: 6, Y: -2}, ball.Velocity())
}

func TestImpulseIgnoredOnNonDynamicBodies(t *testing.T) {
	w := newTestWorld()
	wall := NewStaticBox(gamemath.Vec2{Y: 50}, 100, 10, "wall")
	w.AddBody(wall)

	w.ApplyImpulse(wall, gamemath.Vec2{X: 5})

	assert.Equal(t, gamemath.Zero, wall.Velocity())
}

func TestDynamicBodyIntegratesVelocity(t *testing.T) {
	w := newTestWorld()
	ball := NewDynamicBall(gamemath.Zero, 1, "ball")
	w.AddBody(ball)
	w.SetVelocity(ball, gamemath.Vec2{X: 12, Y: 6})

	for i := 0; i < 60; i++ {
		w.Step(dt)
	}

	pos := ball.Position()
	assert.InDelta(t, 12, pos.X, 1e-6)
	assert.InDelta(t, 6, pos.Y, 1e-6)
}

func TestKinematicTargetAppliedOnNextStep(t *testing.T) {
	w := newTestWorld()
	paddle := NewKinematicBox(gamemath.Vec2{X: -40}, 3, 10, "paddle")
	w.AddBody(paddle)

	w.SetKinematicTarget(paddle, gamemath.Vec2{X: -40, Y: 0.5})
	assert.Equal(t, gamemath.Vec2{X: -40}, paddle.Position(), "target must not move the body before the step")

	w.Step(dt)
	assert.Equal(t, gamemath.Vec2{X: -40, Y: 0.5}, paddle.Position())
	assert.InDelta(t, 30, paddle.Velocity().Y, 1e-9)

	// Without a new target the paddle rests.
	w.Step(dt)
	assert.Equal(t, gamemath.Vec2{X: -40, Y: 0.5}, paddle.Position())
	assert.Equal(t, gamemath.Zero, paddle.Velocity())
}

func TestSetPositionDropsPendingTarget(t *testing.T) {
	w := newTestWorld()
	paddle := NewKinematicBox(gamemath.Vec2{X: 40}, 3, 10, "paddle")
	w.AddBody(paddle)

	w.SetKinematicTarget(paddle, gamemath.Vec2{X: 40, Y: 10})
	w.SetPosition(paddle, gamemath.Vec2{X: 40})
	w.Step(dt)

	assert.Equal(t, gamemath.Vec2{X: 40}, paddle.Position())
}

func TestBallBouncesOffWallWithAveragedRestitution(t *testing.T) {
	w := newTestWorld()
	top := NewStaticBox(gamemath.Vec2{Y: 50}, 100, 10, "wall")
	ball := NewDynamicBall(gamemath.Vec2{Y: 40}, 1, "ball")
	ball.Restitution = 1.5
	w.AddBody(top)
	w.AddBody(ball)
	w.SetVelocity(ball, gamemath.Vec2{Y: 12})

	var contacts []Contact
	for i := 0; i < 60 && len(contacts) == 0; i++ {
		contacts = append(contacts, w.Step(dt)...)
	}

	require.Len(t, contacts, 1)
	assert.Same(t, ball, contacts[0].Body)
	assert.Same(t, top, contacts[0].Other)
	assert.Equal(t, gamemath.Vec2{Y: -1}, contacts[0].Normal)
	assert.InDelta(t, -15, ball.Velocity().Y, 1e-9)
	// Ball rests flush against the wall's inner face at y=45.
	assert.LessOrEqual(t, ball.Position().Y+1, 45.0+1e-6)
}

func TestBallBouncesOffPaddle(t *testing.T) {
	w := newTestWorld()
	paddle := NewKinematicBox(gamemath.Vec2{X: 40}, 3, 10, "paddle")
	ball := NewDynamicBall(gamemath.Vec2{X: 30}, 1, "ball")
	w.AddBody(paddle)
	w.AddBody(ball)
	w.SetVelocity(ball, gamemath.Vec2{X: 12})

	hit := false
	for i := 0; i < 120 && !hit; i++ {
		for _, c := range w.Step(dt) {
			if c.Other == paddle {
				hit = true
			}
		}
	}

	require.True(t, hit)
	assert.InDelta(t, -12, ball.Velocity().X, 1e-9)
	assert.LessOrEqual(t, ball.Position().X, 37.5+1e-6)
}

func TestMaxSpeedClampsDynamicBodies(t *testing.T) {
	w := newTestWorld()
	w.MaxSpeed = 10
	ball := NewDynamicBall(gamemath.Zero, 1, "ball")
	w.AddBody(ball)

	w.ApplyImpulse(ball, gamemath.Vec2{X: 30, Y: 40})

	assert.InDelta(t, 10, ball.Velocity().Len(), 1e-9)
}

func TestForeignBodyPanics(t *testing.T) {
	w := newTestWorld()
	other := newTestWorld()
	ball := NewDynamicBall(gamemath.Zero, 1, "ball")
	other.AddBody(ball)

	assert.Panics(t, func() { w.SetVelocity(ball, gamemath.Zero) })
	assert.Panics(t, func() { other.AddBody(ball) })
}

func TestKinematicTargetOnStaticPanics(t *testing.T) {
	w := newTestWorld()
	wall := NewStaticBox(gamemath.Zero, 10, 10, "wall")
	w.AddBody(wall)

	assert.Panics(t, func() { w.SetKinematicTarget(wall, gamemath.Vec2{Y: 1}) })
}

func TestBallNeverPassesAFaceItStartsCloseTo(t *testing.T) {
	tests := []struct {
		name     string
		obstacle func() *Body
		start    gamemath.Vec2
		velocity gamemath.Vec2
		// depth is how far past the obstacle face the ball's leading edge is;
		// it must never become positive.
		depth func(p gamemath.Vec2) float64
	}{
		{
			name:     "top wall head-on",
			obstacle: func() *Body { return NewStaticBox(gamemath.Vec2{Y: 50}, 100, 10, "wall") },
			start:    gamemath.Vec2{Y: 43.98},
			velocity: gamemath.Vec2{Y: 7},
			depth:    func(p gamemath.Vec2) float64 { return p.Y + 1 - 45 },
		},
		{
			name:     "top wall oblique",
			obstacle: func() *Body { return NewStaticBox(gamemath.Vec2{Y: 50}, 100, 10, "wall") },
			start:    gamemath.Vec2{X: -10, Y: 43.95},
			velocity: gamemath.Vec2{X: -15, Y: 8},
			depth:    func(p gamemath.Vec2) float64 { return p.Y + 1 - 45 },
		},
		{
			name:     "bottom wall oblique",
			obstacle: func() *Body { return NewStaticBox(gamemath.Vec2{Y: -50}, 100, 10, "wall") },
			start:    gamemath.Vec2{X: 5, Y: -43.99},
			velocity: gamemath.Vec2{X: 20, Y: -3},
			depth:    func(p gamemath.Vec2) float64 { return -45 - (p.Y - 1) },
		},
		{
			name:     "right wall",
			obstacle: func() *Body { return NewStaticBox(gamemath.Vec2{X: 50}, 10, 100, "wall") },
			start:    gamemath.Vec2{X: 43.95, Y: 3},
			velocity: gamemath.Vec2{X: 7, Y: 3},
			depth:    func(p gamemath.Vec2) float64 { return p.X + 1 - 45 },
		},
		{
			name:     "left wall",
			obstacle: func() *Body { return NewStaticBox(gamemath.Vec2{X: -50}, 10, 100, "wall") },
			start:    gamemath.Vec2{X: -43.97},
			velocity: gamemath.Vec2{X: -12, Y: -1},
			depth:    func(p gamemath.Vec2) float64 { return -45 - (p.X - 1) },
		},
		{
			name:     "paddle face",
			obstacle: func() *Body { return NewKinematicBox(gamemath.Vec2{X: 40}, 3, 10, "paddle") },
			start:    gamemath.Vec2{X: 37.45},
			velocity: gamemath.Vec2{X: 12, Y: 2},
			depth:    func(p gamemath.Vec2) float64 { return p.X + 1 - 38.5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			obstacle := tt.obstacle()
			ball := NewDynamicBall(tt.start, 1, "ball")
			w.AddBody(obstacle)
			w.AddBody(ball)
			w.SetVelocity(ball, tt.velocity)

			hits := 0
			for i := 0; i < 120; i++ {
				for _, c := range w.Step(dt) {
					if c.Other == obstacle {
						hits++
					}
				}
				require.LessOrEqual(t, tt.depth(ball.Position()), 1e-6, "step %d at %v", i, ball.Position())
			}
			assert.Equal(t, 1, hits)
		})
	}
}

func TestPaddleSteppingOntoRestingBallPushesItOut(t *testing.T) {
	w := newTestWorld()
	paddle := NewKinematicBox(gamemath.Vec2{X: 40}, 3, 10, "paddle")
	ball := NewDynamicBall(gamemath.Vec2{X: 40, Y: 6.2}, 1, "ball")
	w.AddBody(paddle)
	w.AddBody(ball)

	for i := 1; i <= 5; i++ {
		w.SetKinematicTarget(paddle, gamemath.Vec2{X: 40, Y: 0.5 * float64(i)})
		contacts := w.Step(dt)

		top := paddle.Position().Y + 5
		require.GreaterOrEqual(t, ball.Position().Y-1, top-1e-6, "step %d", i)
		assert.Empty(t, contacts, "a resting ball is pushed, not bounced")
	}
	assert.Equal(t, gamemath.Zero, ball.Velocity())
}

func TestPaddleSteppingOntoMovingBallReflectsIt(t *testing.T) {
	w := newTestWorld()
	paddle := NewKinematicBox(gamemath.Vec2{X: 40}, 3, 10, "paddle")
	ball := NewDynamicBall(gamemath.Vec2{X: 40, Y: 6.2}, 1, "ball")
	w.AddBody(paddle)
	w.AddBody(ball)
	w.SetVelocity(ball, gamemath.Vec2{Y: -1})

	w.SetKinematicTarget(paddle, gamemath.Vec2{X: 40, Y: 0.5})
	contacts := w.Step(dt)

	require.Len(t, contacts, 1)
	assert.Same(t, paddle, contacts[0].Other)
	assert.Equal(t, gamemath.Vec2{Y: 1}, contacts[0].Normal)
	assert.InDelta(t, 1, ball.Velocity().Y, 1e-9)
	assert.GreaterOrEqual(t, ball.Position().Y-1, 5.5-1e-6)
}

func TestBallOverlappingWallIsPushedBackIn(t *testing.T) {
	w := newTestWorld()
	top := NewStaticBox(gamemath.Vec2{Y: 50}, 100, 10, "wall")
	ball := NewDynamicBall(gamemath.Vec2{Y: 44.5}, 1, "ball")
	w.AddBody(top)
	w.AddBody(ball)
	w.SetVelocity(ball, gamemath.Vec2{X: 3, Y: 6})

	contacts := w.Step(dt)

	require.Len(t, contacts, 1)
	assert.Same(t, top, contacts[0].Other)
	assert.Equal(t, gamemath.Vec2{Y: -1}, contacts[0].Normal)
	assert.Negative(t, ball.Velocity().Y)
	assert.LessOrEqual(t, ball.Position().Y, 44.0)
}
