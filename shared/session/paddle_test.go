package session

import (
	"testing"

	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaddle(t *testing.T) (*physics.World, *PaddleController) {
	t.Helper()
	w := physics.NewWorld(110, 110)
	spawn, ok := arena.Default().Paddle(netconfig.Player1)
	require.True(t, ok)
	return w, NewPaddleController(w, spawn, 0.5)
}

func TestPaddleMoveSetsVelocity(t *testing.T) {
	_, c := newTestPaddle(t)

	c.MoveUp()
	assert.Equal(t, 0.5, c.Paddle.VelocityY)

	c.MoveDown()
	assert.Equal(t, -0.5, c.Paddle.VelocityY)

	c.Stop()
	assert.Equal(t, 0.0, c.Paddle.VelocityY)
}

func TestPaddleUpdateMovesOneStepPerTick(t *testing.T) {
	w, c := newTestPaddle(t)
	c.MoveUp()

	c.Update(dt)
	assert.Equal(t, 0.5, c.Paddle.PositionY)

	// The body follows on the next physics step.
	w.Step(dt)
	assert.Equal(t, gamemath.Vec2{X: -40, Y: 0.5}, c.Paddle.Body.Position())
}

func TestPaddleReversesAtBoundaryWithoutMoving(t *testing.T) {
	_, c := newTestPaddle(t)
	c.Paddle.PositionY = 39.8
	c.Paddle.VelocityY = 0.5

	c.Update(dt)
	assert.Equal(t, 39.8, c.Paddle.PositionY)
	assert.Equal(t, -0.5, c.Paddle.VelocityY)

	c.Update(dt)
	assert.InDelta(t, 39.3, c.Paddle.PositionY, 1e-9)
	assert.Equal(t, -0.5, c.Paddle.VelocityY)
}

func TestPaddleReversesAtLowerBoundary(t *testing.T) {
	_, c := newTestPaddle(t)
	c.Paddle.PositionY = -39.5
	c.Paddle.VelocityY = -0.5

	// -40 is on the bound and is rejected as well.
	c.Update(dt)
	assert.Equal(t, -39.5, c.Paddle.PositionY)
	assert.Equal(t, 0.5, c.Paddle.VelocityY)
}

func TestPaddleResetReturnsToSpawnAtRest(t *testing.T) {
	w, c := newTestPaddle(t)
	c.MoveDown()
	for i := 0; i < 20; i++ {
		c.Update(dt)
		w.Step(dt)
	}
	require.NotZero(t, c.Paddle.PositionY)

	c.Reset()

	assert.Equal(t, 0.0, c.Paddle.PositionY)
	assert.Equal(t, 0.0, c.Paddle.VelocityY)
	assert.Equal(t, gamemath.Vec2{X: -40}, c.Paddle.Body.Position())
}
