package session

import (
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/physics"
)

// Paddle is the state of one paddle. X never changes after creation.
type Paddle struct {
	Side      netconfig.PlayerID
	X         float64
	PositionY float64
	VelocityY float64 // Units per tick
	MinY      float64
	MaxY      float64
	Body      *physics.Body
}

// Position returns the paddle center.
func (p *Paddle) Position() gamemath.Vec2 {
	return gamemath.Vec2{X: p.X, Y: p.PositionY}
}

// PaddleController moves a paddle in response to move intents.
type PaddleController struct {
	Paddle *Paddle
	Speed  float64

	spawn arena.PaddleSpawn
	world World
}

// NewPaddleController creates the paddle body at its spawn and adds it to
// the world.
func NewPaddleController(world World, spawn arena.PaddleSpawn, speed float64) *PaddleController {
	body := physics.NewKinematicBox(spawn.Center, spawn.Width, spawn.Height, TagPaddle)
	body.Restitution = spawn.Restitution
	body.Data = spawn.Player
	world.AddBody(body)

	return &PaddleController{
		Paddle: &Paddle{
			Side:      spawn.Player,
			X:         spawn.Center.X,
			PositionY: spawn.Center.Y,
			MinY:      -spawn.Boundary,
			MaxY:      spawn.Boundary,
			Body:      body,
		},
		Speed: speed,
		spawn: spawn,
		world: world,
	}
}

// MoveUp sets the paddle moving up at Speed.
func (c *PaddleController) MoveUp() {
	c.Paddle.VelocityY = c.Speed
}

// MoveDown sets the paddle moving down at Speed.
func (c *PaddleController) MoveDown() {
	c.Paddle.VelocityY = -c.Speed
}

// Stop halts the paddle.
func (c *PaddleController) Stop() {
	c.Paddle.VelocityY = 0
}

// Update advances the paddle one tick. A move that would reach a bound is
// dropped and the paddle turns around, so it reverses one tick after
// touching the limit rather than being clamped onto it.
func (c *PaddleController) Update(dt float64) {
	p := c.Paddle
	proposed := p.PositionY + p.VelocityY
	if proposed <= p.MinY || proposed >= p.MaxY {
		p.VelocityY = -p.VelocityY
	} else {
		p.PositionY = proposed
	}
	c.world.SetKinematicTarget(p.Body, p.Position())
}

// Reset returns the paddle to its spawn at rest.
func (c *PaddleController) Reset() {
	c.Paddle.PositionY = c.spawn.Center.Y
	c.Paddle.VelocityY = 0
	c.world.SetPosition(c.Paddle.Body, c.Paddle.Position())
	c.world.SetVelocity(c.Paddle.Body, gamemath.Zero)
}
