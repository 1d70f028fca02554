package session

import (
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/physics"
)

// Ball mirrors the ball's dynamic body after each physics step.
type Ball struct {
	Position gamemath.Vec2
	Velocity gamemath.Vec2
	Radius   float64
	Body     *physics.Body
}

// BallController serves the ball and reads its motion back from the world.
// It never integrates the ball itself.
type BallController struct {
	Ball *Ball

	// ImpulseX is the horizontal serve impulse.
	ImpulseX float64
	// ImpulseYMax bounds the vertical serve impulse.
	ImpulseYMax int

	spawn gamemath.Vec2
	world World
	rng   RandomSource
}

// NewBallController creates the ball body on its spawn and adds it to the
// world. The ball waits at rest until Launch.
func NewBallController(world World, spawn arena.BallSpawn, rng RandomSource, cfg Config) *BallController {
	body := physics.NewDynamicBall(spawn.Center, spawn.Radius, TagBall)
	body.Restitution = spawn.Restitution
	world.AddBody(body)

	return &BallController{
		Ball: &Ball{
			Position: spawn.Center,
			Radius:   spawn.Radius,
			Body:     body,
		},
		ImpulseX:    cfg.ServeImpulseX,
		ImpulseYMax: cfg.ServeImpulseYMax,
		spawn:       spawn.Center,
		world:       world,
		rng:         rng,
	}
}

// Launch serves the ball with impulse (ImpulseX, vy) where vy is a uniform
// integer in [-ImpulseYMax, ImpulseYMax] other than zero, and returns the
// impulse applied.
func (c *BallController) Launch() gamemath.Vec2 {
	limit := max(c.ImpulseYMax, 1)

	vy := 0
	for vy == 0 {
		vy = c.rng.IntN(2*limit+1) - limit
	}

	impulse := gamemath.Vec2{X: c.ImpulseX, Y: float64(vy)}
	c.world.ApplyImpulse(c.Ball.Body, impulse)
	c.Ball.Velocity = c.Ball.Body.Velocity()
	return impulse
}

// Update copies the ball's position and velocity from the world.
func (c *BallController) Update(dt float64) {
	c.Ball.Position = c.Ball.Body.Position()
	c.Ball.Velocity = c.Ball.Body.Velocity()
}

// Reset puts the ball back on the serve spot at rest.
func (c *BallController) Reset() {
	c.world.SetPosition(c.Ball.Body, c.spawn)
	c.world.SetVelocity(c.Ball.Body, gamemath.Zero)
	c.Ball.Position = c.spawn
	c.Ball.Velocity = gamemath.Zero
}
