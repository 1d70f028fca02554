package session

import (
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/physics"
)

// World is the physics collaborator the controllers drive. *physics.World
// implements it.
type World interface {
	AddBody(b *physics.Body)
	SetKinematicTarget(b *physics.Body, target gamemath.Vec2)
	ApplyImpulse(b *physics.Body, impulse gamemath.Vec2)
	SetPosition(b *physics.Body, p gamemath.Vec2)
	SetVelocity(b *physics.Body, v gamemath.Vec2)
	Step(dt float64) []physics.Contact
}

var _ World = (*physics.World)(nil)

// RandomSource yields integers in [0, n). *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Body tags used in the physics world.
const (
	TagWall   = "wall"
	TagPaddle = "paddle"
	TagBall   = "ball"
)
