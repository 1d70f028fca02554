package physics

import (
	"github.com/automoto/pong/shared/gamemath"
	"github.com/solarlune/resolv"
)

// BodyKind selects how the world moves a body.
type BodyKind int

const (
	// Static bodies never move (walls).
	Static BodyKind = iota
	// Kinematic bodies are moved by SetKinematicTarget (paddles).
	Kinematic
	// Dynamic bodies are integrated from their velocity and bounce off
	// everything else (the ball).
	Dynamic
)

func (k BodyKind) String() string {
	switch k {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Body is an axis-aligned box tracked by a World. Position is the center of
// the box in arena units.
type Body struct {
	Kind        BodyKind
	Tag         string
	Width       float64
	Height      float64
	Mass        float64
	Restitution float64

	// Data links the body back to its owner (paddle, wall, ball).
	Data any

	position  gamemath.Vec2
	velocity  gamemath.Vec2
	target    gamemath.Vec2
	hasTarget bool

	object *resolv.Object
	world  *World
}

// NewStaticBox creates a wall-like body.
func NewStaticBox(center gamemath.Vec2, w, h float64, tag string) *Body {
	return newBody(Static, center, w, h, tag)
}

// NewKinematicBox creates a body driven by kinematic targets.
func NewKinematicBox(center gamemath.Vec2, w, h float64, tag string) *Body {
	return newBody(Kinematic, center, w, h, tag)
}

// NewDynamicBall creates a dynamic body whose bounding box is the ball's
// diameter on both axes.
func NewDynamicBall(center gamemath.Vec2, radius float64, tag string) *Body {
	return newBody(Dynamic, center, radius*2, radius*2, tag)
}

func newBody(kind BodyKind, center gamemath.Vec2, w, h float64, tag string) *Body {
	return &Body{
		Kind:        kind,
		Tag:         tag,
		Width:       w,
		Height:      h,
		Mass:        1,
		Restitution: 1,
		position:    center,
	}
}

// Position returns the body's center after the last step.
func (b *Body) Position() gamemath.Vec2 {
	return b.position
}

// Velocity returns the body's velocity in units per second.
func (b *Body) Velocity() gamemath.Vec2 {
	return b.velocity
}

// InWorld reports whether the body has been added to a world.
func (b *Body) InWorld() bool {
	return b.world != nil
}

// Contact records a dynamic body bouncing off another body during a step.
type Contact struct {
	Body   *Body
	Other  *Body
	Normal gamemath.Vec2
}
