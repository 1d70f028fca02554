// Package autopilot steers a paddle from the ball's position. It drives a
// session through the same MoveUp/MoveDown/StopPaddle calls a player makes,
// so the ebiten client and the terminal viewer share one CPU opponent.
package autopilot

import (
	"math"

	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
)

// Intent is the last movement the pilot asked for.
type Intent int

const (
	Idle Intent = iota
	Up
	Down
)

// Tuning holds the values that make one difficulty harder than another.
type Tuning struct {
	ReactionDelay int     // Ticks between decisions
	Tolerance     float64 // Units the ball may be off-center before the paddle moves
	Predict       bool    // Follow the projected intercept instead of the ball itself
	CenterOnIdle  bool    // Drift back to the middle while the ball moves away
}

var (
	Easy = Tuning{
		ReactionDelay: 18, // 0.3 second reaction time
		Tolerance:     4,
	}
	Normal = Tuning{
		ReactionDelay: 8,
		Tolerance:     2.5,
		CenterOnIdle:  true,
	}
	Hard = Tuning{
		ReactionDelay: 2,
		Tolerance:     1.5,
		Predict:       true,
		CenterOnIdle:  true,
	}
)

// Pilot is a self-contained CPU paddle for loops that have no ECS.
type Pilot struct {
	Side    netconfig.PlayerID
	Tuning  Tuning
	Intent  Intent
	TargetY float64

	timer int
}

// Step decides at most once every ReactionDelay calls and applies the
// decision to s. Call it once per tick, before s.Tick.
func (p *Pilot) Step(s *session.Session) {
	if p.timer > 0 {
		p.timer--
		return
	}
	p.timer = p.Tuning.ReactionDelay
	p.Intent, p.TargetY = Decide(p.Side, p.Tuning, s.Snapshot(), InnerHalfHeight(s.Layout()))
	Apply(s, p.Side, p.Intent)
}

// Apply issues the session command matching intent.
func Apply(s *session.Session, side netconfig.PlayerID, intent Intent) {
	switch intent {
	case Up:
		s.MoveUp(side)
	case Down:
		s.MoveDown(side)
	default:
		s.StopPaddle(side)
	}
}

// Decide picks a direction for side's paddle and the y it is chasing.
func Decide(side netconfig.PlayerID, tuning Tuning, snap session.Snapshot, limit float64) (Intent, float64) {
	idx := side.Index()
	if idx < 0 {
		return Idle, 0
	}
	paddle := snap.Paddles[idx].Position
	ball := snap.Ball

	target := paddle.Y
	switch {
	case snap.State == netconfig.RallyInPlay && approaching(ball.Position.X, ball.Velocity.X, paddle.X):
		target = ball.Position.Y
		if tuning.Predict {
			target = PredictIntercept(ball.Position, ball.Velocity, paddle.X, limit, ball.Radius)
		}
	case tuning.CenterOnIdle:
		target = 0
	}

	diff := target - paddle.Y
	switch {
	case math.Abs(diff) <= tuning.Tolerance:
		return Idle, target
	case diff > 0:
		return Up, target
	default:
		return Down, target
	}
}

// approaching reports whether a ball at x moving at vx heads toward paddleX.
func approaching(x, vx, paddleX float64) bool {
	if vx == 0 {
		return false
	}
	return (paddleX-x)*vx > 0
}

// PredictIntercept projects the ball to targetX, folding the path off the
// walls at +-limit. The ball center never gets closer than radius to a wall.
func PredictIntercept(pos, vel gamemath.Vec2, targetX, limit, radius float64) float64 {
	if vel.X == 0 {
		return pos.Y
	}
	t := (targetX - pos.X) / vel.X
	if t < 0 {
		return pos.Y
	}
	y := pos.Y + vel.Y*t

	l := limit - radius
	if l <= 0 {
		return y
	}
	period := 4 * l
	m := math.Mod(y+l, period)
	if m < 0 {
		m += period
	}
	if m > 2*l {
		m = period - m
	}
	return m - l
}

// InnerHalfHeight is the distance from the center to the inside face of the
// top and bottom walls.
func InnerHalfHeight(layout *arena.Layout) float64 {
	best := math.Inf(1)
	for _, w := range layout.Walls {
		if w.Width <= w.Height {
			continue
		}
		inner := math.Abs(w.Center.Y) - w.Height/2
		if inner > 0 && inner < best {
			best = inner
		}
	}
	if math.IsInf(best, 1) {
		return layout.Height / 2
	}
	return best
}
