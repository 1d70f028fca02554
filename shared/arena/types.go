// Package arena provides the table layout shared between client and server.
// It has no dependencies on ebitengine, donburi, or resolv — pure data only.
package arena

import (
	"errors"
	"fmt"

	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
)

var (
	ErrNoWalls         = errors.New("arena has no walls")
	ErrNoPaddleSpawns  = errors.New("arena needs a paddle spawn for each player")
	ErrInvalidGoals    = errors.New("arena goal lines must straddle the center")
	ErrInvalidBallSize = errors.New("arena ball radius must be positive")
)

// Layout is the geometry of a table in centered arena units (y up).
type Layout struct {
	Name      string
	Width     float64
	Height    float64
	Walls     []Wall
	Paddles   []PaddleSpawn
	Ball      BallSpawn
	GoalLeft  float64 // Ball x at or below this line scores for player 2
	GoalRight float64 // Ball x at or above this line scores for player 1
}

// Wall is a static boundary box.
type Wall struct {
	Name          string
	Center        gamemath.Vec2
	Width, Height float64
	Restitution   float64
}

// PaddleSpawn is where a paddle starts and returns to after every goal.
type PaddleSpawn struct {
	Player        netconfig.PlayerID
	Center        gamemath.Vec2
	Width, Height float64
	Boundary      float64 // Paddle center may not reach |y| >= Boundary
	Restitution   float64
}

// BallSpawn is the ball's serve position.
type BallSpawn struct {
	Center      gamemath.Vec2
	Radius      float64
	Restitution float64
}

// Paddle returns the spawn for the given player.
func (l *Layout) Paddle(p netconfig.PlayerID) (PaddleSpawn, bool) {
	for _, ps := range l.Paddles {
		if ps.Player == p {
			return ps, true
		}
	}
	return PaddleSpawn{}, false
}

// Validate checks the layout can host a match.
func (l *Layout) Validate() error {
	if len(l.Walls) == 0 {
		return ErrNoWalls
	}
	for _, p := range []netconfig.PlayerID{netconfig.Player1, netconfig.Player2} {
		if _, ok := l.Paddle(p); !ok {
			return fmt.Errorf("%w: missing %s", ErrNoPaddleSpawns, p)
		}
	}
	if l.GoalLeft >= l.Ball.Center.X || l.GoalRight <= l.Ball.Center.X {
		return fmt.Errorf("%w: left=%.1f right=%.1f", ErrInvalidGoals, l.GoalLeft, l.GoalRight)
	}
	if l.Ball.Radius <= 0 {
		return ErrInvalidBallSize
	}
	return nil
}

// Default returns the classic table: a 100x100 court walled in by 10 unit
// thick walls, paddles 40 units either side of the center.
func Default() *Layout {
	return &Layout{
		Name:   "classic",
		Width:  110,
		Height: 110,
		Walls: []Wall{
			{Name: "bottom", Center: gamemath.Vec2{Y: -50}, Width: 100, Height: 10, Restitution: 1},
			{Name: "left", Center: gamemath.Vec2{X: -50}, Width: 10, Height: 100, Restitution: 1},
			{Name: "top", Center: gamemath.Vec2{Y: 50}, Width: 100, Height: 10, Restitution: 1},
			{Name: "right", Center: gamemath.Vec2{X: 50}, Width: 10, Height: 100, Restitution: 1},
		},
		Paddles: []PaddleSpawn{
			{Player: netconfig.Player1, Center: gamemath.Vec2{X: -40}, Width: 3, Height: 10, Boundary: 40, Restitution: 1},
			{Player: netconfig.Player2, Center: gamemath.Vec2{X: 40}, Width: 3, Height: 10, Boundary: 40, Restitution: 1},
		},
		Ball:      BallSpawn{Radius: 1, Restitution: 1.5},
		GoalLeft:  -43,
		GoalRight: 43,
	}
}
