package messages

import "github.com/automoto/pong/shared/netconfig"

// GoalEvent is broadcast when a goal is scored.
type GoalEvent struct {
	Scorer           netconfig.PlayerID
	Player1, Player2 int
}

// HitEvent is broadcast when the ball bounces off a paddle or a wall.
type HitEvent struct {
	Paddle netconfig.PlayerID // PlayerNone for walls
	X, Y   float64
}

// ServeEvent is broadcast when the ball is launched.
type ServeEvent struct {
	ImpulseX, ImpulseY float64
}

// MatchOverEvent is broadcast when a player reaches the target score.
type MatchOverEvent struct {
	Winner       netconfig.PlayerID
	LongestRally int
}

// PlayerLeftEvent is broadcast when a paddle loses its controller.
type PlayerLeftEvent struct {
	Side netconfig.PlayerID
	Name string
}
