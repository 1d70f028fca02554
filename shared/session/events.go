package session

import (
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
)

// EventKind identifies something presentation may want to react to.
type EventKind int

const (
	EventBallLaunched EventKind = iota
	EventGoal
	EventPaddleHit
	EventWallHit
	EventMatchWon
)

func (k EventKind) String() string {
	switch k {
	case EventBallLaunched:
		return "ball-launched"
	case EventGoal:
		return "goal"
	case EventPaddleHit:
		return "paddle-hit"
	case EventWallHit:
		return "wall-hit"
	case EventMatchWon:
		return "match-won"
	default:
		return "unknown"
	}
}

// Event is emitted during Tick and collected with DrainEvents.
type Event struct {
	Kind     EventKind
	Player   netconfig.PlayerID // Scorer, winner or paddle owner
	Position gamemath.Vec2      // Ball position when the event happened
	Vector   gamemath.Vec2      // Launch impulse for EventBallLaunched
}
