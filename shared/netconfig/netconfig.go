// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// PlayerID identifies one side of the table.
type PlayerID int

const (
	PlayerNone PlayerID = iota
	Player1             // Left paddle
	Player2             // Right paddle
)

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "none"
	}
}

// Index returns the zero-based slot for the player, or -1 for PlayerNone.
func (p PlayerID) Index() int {
	switch p {
	case Player1:
		return 0
	case Player2:
		return 1
	default:
		return -1
	}
}

// Opponent returns the other side.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return PlayerNone
	}
}

// RallyStateID is the state of the score/respawn state machine.
type RallyStateID int

const (
	RallyInPlay     RallyStateID = iota // Ball is live
	RallyRespawning                     // Goal scored, waiting to relaunch
	RallyFinished                       // Target score reached (only with a target score)
)

func (s RallyStateID) String() string {
	switch s {
	case RallyInPlay:
		return "in-play"
	case RallyRespawning:
		return "respawning"
	case RallyFinished:
		return "finished"
	default:
		return "unknown"
	}
}
