package netcomponents

import (
	"github.com/automoto/pong/shared/netconfig"
	"github.com/yohamta/donburi"
)

type MatchState int

const (
	MatchStateWaiting MatchState = iota // Fewer than two players
	MatchStatePlaying
	MatchStateFinished
)

func (m MatchState) String() string {
	switch m {
	case MatchStatePlaying:
		return "playing"
	case MatchStateFinished:
		return "finished"
	default:
		return "waiting"
	}
}

type NetGameStateData struct {
	Player1, Player2 int // Score
	Rally            netconfig.RallyStateID
	RespawnRemaining float64
	RespawnActive    bool
	Winner           netconfig.PlayerID
	LongestRally     int
	MatchState       MatchState
}

var NetGameState = donburi.NewComponentType[NetGameStateData]()
