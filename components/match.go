package components

import (
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
	"github.com/yohamta/donburi"
)

// MatchMode selects who drives the paddles in a local match.
type MatchMode int

const (
	MatchModeLocal    MatchMode = iota // Two players on one keyboard
	MatchModeVersusCPU                 // Player 2 is the bot
)

// MatchData holds the local simulation. This is a singleton component -
// only one match exists at a time.
type MatchData struct {
	Session *session.Session
	Mode    MatchMode

	// Snapshot is refreshed after every tick for the renderers.
	Snapshot session.Snapshot

	ResultsTimer int  // Frames left on the results screen once the match is won
	Recorded     bool // Stats for the finished match were saved
}

var Match = donburi.NewComponentType[MatchData]()

// Finished reports whether the match reached its target score.
func (m *MatchData) Finished() bool {
	return m.Snapshot.State == netconfig.RallyFinished
}
