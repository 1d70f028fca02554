package components

import (
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/autopilot"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/yohamta/donburi"
)

// BotIntent is the last movement the CPU asked for.
type BotIntent = autopilot.Intent

const (
	BotIdle = autopilot.Idle
	BotUp   = autopilot.Up
	BotDown = autopilot.Down
)

// BotData drives one paddle from the ball's position instead of the keyboard
type BotData struct {
	Side          netconfig.PlayerID
	Difficulty    cfg.BotDifficulty
	DecisionTimer int     // Ticks until the next decision
	TargetY       float64 // Where the paddle is heading
	Intent        BotIntent
}

var Bot = donburi.NewComponentType[BotData]()
