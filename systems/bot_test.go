package systems

import (
	"testing"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// fixedRand always serves upward: IntN(25)=13 maps to +1.
type fixedRand struct{}

func (fixedRand) IntN(n int) int { return 13 % n }

func TestUpdateBotsMovesPaddleTowardServe(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	sess := session.New(session.DefaultConfig(), arena.Default(), fixedRand{})
	sess.Start()

	matchEntry := e.World.Entry(e.World.Create(components.Match))
	components.Match.SetValue(matchEntry, components.MatchData{Session: sess, Mode: components.MatchModeVersusCPU})

	botEntry := e.World.Entry(e.World.Create(components.Bot))
	components.Bot.SetValue(botEntry, components.BotData{
		Side:       netconfig.Player2,
		Difficulty: cfg.BotDifficultyHard,
	})

	UpdateBots(e)

	bot := components.Bot.Get(botEntry)
	require.Equal(t, components.BotUp, bot.Intent)
	assert.Equal(t, cfg.Bot.Difficulties[cfg.BotDifficultyHard].ReactionDelay, bot.DecisionTimer)

	sess.Tick(1.0 / 60.0)
	assert.Greater(t, sess.Snapshot().Paddles[1].VelocityY, 0.0)
}
