package factory

import (
	"github.com/automoto/pong/archetypes"
	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateMatch spawns the match singleton and the drawable table pieces for
// sess. Against the CPU, player 2 gets a bot.
func CreateMatch(ecs *ecs.ECS, sess *session.Session, mode components.MatchMode) *donburi.Entry {
	match := archetypes.Match.Spawn(ecs)
	components.Match.SetValue(match, components.MatchData{
		Session:  sess,
		Mode:     mode,
		Snapshot: sess.Snapshot(),
	})
	components.HUD.SetValue(match, components.HUDData{
		ScoreScale: [2]float64{1, 1},
	})

	layout := sess.Layout()
	for _, w := range layout.Walls {
		CreateWall(ecs, w)
	}
	for _, p := range layout.Paddles {
		CreatePaddle(ecs, p.Player)
	}
	CreateBall(ecs)

	if mode == components.MatchModeVersusCPU {
		CreateBot(ecs, netconfig.Player2, cfg.Bot.Default)
	}
	return match
}

func CreateWall(ecs *ecs.ECS, w arena.Wall) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)
	components.WallView.SetValue(wall, components.WallViewData{Wall: w})
	return wall
}

func CreatePaddle(ecs *ecs.ECS, side netconfig.PlayerID) *donburi.Entry {
	paddle := archetypes.Paddle.Spawn(ecs)
	components.PaddleView.SetValue(paddle, components.PaddleViewData{Side: side})
	return paddle
}

func CreateBall(ecs *ecs.ECS) *donburi.Entry {
	return archetypes.Ball.Spawn(ecs)
}

// CreateBot hands side's paddle to the CPU.
func CreateBot(ecs *ecs.ECS, side netconfig.PlayerID, difficulty cfg.BotDifficulty) *donburi.Entry {
	bot := archetypes.Bot.Spawn(ecs)
	components.Bot.SetValue(bot, components.BotData{
		Side:       side,
		Difficulty: difficulty,
	})
	return bot
}

// CreateNetTable spawns the score effects holder for a networked match.
func CreateNetTable(ecs *ecs.ECS) *donburi.Entry {
	table := archetypes.NetTable.Spawn(ecs)
	components.HUD.SetValue(table, components.HUDData{
		ScoreScale: [2]float64{1, 1},
	})
	return table
}
