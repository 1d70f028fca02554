package systems

import (
	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/autopilot"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateBots drives CPU paddles through the same commands a player issues.
// Must run BEFORE UpdateMatch so the intent applies to this tick.
func UpdateBots(e *ecs.ECS) {
	matchEntry, ok := components.Match.First(e.World)
	if !ok {
		return
	}
	match := components.Match.Get(matchEntry)
	if match.Session == nil || match.Finished() {
		return
	}

	snap := match.Session.Snapshot()
	limit := autopilot.InnerHalfHeight(match.Session.Layout())

	components.Bot.Each(e.World, func(entry *donburi.Entry) {
		bot := components.Bot.Get(entry)

		if bot.DecisionTimer > 0 {
			bot.DecisionTimer--
			return
		}

		tuning, ok := cfg.Bot.Difficulties[bot.Difficulty]
		if !ok {
			tuning = cfg.Bot.Difficulties[cfg.BotDifficultyNormal]
		}
		bot.DecisionTimer = tuning.ReactionDelay

		bot.Intent, bot.TargetY = autopilot.Decide(bot.Side, tuning, snap, limit)
		autopilot.Apply(match.Session, bot.Side, bot.Intent)
	})
}
