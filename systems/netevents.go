package systems

import (
	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/messages"
	"github.com/automoto/pong/shared/netcomponents"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NetEventSource yields the server's game events received since the last drain.
type NetEventSource interface {
	DrainHitEvents() []messages.HitEvent
	DrainGoalEvents() []messages.GoalEvent
	DrainServeEvents() []messages.ServeEvent
	DrainMatchOverEvents() []messages.MatchOverEvent
	DrainPlayerLeftEvents() []messages.PlayerLeftEvent
}

// NewNetEventsSystem plays sounds and effects for server events.
func NewNetEventsSystem(src NetEventSource) ecs.System {
	return func(e *ecs.ECS) {
		var hud *components.HUDData
		if entry, ok := components.HUD.First(e.World); ok {
			hud = components.HUD.Get(entry)
		}

		for range src.DrainServeEvents() {
			PlaySFX(e, cfg.SoundServe)
			resetNetTrail(e)
		}
		for _, ev := range src.DrainHitEvents() {
			if ev.Paddle == netconfig.PlayerNone {
				PlaySFX(e, cfg.SoundWallHit)
				continue
			}
			PlaySFX(e, cfg.SoundPaddleHit)
			flashNetPaddle(e, ev.Paddle)
		}
		for _, ev := range src.DrainGoalEvents() {
			PlaySFX(e, cfg.SoundGoal)
			TriggerScreenShake(e, cfg.HUD.ShakeAmount, cfg.HUD.ShakeFrames)
			resetNetTrail(e)
			if hud != nil {
				TriggerScorePop(hud, ev.Scorer)
				ShowBanner(hud, ev.Scorer.String()+" SCORES", goalBannerFrames)
			}
		}
		for range src.DrainMatchOverEvents() {
			PlaySFX(e, cfg.SoundMatchWon)
		}
		for _, ev := range src.DrainPlayerLeftEvents() {
			if hud != nil {
				ShowBanner(hud, ev.Name+" left the table", 120)
			}
		}
	}
}

func flashNetPaddle(e *ecs.ECS, side netconfig.PlayerID) {
	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(netcomponents.NetPaddle) || !entry.HasComponent(components.Flash) {
			return
		}
		if netcomponents.NetPaddle.Get(entry).Side == side {
			components.Flash.Get(entry).Duration = cfg.HUD.FlashFrames
		}
	})
}

func resetNetTrail(e *ecs.ECS) {
	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if entry.HasComponent(components.Trail) {
			components.Trail.Get(entry).Reset()
		}
	})
}

// UpdateNetTrail records the rendered ball position for the motion trail.
func UpdateNetTrail(e *ecs.ECS) {
	state := findNetGameState(e)
	if state == nil || state.Rally != netconfig.RallyInPlay {
		return
	}
	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(netcomponents.NetBall) || !entry.HasComponent(components.Trail) {
			return
		}
		b := netcomponents.NetBall.Get(entry)
		pos := renderedPosition(entry, b.X, b.Y)
		components.Trail.Get(entry).Push(float32(pos.X), float32(pos.Y))
	})
}
