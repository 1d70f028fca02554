package systems

import (
	"log"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
	"github.com/automoto/pong/tags"
	"github.com/yohamta/donburi/ecs"
)

// TickSeconds is the fixed simulation step; ebitengine updates at 60 TPS.
const TickSeconds = 1.0 / 60.0

const goalBannerFrames = 45

// paddleCommand is what a pair of up/down keys asks of a paddle this frame.
type paddleCommand int

const (
	paddleKeep paddleCommand = iota
	paddleUp
	paddleDown
	paddleStop
)

// commandFor turns key edges into a paddle command. Without hold-to-move a
// paddle keeps its last direction after the key is released.
func commandFor(up, down components.ActionState, holdToMove bool) paddleCommand {
	switch {
	case up.JustPressed:
		return paddleUp
	case down.JustPressed:
		return paddleDown
	case !holdToMove:
		return paddleKeep
	case up.JustReleased || down.JustReleased:
		if up.Pressed {
			return paddleUp
		}
		if down.Pressed {
			return paddleDown
		}
		return paddleStop
	}
	return paddleKeep
}

func applyCommand(s *session.Session, side netconfig.PlayerID, cmd paddleCommand) {
	switch cmd {
	case paddleUp:
		s.MoveUp(side)
	case paddleDown:
		s.MoveDown(side)
	case paddleStop:
		s.StopPaddle(side)
	}
}

// NewUpdateMatch creates the local match system. onExit runs once the
// results have been shown or the player quits from the pause menu;
// onRematch runs when a rematch is picked from the pause menu.
func NewUpdateMatch(onExit, onRematch func()) ecs.System {
	return func(e *ecs.ECS) {
		matchEntry, ok := components.Match.First(e.World)
		if !ok {
			return
		}
		match := components.Match.Get(matchEntry)
		if match.Session == nil {
			return
		}

		pause := GetOrCreatePause(e)
		if pause.QuitRequested {
			pause.QuitRequested = false
			RecordMatch(match)
			onExit()
			return
		}
		if pause.RematchRequested {
			pause.RematchRequested = false
			RecordMatch(match)
			onRematch()
			return
		}
		if pause.IsPaused {
			return
		}

		input := getOrCreateInput(e)

		if match.Finished() {
			match.ResultsTimer--
			if match.ResultsTimer <= 0 || GetAction(input, cfg.ActionMenuSelect).JustPressed {
				onExit()
			}
			return
		}

		applyLocalInput(match, input)

		match.Session.Tick(TickSeconds)
		match.Snapshot = match.Session.Snapshot()
		handleMatchEvents(e, match.Session.DrainEvents())

		if entry, ok := tags.Ball.First(e.World); ok && match.Snapshot.State == netconfig.RallyInPlay {
			pos := match.Snapshot.Ball.Position
			components.Trail.Get(entry).Push(float32(pos.X), float32(pos.Y))
		}

		if match.Finished() {
			RecordMatch(match)
			match.ResultsTimer = cfg.Match.ResultsDisplayTime
			log.Printf("[match] %s won %d-%d", match.Snapshot.Winner,
				match.Snapshot.Score.Player1, match.Snapshot.Score.Player2)
		}
	}
}

func applyLocalInput(match *components.MatchData, input *components.InputData) {
	hold := cfg.Input.HoldToMove
	applyCommand(match.Session, netconfig.Player1, commandFor(
		GetAction(input, cfg.ActionP1Up), GetAction(input, cfg.ActionP1Down), hold))

	if match.Mode == components.MatchModeLocal {
		applyCommand(match.Session, netconfig.Player2, commandFor(
			GetAction(input, cfg.ActionP2Up), GetAction(input, cfg.ActionP2Down), hold))
	}
}

// handleMatchEvents turns simulation events into sound and screen effects.
func handleMatchEvents(e *ecs.ECS, events []session.Event) {
	var hud *components.HUDData
	if entry, ok := components.HUD.First(e.World); ok {
		hud = components.HUD.Get(entry)
	}

	for _, ev := range events {
		switch ev.Kind {
		case session.EventBallLaunched:
			PlaySFX(e, cfg.SoundServe)
			resetTrail(e)
		case session.EventPaddleHit:
			PlaySFX(e, cfg.SoundPaddleHit)
			TriggerPaddleFlash(e, ev.Player, cfg.HUD.FlashFrames)
		case session.EventWallHit:
			PlaySFX(e, cfg.SoundWallHit)
		case session.EventGoal:
			PlaySFX(e, cfg.SoundGoal)
			TriggerScreenShake(e, cfg.HUD.ShakeAmount, cfg.HUD.ShakeFrames)
			resetTrail(e)
			if hud != nil {
				TriggerScorePop(hud, ev.Player)
				ShowBanner(hud, ev.Player.String()+" SCORES", goalBannerFrames)
			}
		case session.EventMatchWon:
			PlaySFX(e, cfg.SoundMatchWon)
		}
	}
}

func resetTrail(e *ecs.ECS) {
	if entry, ok := tags.Ball.First(e.World); ok {
		components.Trail.Get(entry).Reset()
	}
}
