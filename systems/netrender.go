package systems

import (
	"fmt"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/fonts"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netcomponents"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NetSession is what the networked renderers need to know about the connection.
type NetSession interface {
	Side() netconfig.PlayerID
	ServerName() string
}

// NewNetworkTableRenderer draws the table, paddles and ball of a networked
// match from replicated state.
func NewNetworkTableRenderer(layout *arena.Layout) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		screen.Fill(cfg.ArenaView.BackgroundColor)

		view := screenView(screen, layout)
		if entry, ok := components.ScreenShake.First(e.World); ok {
			view.OffsetX, view.OffsetY = shakeOffset(components.ScreenShake.Get(entry))
		}
		drawTable(screen, view, layout, layout.Walls)

		esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
			switch {
			case entry.HasComponent(netcomponents.NetPaddle):
				p := netcomponents.NetPaddle.Get(entry)
				pos := renderedPosition(entry, p.X, p.Y)
				lit := entry.HasComponent(components.Flash) && components.Flash.Get(entry).Duration > 0
				drawPaddle(screen, view, p.Side, pos, p.Width, p.Height, lit)
			case entry.HasComponent(netcomponents.NetBall):
				b := netcomponents.NetBall.Get(entry)
				var trail *components.TrailData
				if entry.HasComponent(components.Trail) {
					trail = components.Trail.Get(entry)
				}
				drawBall(screen, view, renderedPosition(entry, b.X, b.Y), b.Radius, trail)
			}
		})
	}
}

// renderedPosition prefers the interpolated position over the raw snapshot.
func renderedPosition(entry *donburi.Entry, x, y float64) gamemath.Vec2 {
	if entry.HasComponent(components.NetInterp) {
		if interp := components.NetInterp.Get(entry); interp.Initialized {
			return gamemath.Vec2{X: interp.X, Y: interp.Y}
		}
	}
	return gamemath.Vec2{X: x, Y: y}
}

// NewNetworkHUDRenderer draws the replicated score and match state.
func NewNetworkHUDRenderer(conn NetSession) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		state := findNetGameState(e)

		scales := [2]float64{1, 1}
		banner := ""
		if entry, ok := components.HUD.First(e.World); ok {
			hud := components.HUD.Get(entry)
			scales = hud.ScoreScale
			banner = hud.Banner
		}

		side := conn.Side()
		small := fonts.Small.Get()
		info := fmt.Sprintf("Online - %s - %s", conn.ServerName(), sideLabel(side))
		text.Draw(screen, info, small, 4, 12, cfg.LightGreen)

		if state == nil {
			drawBanner(screen, "Waiting for server...")
			return
		}

		drawScore(screen, state.Player1, state.Player2, scales)
		text.Draw(screen, fmt.Sprintf("Best rally %d", state.LongestRally), small, 4, 24, cfg.Gray)

		switch {
		case state.MatchState == netcomponents.MatchStateWaiting:
			drawBanner(screen, "Waiting for opponent...")
		case state.MatchState == netcomponents.MatchStateFinished:
			drawResults(screen, networkResultTitle(state.Winner, side), state.Player1, state.Player2, state.LongestRally)
		case state.Rally == netconfig.RallyRespawning && state.RespawnActive:
			drawRespawn(screen, state.RespawnRemaining)
		}
		if banner != "" && state.MatchState == netcomponents.MatchStatePlaying {
			drawBanner(screen, banner)
		}
	}
}

func findNetGameState(e *ecs.ECS) *netcomponents.NetGameStateData {
	entry, ok := netcomponents.NetGameState.First(e.World)
	if !ok {
		return nil
	}
	return netcomponents.NetGameState.Get(entry)
}

func sideLabel(side netconfig.PlayerID) string {
	switch side {
	case netconfig.Player1:
		return "You are P1 (left)"
	case netconfig.Player2:
		return "You are P2 (right)"
	default:
		return "Spectating"
	}
}

func networkResultTitle(winner, side netconfig.PlayerID) string {
	switch {
	case winner == netconfig.PlayerNone:
		return "MATCH OVER"
	case side == netconfig.PlayerNone:
		return winner.String() + " WINS"
	case winner == side:
		return "YOU WIN"
	default:
		return "YOU LOSE"
	}
}
