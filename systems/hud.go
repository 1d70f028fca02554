package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/fonts"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

const scoreGap = 28

var scoreDrawOp = &ebiten.DrawImageOptions{}

// UpdateHUD advances the score pop and the banner timer.
func UpdateHUD(e *ecs.ECS) {
	entry, ok := components.HUD.First(e.World)
	if !ok {
		return
	}
	advanceHUD(components.HUD.Get(entry), 1.0/60.0)
}

func advanceHUD(hud *components.HUDData, dt float32) {
	for i, pop := range hud.ScorePop {
		if pop == nil {
			hud.ScoreScale[i] = 1
			continue
		}
		v, _, done := pop.Update(dt)
		hud.ScoreScale[i] = float64(v)
		if done {
			hud.ScorePop[i] = nil
			hud.ScoreScale[i] = 1
		}
	}
	if hud.BannerTimer > 0 {
		hud.BannerTimer--
		if hud.BannerTimer == 0 {
			hud.Banner = ""
		}
	}
}

// TriggerScorePop swells the scorer's digits and lets them settle back.
func TriggerScorePop(hud *components.HUDData, side netconfig.PlayerID) {
	i := side.Index()
	if i < 0 {
		return
	}
	peak := float32(cfg.HUD.PopScale)
	grow := cfg.HUD.PopDuration / 3
	hud.ScorePop[i] = gween.NewSequence(
		gween.New(1, peak, grow, ease.OutQuad),
		gween.New(peak, 1, cfg.HUD.PopDuration-grow, ease.InOutQuad),
	)
}

// ShowBanner displays msg under the score for frames.
func ShowBanner(hud *components.HUDData, msg string, frames int) {
	hud.Banner = msg
	hud.BannerTimer = frames
}

// DrawHUD renders the score, rally counter and respawn countdown of the local match.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	matchEntry, ok := components.Match.First(e.World)
	if !ok {
		return
	}
	match := components.Match.Get(matchEntry)
	snap := match.Snapshot

	scales := [2]float64{1, 1}
	banner := ""
	if entry, ok := components.HUD.First(e.World); ok {
		hud := components.HUD.Get(entry)
		scales = hud.ScoreScale
		banner = hud.Banner
	}

	drawScore(screen, snap.Score.Player1, snap.Score.Player2, scales)
	drawRally(screen, snap.Rally, snap.LongestRally)
	if match.Session != nil {
		drawTarget(screen, match.Session.Config().TargetScore)
	}
	if snap.State == netconfig.RallyRespawning && snap.Respawn.Active {
		drawRespawn(screen, snap.Respawn.Remaining)
	}
	if banner != "" {
		drawBanner(screen, banner)
	}
	if match.Finished() {
		drawResults(screen, resultTitle(snap.Winner, match.Mode), snap.Score.Player1, snap.Score.Player2, snap.LongestRally)
	}
}

// drawScore draws both scores either side of the center, each scaled about its own center.
func drawScore(screen *ebiten.Image, p1, p2 int, scales [2]float64) {
	face := fonts.Score.Get()
	width := float64(screen.Bounds().Dx())
	y := cfg.HUD.ScoreY

	dash := "-"
	text.Draw(screen, dash, face, centeredX(dash, face, width), int(y), cfg.Gray)

	drawScaledDigits(screen, fmt.Sprint(p1), width/2-scoreGap, y, scales[0], cfg.ArenaView.PaddleColors[0])
	drawScaledDigits(screen, fmt.Sprint(p2), width/2+scoreGap, y, scales[1], cfg.ArenaView.PaddleColors[1])
}

func drawScaledDigits(screen *ebiten.Image, s string, cx, baseline, scale float64, clr color.Color) {
	face := fonts.Score.Get()
	b := text.BoundString(face, s)
	w := float64(b.Dx())
	h := float64(b.Dy())

	if scale <= 0 {
		scale = 1
	}
	scoreDrawOp.GeoM.Reset()
	scoreDrawOp.ColorScale.Reset()
	// Scale about the glyphs' center so the digits swell in place
	scoreDrawOp.GeoM.Translate(-w/2, h/2)
	scoreDrawOp.GeoM.Scale(scale, scale)
	scoreDrawOp.GeoM.Translate(cx, baseline-h/2)
	scoreDrawOp.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(screen, s, face, scoreDrawOp)
}

func drawRally(screen *ebiten.Image, rally, longest int) {
	face := fonts.Small.Get()
	text.Draw(screen, fmt.Sprintf("Rally %d", rally), face, 10, 16, cfg.White)
	text.Draw(screen, fmt.Sprintf("Best %d", longest), face, 10, 28, cfg.Gray)
}

func drawTarget(screen *ebiten.Image, target int) {
	if target <= 0 {
		return
	}
	face := fonts.Small.Get()
	label := fmt.Sprintf("First to %d", target)
	b := text.BoundString(face, label)
	text.Draw(screen, label, face, screen.Bounds().Dx()-b.Dx()-10, 16, cfg.Gray)
}

func drawRespawn(screen *ebiten.Image, remaining float64) {
	face := fonts.Bold.Get()
	width := float64(screen.Bounds().Dx())
	label := fmt.Sprintf(cfg.HUD.RespawnFormat, remaining)
	y := screen.Bounds().Dy()/2 + 40
	text.Draw(screen, label, face, centeredX(label, face, width), y, cfg.Yellow)
}

func drawBanner(screen *ebiten.Image, banner string) {
	face := fonts.Bold.Get()
	width := float64(screen.Bounds().Dx())
	y := screen.Bounds().Dy()/2 - 30
	text.Draw(screen, banner, face, centeredX(banner, face, width), y, cfg.BrightOrange)
}

// drawResults renders the end-of-match overlay.
func drawResults(screen *ebiten.Image, title string, p1, p2, longest int) {
	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.BlackOverlay, false)

	titleFont := fonts.Title.Get()
	text.Draw(screen, title, titleFont, centeredX(title, titleFont, width), int(height/2)-30, cfg.BrightOrange)

	face := fonts.Bold.Get()
	score := fmt.Sprintf("%d - %d", p1, p2)
	text.Draw(screen, score, face, centeredX(score, face, width), int(height/2)+10, cfg.White)

	rally := fmt.Sprintf("Longest rally %d", longest)
	text.Draw(screen, rally, face, centeredX(rally, face, width), int(height/2)+34, cfg.LightGreen)

	small := fonts.Small.Get()
	hint := "Press Enter to continue"
	text.Draw(screen, hint, small, centeredX(hint, small, width), int(height)-12, cfg.White)
}

// resultTitle names the winner from the local player's point of view.
func resultTitle(winner netconfig.PlayerID, mode components.MatchMode) string {
	if mode == components.MatchModeVersusCPU {
		switch winner {
		case netconfig.Player1:
			return "YOU WIN"
		case netconfig.Player2:
			return "CPU WINS"
		}
	}
	if winner == netconfig.PlayerNone {
		return "MATCH OVER"
	}
	return winner.String() + " WINS"
}
