package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/fonts"
	"github.com/automoto/pong/shared/autopilot"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	debugGoalColor     = color.RGBA{255, 60, 60, 255}
	debugLimitColor    = color.RGBA{0, 255, 255, 255}
	debugVelocityColor = color.RGBA{0, 255, 0, 255}
	debugTargetColor   = color.RGBA{255, 0, 255, 255}
)

// UpdateDebug toggles the overlay with F3.
func UpdateDebug(_ *ecs.ECS) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		cfg.Debug.Overlay = !cfg.Debug.Overlay
	}
}

// DrawDebug draws the goal lines, the paddle travel limits, the ball's
// velocity and where each CPU paddle is heading.
func DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.Overlay {
		return
	}
	view, layout, ok := matchView(e, screen)
	if !ok {
		return
	}
	matchEntry, _ := components.Match.First(e.World)
	snap := components.Match.Get(matchEntry).Snapshot
	inner := autopilot.InnerHalfHeight(layout)

	for _, gx := range []float64{layout.GoalLeft, layout.GoalRight} {
		x1, y1 := view.Point(gamemath.Vec2{X: gx, Y: inner})
		x2, y2 := view.Point(gamemath.Vec2{X: gx, Y: -inner})
		vector.StrokeLine(screen, x1, y1, x2, y2, 1, debugGoalColor, false)
	}

	for _, p := range layout.Paddles {
		for _, y := range []float64{p.Boundary, -p.Boundary} {
			x1, y1 := view.Point(gamemath.Vec2{X: p.Center.X - p.Width, Y: y})
			x2, y2 := view.Point(gamemath.Vec2{X: p.Center.X + p.Width, Y: y})
			vector.StrokeLine(screen, x1, y1, x2, y2, 1, debugLimitColor, false)
		}
	}

	// Velocity drawn as a tenth of a second of travel
	ball := snap.Ball
	bx, by := view.Point(ball.Position)
	vx, vy := view.Point(ball.Position.Add(ball.Velocity.Scale(0.1)))
	vector.StrokeLine(screen, bx, by, vx, vy, 1, debugVelocityColor, false)

	tags.Bot.Each(e.World, func(entry *donburi.Entry) {
		bot := components.Bot.Get(entry)
		i := bot.Side.Index()
		if i < 0 {
			return
		}
		tx, ty := view.Point(gamemath.Vec2{X: snap.Paddles[i].Position.X, Y: bot.TargetY})
		vector.StrokeRect(screen, tx-3, ty-3, 6, 6, 1, debugTargetColor, false)
	})

	info := fmt.Sprintf("tick %d  state %s  v %.1f  fps %.0f", snap.Tick, snap.State, ball.Velocity.Len(), ebiten.ActualFPS())
	text.Draw(screen, info, fonts.Small.Get(), 4, screen.Bounds().Dy()-4, debugVelocityColor)
}
