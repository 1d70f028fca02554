package systems

import (
	"image/color"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/autopilot"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const centerDash = 4.0 // Arena units per dash of the center line

// matchView returns the screen transform for the local match, shake included.
func matchView(e *ecs.ECS, screen *ebiten.Image) (View, *arena.Layout, bool) {
	entry, ok := components.Match.First(e.World)
	if !ok {
		return View{}, nil, false
	}
	match := components.Match.Get(entry)
	if match.Session == nil {
		return View{}, nil, false
	}
	layout := match.Session.Layout()

	view := screenView(screen, layout)
	if shakeEntry, ok := components.ScreenShake.First(e.World); ok {
		view.OffsetX, view.OffsetY = shakeOffset(components.ScreenShake.Get(shakeEntry))
	}
	return view, layout, true
}

func screenView(screen *ebiten.Image, layout *arena.Layout) View {
	return NewView(layout,
		float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy()),
		cfg.ArenaView.Margin, cfg.ArenaView.HUDHeight)
}

// DrawTable renders the background, walls and center line.
func DrawTable(e *ecs.ECS, screen *ebiten.Image) {
	view, layout, ok := matchView(e, screen)
	if !ok {
		return
	}
	screen.Fill(cfg.ArenaView.BackgroundColor)

	walls := make([]arena.Wall, 0, len(layout.Walls))
	tags.Wall.Each(e.World, func(entry *donburi.Entry) {
		walls = append(walls, components.WallView.Get(entry).Wall)
	})
	drawTable(screen, view, layout, walls)
}

func drawTable(screen *ebiten.Image, view View, layout *arena.Layout, walls []arena.Wall) {
	inner := autopilot.InnerHalfHeight(layout)
	for y := -inner; y < inner; y += 2 * centerDash {
		top := gamemath.Vec2{Y: min(y+centerDash, inner)}
		x, sy := view.Point(top)
		vector.FillRect(screen, x-1, sy, 2, view.Length(min(centerDash, inner-y)), cfg.ArenaView.CenterLineColor, false)
	}

	for _, w := range walls {
		x, y, sw, sh := view.Rect(w.Center, w.Width, w.Height)
		vector.FillRect(screen, x, y, sw, sh, cfg.ArenaView.WallColor, false)
	}
}

// DrawPaddles renders both paddles from the latest snapshot.
func DrawPaddles(e *ecs.ECS, screen *ebiten.Image) {
	view, _, ok := matchView(e, screen)
	if !ok {
		return
	}
	matchEntry, _ := components.Match.First(e.World)
	snap := components.Match.Get(matchEntry).Snapshot

	tags.Paddle.Each(e.World, func(entry *donburi.Entry) {
		side := components.PaddleView.Get(entry).Side
		i := side.Index()
		if i < 0 {
			return
		}
		p := snap.Paddles[i]
		lit := components.Flash.Get(entry).Duration > 0
		drawPaddle(screen, view, side, p.Position, p.Width, p.Height, lit)
	})
}

func drawPaddle(screen *ebiten.Image, view View, side netconfig.PlayerID, center gamemath.Vec2, w, h float64, lit bool) {
	clr := paddleColor(side)
	if lit {
		clr = cfg.ArenaView.FlashColor
	}
	x, y, sw, sh := view.Rect(center, w, h)
	vector.FillRect(screen, x, y, sw, sh, clr, false)
}

func paddleColor(side netconfig.PlayerID) color.RGBA {
	if i := side.Index(); i >= 0 {
		return cfg.ArenaView.PaddleColors[i]
	}
	return cfg.White
}

// DrawBall renders the ball and its trail.
func DrawBall(e *ecs.ECS, screen *ebiten.Image) {
	view, _, ok := matchView(e, screen)
	if !ok {
		return
	}
	matchEntry, _ := components.Match.First(e.World)
	ball := components.Match.Get(matchEntry).Snapshot.Ball

	var trail *components.TrailData
	if entry, ok := tags.Ball.First(e.World); ok {
		trail = components.Trail.Get(entry)
	}
	drawBall(screen, view, ball.Position, ball.Radius, trail)
}

func drawBall(screen *ebiten.Image, view View, pos gamemath.Vec2, radius float64, trail *components.TrailData) {
	r := view.Length(radius)
	if trail != nil {
		trail.Each(func(i int, x, y float32) {
			alpha := uint8(20 + 100*(i+1)/len(trail.Points))
			tx, ty := view.Point(gamemath.Vec2{X: float64(x), Y: float64(y)})
			tr := r * float32(i+1) / float32(len(trail.Points)+1)
			vector.FillCircle(screen, tx, ty, tr, color.RGBA{R: alpha, G: alpha, B: alpha, A: alpha}, true)
		})
	}
	cx, cy := view.Point(pos)
	vector.FillCircle(screen, cx, cy, r, cfg.ArenaView.BallColor, true)
}
