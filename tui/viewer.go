// Package tui plays a local match in a terminal. It drives the same headless
// session the ebiten client and the server use, so the rules are identical.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/autopilot"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
	"github.com/gdamore/tcell/v2"
)

// TickRate matches the client; paddle speed is per tick.
const TickRate = 60

const goalBannerTicks = 45

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCenter = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleBall   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePaddle = [2]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorAqua),
		tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	}
)

type Options struct {
	Layout  *arena.Layout
	Session session.Config
	// CPU hands player 2 to the autopilot.
	CPU    bool
	Tuning autopilot.Tuning
	Sound  *Beeper
}

type Viewer struct {
	screen tcell.Screen
	opts   Options
	sess   *session.Session
	pilot  *autopilot.Pilot
	paused bool

	banner      string
	bannerTicks int
}

func NewViewer(screen tcell.Screen, opts Options) *Viewer {
	if opts.Layout == nil {
		opts.Layout = arena.Default()
	}
	v := &Viewer{screen: screen, opts: opts}
	v.restart()
	return v
}

func (v *Viewer) restart() {
	v.sess = session.New(v.opts.Session, v.opts.Layout, nil)
	v.pilot = nil
	if v.opts.CPU {
		v.pilot = &autopilot.Pilot{Side: netconfig.Player2, Tuning: v.opts.Tuning}
	}
	v.banner, v.bannerTicks = "", 0
	v.paused = false
	v.sess.Start()
}

// Session exposes the running match, mainly for tests.
func (v *Viewer) Session() *session.Session {
	return v.sess
}

// Run polls input and ticks the match at TickRate until ctx ends or the
// player quits.
func (v *Viewer) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if ev == nil || !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Step()
			v.Draw()
		}
	}
}

// HandleEvent applies a key press. It returns false once the player quits.
// Terminals report presses but not releases, so a key toggles movement:
// pressing the direction the paddle already moves in stops it.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.steer(netconfig.Player2, 1)
		case tcell.KeyDown:
			v.steer(netconfig.Player2, -1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'w', 'W':
				v.steer(netconfig.Player1, 1)
			case 's', 'S':
				v.steer(netconfig.Player1, -1)
			case ' ', 'p', 'P':
				v.paused = !v.paused
			case 'r', 'R':
				if v.sess.State() == netconfig.RallyFinished {
					v.restart()
				}
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) steer(side netconfig.PlayerID, dir float64) {
	if v.paused || (side == netconfig.Player2 && v.pilot != nil) {
		return
	}
	idx := side.Index()
	moving := v.sess.Snapshot().Paddles[idx].VelocityY * dir
	switch {
	case moving > 0:
		v.sess.StopPaddle(side)
	case dir > 0:
		v.sess.MoveUp(side)
	default:
		v.sess.MoveDown(side)
	}
}

// Step advances the match one tick.
func (v *Viewer) Step() {
	if v.bannerTicks > 0 {
		v.bannerTicks--
	}
	if v.paused || v.sess.State() == netconfig.RallyFinished {
		return
	}
	if v.pilot != nil {
		v.pilot.Step(v.sess)
	}
	v.sess.Tick(1.0 / TickRate)

	for _, ev := range v.sess.DrainEvents() {
		v.opts.Sound.Play(ev.Kind)
		switch ev.Kind {
		case session.EventGoal:
			v.banner, v.bannerTicks = fmt.Sprintf("%s SCORES", v.label(ev.Player)), goalBannerTicks
		case session.EventMatchWon:
			v.banner, v.bannerTicks = fmt.Sprintf("%s WINS", v.label(ev.Player)), -1
		}
	}
}

func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w < 20 || h < 8 {
		drawText(v.screen, 0, 0, "terminal too small", styleText)
		v.screen.Show()
		return
	}

	snap := v.sess.Snapshot()
	grid := NewGrid(v.opts.Layout, 0, 1, w, h-2)

	v.drawTable(grid)
	for i, p := range snap.Paddles {
		fill(v.screen, grid, p.Position.X, p.Position.Y, p.Width, p.Height, '█', stylePaddle[i])
	}
	if snap.State != netconfig.RallyRespawning {
		bx, by := grid.Cell(snap.Ball.Position)
		v.screen.SetContent(bx, by, '●', nil, styleBall)
	}

	drawCentered(v.screen, w, 0, v.scoreLine(snap), styleText)
	if v.bannerTicks != 0 && v.banner != "" {
		drawCentered(v.screen, w, h/2, v.banner, styleBanner)
	}
	drawText(v.screen, 0, h-1, v.hintLine(snap), styleCenter)
	v.screen.Show()
}

func (v *Viewer) drawTable(grid Grid) {
	layout := v.opts.Layout
	for _, wall := range layout.Walls {
		fill(v.screen, grid, wall.Center.X, wall.Center.Y, wall.Width, wall.Height, '▒', styleWall)
	}
	cx, _ := grid.Cell(layout.Ball.Center)
	for y := grid.Top; y < grid.Top+grid.Rows; y += 2 {
		v.screen.SetContent(cx, y, '┊', nil, styleCenter)
	}
}

func (v *Viewer) scoreLine(snap session.Snapshot) string {
	line := fmt.Sprintf("P1  %d : %d  %s   rally %d", snap.Score.Player1, snap.Score.Player2, v.label(netconfig.Player2), snap.Rally)
	if target := v.sess.Config().TargetScore; target > 0 {
		line += fmt.Sprintf("   first to %d", target)
	}
	if snap.Respawn.Active {
		line += fmt.Sprintf("   serve in %.1f", snap.Respawn.Remaining)
	}
	return line
}

func (v *Viewer) hintLine(snap session.Snapshot) string {
	switch {
	case snap.State == netconfig.RallyFinished:
		return "R rematch   Q quit"
	case v.paused:
		return "PAUSED   space resume   Q quit"
	case v.pilot != nil:
		return "W/S move (press again to stop)   space pause   Q quit"
	default:
		return "W/S and Up/Down move (press again to stop)   space pause   Q quit"
	}
}

func (v *Viewer) label(p netconfig.PlayerID) string {
	switch p {
	case netconfig.Player1:
		return "P1"
	case netconfig.Player2:
		if v.pilot != nil {
			return "CPU"
		}
		return "P2"
	default:
		return "NOBODY"
	}
}

func fill(screen tcell.Screen, grid Grid, cx, cy, w, h float64, r rune, style tcell.Style) {
	x0, y0, x1, y1 := grid.Span(gamemath.Vec2{X: cx, Y: cy}, w, h)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCentered(screen tcell.Screen, width, y int, s string, style tcell.Style) {
	drawText(screen, max((width-len([]rune(s)))/2, 0), y, s, style)
}
