package tui

import (
	"strings"
	"testing"

	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/autopilot"
	"github.com/automoto/pong/shared/session"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer(t *testing.T, cpu bool) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(110, 57)
	t.Cleanup(screen.Fini)

	v := NewViewer(screen, Options{
		Layout:  arena.Default(),
		Session: session.DefaultConfig(),
		CPU:     cpu,
		Tuning:  autopilot.Hard,
	})
	return v, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func row(screen tcell.SimulationScreen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestViewerKeyTogglesPaddle(t *testing.T) {
	v, _ := newTestViewer(t, false)

	require.True(t, v.HandleEvent(key('w')))
	v.Step()
	assert.Greater(t, v.Session().Snapshot().Paddles[0].VelocityY, 0.0)

	// Same direction again stops the paddle
	v.HandleEvent(key('w'))
	v.Step()
	assert.Zero(t, v.Session().Snapshot().Paddles[0].VelocityY)

	v.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	v.Step()
	assert.Less(t, v.Session().Snapshot().Paddles[1].VelocityY, 0.0)
}

func TestViewerQuitKeys(t *testing.T) {
	v, _ := newTestViewer(t, false)

	assert.False(t, v.HandleEvent(key('q')))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestViewerPauseStopsTicks(t *testing.T) {
	v, _ := newTestViewer(t, false)
	v.Step()
	ticks := v.Session().Ticks()

	v.HandleEvent(key(' '))
	v.Step()
	assert.Equal(t, ticks, v.Session().Ticks())

	v.HandleEvent(key(' '))
	v.Step()
	assert.Equal(t, ticks+1, v.Session().Ticks())
}

func TestViewerRestartOnlyWhenFinished(t *testing.T) {
	v, _ := newTestViewer(t, false)
	sess := v.Session()

	v.HandleEvent(key('r'))

	assert.Same(t, sess, v.Session())
}

func TestViewerCPUOwnsPlayerTwo(t *testing.T) {
	v, screen := newTestViewer(t, true)

	v.Draw()

	assert.Contains(t, row(screen, 0, 110), "P1  0 : 0  CPU")
}

func TestViewerDrawsBallAndPaddles(t *testing.T) {
	v, screen := newTestViewer(t, false)

	v.Draw()

	r, _, _, _ := screen.GetContent(55, 28)
	assert.Equal(t, '●', r)

	grid := NewGrid(arena.Default(), 0, 1, 110, 55)
	px, py := grid.Cell(v.Session().Snapshot().Paddles[0].Position)
	r, _, _, _ = screen.GetContent(px, py)
	assert.Equal(t, '█', r)

	assert.Contains(t, row(screen, 56, 110), "W/S and Up/Down")
}
