package tui

import (
	"testing"

	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/stretchr/testify/assert"
)

func TestGridCellMapsCenterAndCorners(t *testing.T) {
	g := NewGrid(arena.Default(), 0, 0, 110, 110)

	x, y := g.Cell(gamemath.Vec2{})
	assert.Equal(t, 55, x)
	assert.Equal(t, 55, y)

	x, y = g.Cell(gamemath.Vec2{X: -55, Y: 55})
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	// The far edge lands one past the grid and is clamped.
	x, y = g.Cell(gamemath.Vec2{X: 55, Y: -55})
	assert.Equal(t, 109, x)
	assert.Equal(t, 109, y)
}

func TestGridCellHonorsOffset(t *testing.T) {
	g := NewGrid(arena.Default(), 3, 1, 110, 55)

	x, y := g.Cell(gamemath.Vec2{Y: 10})
	assert.Equal(t, 58, x)
	assert.Equal(t, 1+22, y)
}

func TestGridSpanCoversPaddle(t *testing.T) {
	g := NewGrid(arena.Default(), 0, 0, 110, 110)

	x0, y0, x1, y1 := g.Span(gamemath.Vec2{X: -40}, 3, 10)

	assert.Equal(t, 13, x0)
	assert.Equal(t, 16, x1)
	assert.Equal(t, 50, y0)
	assert.Equal(t, 60, y1)
}

func TestGridNeverDividesByZero(t *testing.T) {
	g := NewGrid(arena.Default(), 0, 0, 0, 0)

	x, y := g.Cell(gamemath.Vec2{X: 20, Y: 20})
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}
