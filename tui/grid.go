package tui

import (
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
)

// Grid maps arena coordinates (origin at the center, y up) onto terminal
// cells. The arena is stretched to fill the area; cells are not square
// anyway.
type Grid struct {
	Left, Top  int
	Cols, Rows int
	scaleX     float64
	scaleY     float64
	halfW      float64
	halfH      float64
}

func NewGrid(layout *arena.Layout, left, top, cols, rows int) Grid {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return Grid{
		Left:   left,
		Top:    top,
		Cols:   cols,
		Rows:   rows,
		scaleX: float64(cols) / layout.Width,
		scaleY: float64(rows) / layout.Height,
		halfW:  layout.Width / 2,
		halfH:  layout.Height / 2,
	}
}

// Cell returns the screen cell containing p, clamped to the grid.
func (g Grid) Cell(p gamemath.Vec2) (int, int) {
	x := int((p.X + g.halfW) * g.scaleX)
	y := int((g.halfH - p.Y) * g.scaleY)
	return g.Left + clamp(x, 0, g.Cols-1), g.Top + clamp(y, 0, g.Rows-1)
}

// Span returns the inclusive cell rectangle covered by a box.
func (g Grid) Span(center gamemath.Vec2, w, h float64) (x0, y0, x1, y1 int) {
	x0, y0 = g.Cell(gamemath.Vec2{X: center.X - w/2, Y: center.Y + h/2})
	x1, y1 = g.Cell(gamemath.Vec2{X: center.X + w/2, Y: center.Y - h/2})
	return x0, y0, x1, y1
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
