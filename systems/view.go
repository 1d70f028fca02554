package systems

import (
	"math"

	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
)

// View maps centered arena units (y up) onto screen pixels (y down).
type View struct {
	Scale            float64
	CenterX, CenterY float64
	OffsetX, OffsetY float64 // Screen shake
}

// NewView fits the layout into the screen below the HUD strip.
func NewView(layout *arena.Layout, screenW, screenH, margin, hudHeight float64) View {
	availW := screenW - 2*margin
	availH := screenH - hudHeight - 2*margin
	scale := math.Min(availW/layout.Width, availH/layout.Height)
	if scale <= 0 {
		scale = 1
	}
	return View{
		Scale:   scale,
		CenterX: screenW / 2,
		CenterY: hudHeight + (screenH-hudHeight)/2,
	}
}

// Point converts an arena position to screen pixels.
func (v View) Point(p gamemath.Vec2) (float32, float32) {
	x := v.CenterX + p.X*v.Scale + v.OffsetX
	y := v.CenterY - p.Y*v.Scale + v.OffsetY
	return float32(x), float32(y)
}

// Rect converts a centered box to the top-left corner and size in pixels.
func (v View) Rect(center gamemath.Vec2, w, h float64) (x, y, sw, sh float32) {
	cx, cy := v.Point(center)
	sw = float32(w * v.Scale)
	sh = float32(h * v.Scale)
	return cx - sw/2, cy - sh/2, sw, sh
}

// Length scales an arena distance.
func (v View) Length(d float64) float32 {
	return float32(d * v.Scale)
}
