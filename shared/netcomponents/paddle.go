package netcomponents

import (
	"github.com/automoto/pong/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPaddleData struct {
	Side          netconfig.PlayerID
	X, Y          float64
	VelocityY     float64
	Width, Height float64
	OwnerName     string // Empty while nobody controls the paddle
}

var NetPaddle = donburi.NewComponentType[NetPaddleData]()

// LerpNetPaddle interpolates the vertical position only; x is fixed.
func LerpNetPaddle(from, to NetPaddleData, t float64) *NetPaddleData {
	out := to
	out.Y = from.Y + (to.Y-from.Y)*t
	return &out
}
