package netcomponents

import "github.com/yohamta/donburi"

type NetBallData struct {
	X, Y       float64
	VelX, VelY float64 // Client extrapolation between snapshots
	Radius     float64
}

var NetBall = donburi.NewComponentType[NetBallData]()

// LerpNetBall interpolates between two ball states. A serve teleports the
// ball back to the center, so a jump larger than maxBallJump snaps instead.
func LerpNetBall(from, to NetBallData, t float64) *NetBallData {
	if abs(to.X-from.X) > maxBallJump || abs(to.Y-from.Y) > maxBallJump {
		out := to
		return &out
	}
	return &NetBallData{
		X:      from.X + (to.X-from.X)*t,
		Y:      from.Y + (to.Y-from.Y)*t,
		VelX:   to.VelX,
		VelY:   to.VelY,
		Radius: to.Radius,
	}
}

const maxBallJump = 10.0

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
