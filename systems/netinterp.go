package systems

import (
	"math"

	"github.com/automoto/pong/components"
	"github.com/automoto/pong/shared/netcomponents"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// maxInterpT bounds how far past the last snapshot the ball is extrapolated,
// in snapshot intervals.
const maxInterpT = 1.5

// NewNetInterpSystem returns an update system that moves networked paddles
// and the ball smoothly between server snapshots.
func NewNetInterpSystem(tickRate func() int) ecs.System {
	return func(e *ecs.ECS) {
		rate := tickRate()
		if rate <= 0 {
			rate = 60
		}
		step := float64(rate) / 60.0
		interval := 1.0 / float64(rate)

		components.NetInterp.Each(e.World, func(entry *donburi.Entry) {
			interp := components.NetInterp.Get(entry)
			if !interp.Initialized {
				return
			}
			stepInterp(interp, entry.HasComponent(netcomponents.NetBall), step, interval)
		})
	}
}

// stepInterp advances T by step and recomputes the rendered position. Only
// the ball is extrapolated: paddles turn around at their limits, so guessing
// past the last snapshot overshoots.
func stepInterp(interp *components.NetInterpData, ball bool, step, interval float64) {
	interp.T = math.Min(interp.T+step, maxInterpT)
	t := math.Min(interp.T, 1)

	if ball {
		out := netcomponents.LerpNetBall(
			netcomponents.NetBallData{X: interp.PrevX, Y: interp.PrevY},
			netcomponents.NetBallData{X: interp.TargetX, Y: interp.TargetY},
			t,
		)
		interp.X, interp.Y = out.X, out.Y
		if over := interp.T - 1; over > 0 {
			interp.X += interp.VelX * over * interval
			interp.Y += interp.VelY * over * interval
		}
		return
	}

	out := netcomponents.LerpNetPaddle(
		netcomponents.NetPaddleData{X: interp.PrevX, Y: interp.PrevY},
		netcomponents.NetPaddleData{X: interp.TargetX, Y: interp.TargetY},
		t,
	)
	interp.X, interp.Y = out.X, out.Y
}

// PushInterpTarget starts interpolating from the rendered position toward a
// new snapshot position. The first snapshot is shown as is.
func PushInterpTarget(interp *components.NetInterpData, x, y, velX, velY float64) {
	if !interp.Initialized {
		interp.PrevX, interp.PrevY = x, y
		interp.X, interp.Y = x, y
		interp.T = 1
		interp.Initialized = true
	} else {
		interp.PrevX, interp.PrevY = interp.X, interp.Y
		interp.T = 0
	}
	interp.TargetX, interp.TargetY = x, y
	interp.VelX, interp.VelY = velX, velY
}
