package systems

import (
	"math"

	"github.com/automoto/pong/components"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEffects advances paddle flashes and the table shake
func UpdateEffects(e *ecs.ECS) {
	components.Flash.Each(e.World, func(entry *donburi.Entry) {
		flash := components.Flash.Get(entry)
		if flash.Duration > 0 {
			flash.Duration--
		}
	})

	components.ScreenShake.Each(e.World, func(entry *donburi.Entry) {
		shake := components.ScreenShake.Get(entry)
		if shake.Elapsed < shake.Duration {
			shake.Elapsed++
		}
	})
}

// shakeOffset returns the current table offset in pixels, decaying to zero.
func shakeOffset(shake *components.ScreenShakeData) (float64, float64) {
	if shake == nil || shake.Duration <= 0 || shake.Elapsed >= shake.Duration {
		return 0, 0
	}
	progress := float64(shake.Duration-shake.Elapsed) / float64(shake.Duration)
	intensity := shake.Intensity * progress

	return math.Sin(float64(shake.Elapsed)*1.1) * intensity,
		math.Cos(float64(shake.Elapsed)*1.3) * intensity
}

// TriggerScreenShake starts a table shake; a weaker shake never cuts a stronger one short.
func TriggerScreenShake(e *ecs.ECS, intensity float64, duration int) {
	entry, ok := components.ScreenShake.First(e.World)
	if !ok {
		return
	}
	shake := components.ScreenShake.Get(entry)
	if shake.Elapsed < shake.Duration && intensity < shake.Intensity {
		return
	}
	*shake = components.ScreenShakeData{Intensity: intensity, Duration: duration}
}

// TriggerPaddleFlash lights the paddle of side for the given frames.
func TriggerPaddleFlash(e *ecs.ECS, side netconfig.PlayerID, frames int) {
	components.PaddleView.Each(e.World, func(entry *donburi.Entry) {
		if components.PaddleView.Get(entry).Side != side {
			return
		}
		components.Flash.Get(entry).Duration = frames
	})
}
