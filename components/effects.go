package components

import "github.com/yohamta/donburi"

// ScreenShakeData tracks active table shake after a goal
type ScreenShakeData struct {
	Intensity float64 // max offset in pixels
	Duration  int     // frames remaining
	Elapsed   int     // frames elapsed (for oscillation)
}

var ScreenShake = donburi.NewComponentType[ScreenShakeData]()

// FlashData lights a paddle for a few frames after it returns the ball
type FlashData struct {
	Duration int // frames remaining
}

var Flash = donburi.NewComponentType[FlashData]()

// TrailData keeps the ball's recent screen positions for the motion trail
type TrailData struct {
	Points [8][2]float32
	Count  int
	Head   int
}

var Trail = donburi.NewComponentType[TrailData]()

// Push records a point, dropping the oldest once full.
func (t *TrailData) Push(x, y float32) {
	t.Points[t.Head] = [2]float32{x, y}
	t.Head = (t.Head + 1) % len(t.Points)
	if t.Count < len(t.Points) {
		t.Count++
	}
}

// Reset forgets every point (used when the ball is re-centered).
func (t *TrailData) Reset() {
	t.Count = 0
	t.Head = 0
}

// Each visits points from oldest to newest.
func (t *TrailData) Each(fn func(i int, x, y float32)) {
	start := (t.Head - t.Count + len(t.Points)) % len(t.Points)
	for i := 0; i < t.Count; i++ {
		p := t.Points[(start+i)%len(t.Points)]
		fn(i, p[0], p[1])
	}
}
