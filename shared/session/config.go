package session

// Config tunes the simulation. Geometry (walls, paddle spawns, goal lines)
// comes from the arena layout instead.
type Config struct {
	// PaddleSpeed is the paddle travel per tick while moving.
	PaddleSpeed float64
	// ServeImpulseX is the horizontal impulse given to the ball on every serve.
	ServeImpulseX float64
	// ServeImpulseYMax bounds the random vertical serve impulse to
	// [-ServeImpulseYMax, ServeImpulseYMax], zero excluded.
	ServeImpulseYMax int
	// RespawnDelay is the time in seconds between a goal and the next serve.
	RespawnDelay float64
	// BallMaxSpeed caps the ball speed; bounces gain energy otherwise.
	BallMaxSpeed float64
	// TargetScore ends the match when a player reaches it. Zero plays forever.
	TargetScore int
}

// DefaultConfig returns the tuning of the original table.
func DefaultConfig() Config {
	return Config{
		PaddleSpeed:      0.5,
		ServeImpulseX:    12,
		ServeImpulseYMax: 12,
		RespawnDelay:     1.5,
		BallMaxSpeed:     60,
		TargetScore:      0,
	}
}
