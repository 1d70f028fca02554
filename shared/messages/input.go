package messages

// PaddleAction is a move intent sent by a controlling client.
type PaddleAction int

const (
	PaddleActionNone PaddleAction = iota
	PaddleActionUp
	PaddleActionDown
	PaddleActionStop
)

func (a PaddleAction) String() string {
	switch a {
	case PaddleActionUp:
		return "up"
	case PaddleActionDown:
		return "down"
	case PaddleActionStop:
		return "stop"
	default:
		return "none"
	}
}

// PaddleInput is sent from client to server when the player presses or
// releases a movement key. The server applies the latest one per tick.
type PaddleInput struct {
	Sequence  uint32 // Incrementing ID, stale inputs are dropped
	Action    PaddleAction
	Timestamp int64 // Client timestamp (Unix ms)
}
