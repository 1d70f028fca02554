package core

import (
	"errors"

	"github.com/automoto/pong/shared/messages"
	"github.com/automoto/pong/shared/netconfig"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrAlreadyJoined = errors.New("client already joined")
	ErrServerFull    = errors.New("server full")
)

// seat is one paddle. A seat whose controller disconnects keeps its token so
// the same player can reclaim it.
type seat struct {
	side      netconfig.PlayerID
	clientID  string
	name      string
	token     string
	connected bool
	lastSeq   uint32
	pending   messages.PaddleAction
}

// roster tracks who controls which paddle and who is watching. It is not
// goroutine safe; Server guards it with its mutex.
type roster struct {
	seats         [2]seat
	members       map[string]netconfig.PlayerID // Client id -> side, PlayerNone for spectators
	maxSpectators int
}

func newRoster(maxSpectators int) *roster {
	return &roster{
		seats: [2]seat{
			{side: netconfig.Player1},
			{side: netconfig.Player2},
		},
		members:       make(map[string]netconfig.PlayerID),
		maxSpectators: maxSpectators,
	}
}

// join seats a client. A matching reconnect token reclaims its old paddle;
// otherwise the first free paddle is taken unless the client asked to
// spectate. It returns the side (PlayerNone for spectators) and the token the
// client should keep.
func (r *roster) join(clientID, name, token string, spectate bool) (netconfig.PlayerID, string, error) {
	if _, ok := r.members[clientID]; ok {
		return netconfig.PlayerNone, "", ErrAlreadyJoined
	}

	if token != "" {
		for i := range r.seats {
			s := &r.seats[i]
			if !s.connected && s.token == token {
				r.occupy(s, clientID, name, token)
				return s.side, token, nil
			}
		}
	}

	if !spectate {
		if s := r.freeSeat(); s != nil {
			token = uuid.NewV4().String()
			r.occupy(s, clientID, name, token)
			return s.side, token, nil
		}
	}

	if r.maxSpectators >= 0 && r.spectators() >= r.maxSpectators {
		return netconfig.PlayerNone, "", ErrServerFull
	}
	r.members[clientID] = netconfig.PlayerNone
	return netconfig.PlayerNone, "", nil
}

// freeSeat prefers seats nobody has reserved, then abandoned ones.
func (r *roster) freeSeat() *seat {
	for i := range r.seats {
		if !r.seats[i].connected && r.seats[i].token == "" {
			return &r.seats[i]
		}
	}
	for i := range r.seats {
		if !r.seats[i].connected {
			return &r.seats[i]
		}
	}
	return nil
}

func (r *roster) occupy(s *seat, clientID, name, token string) {
	s.clientID = clientID
	s.name = name
	s.token = token
	s.connected = true
	s.lastSeq = 0
	s.pending = messages.PaddleActionStop
	r.members[clientID] = s.side
}

// leave forgets a client and returns the side it controlled.
func (r *roster) leave(clientID string) netconfig.PlayerID {
	side, ok := r.members[clientID]
	if !ok {
		return netconfig.PlayerNone
	}
	delete(r.members, clientID)

	if i := side.Index(); i >= 0 {
		s := &r.seats[i]
		s.connected = false
		s.clientID = ""
		s.pending = messages.PaddleActionStop
	}
	return side
}

// input records the latest action of a seated client. Out of order inputs
// are dropped.
func (r *roster) input(clientID string, in messages.PaddleInput) bool {
	side, ok := r.members[clientID]
	if !ok || side == netconfig.PlayerNone {
		return false
	}
	s := &r.seats[side.Index()]
	if in.Sequence != 0 && in.Sequence <= s.lastSeq {
		return false
	}
	s.lastSeq = in.Sequence
	s.pending = in.Action
	return true
}

// takeInputs returns and clears the pending action of each seat.
func (r *roster) takeInputs() [2]messages.PaddleAction {
	var out [2]messages.PaddleAction
	for i := range r.seats {
		out[i] = r.seats[i].pending
		r.seats[i].pending = messages.PaddleActionNone
	}
	return out
}

// full reports whether both paddles have a connected controller.
func (r *roster) full() bool {
	return r.seats[0].connected && r.seats[1].connected
}

// names returns the controller names per seat, empty for vacant seats.
func (r *roster) names() [2]string {
	var out [2]string
	for i, s := range r.seats {
		if s.connected {
			out[i] = s.name
		}
	}
	return out
}

func (r *roster) count() int {
	return len(r.members)
}

func (r *roster) spectators() int {
	n := 0
	for _, side := range r.members {
		if side == netconfig.PlayerNone {
			n++
		}
	}
	return n
}
