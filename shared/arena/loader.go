package arena

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/lafriks/go-tiled"
)

// Object group names read from the TMX map.
const (
	GroupWalls   = "Walls"
	GroupPaddles = "Paddles"
	GroupBall    = "Ball"
	GroupGoals   = "Goals"
)

// Load parses a TMX file into a Layout. It takes an fs.FS so callers can pass
// embed.FS (client) or os.DirFS (server).
//
// Tiled places objects by their top-left corner with y pointing down; the
// layout is centered on the middle of the map with y pointing up.
func Load(fsys fs.FS, tmxPath string) (*Layout, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	l := &Layout{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), filepath.Ext(tmxPath)),
		Width:  float64(m.Width * m.TileWidth),
		Height: float64(m.Height * m.TileHeight),
	}

	for _, og := range m.ObjectGroups {
		switch og.Name {
		case GroupWalls:
			for _, o := range og.Objects {
				l.Walls = append(l.Walls, Wall{
					Name:        o.Name,
					Center:      l.center(o.X, o.Y, o.Width, o.Height),
					Width:       o.Width,
					Height:      o.Height,
					Restitution: orDefault(o.Properties.GetFloat("restitution"), 1),
				})
			}
		case GroupPaddles:
			for _, o := range og.Objects {
				l.Paddles = append(l.Paddles, PaddleSpawn{
					Player:      netconfig.PlayerID(o.Properties.GetInt("player")),
					Center:      l.center(o.X, o.Y, o.Width, o.Height),
					Width:       o.Width,
					Height:      o.Height,
					Boundary:    o.Properties.GetFloat("boundary"),
					Restitution: orDefault(o.Properties.GetFloat("restitution"), 1),
				})
			}
		case GroupBall:
			if len(og.Objects) == 0 {
				continue
			}
			o := og.Objects[0]
			l.Ball = BallSpawn{
				Center:      l.center(o.X, o.Y, o.Width, o.Height),
				Radius:      o.Width / 2,
				Restitution: orDefault(o.Properties.GetFloat("restitution"), 1),
			}
		case GroupGoals:
			for _, o := range og.Objects {
				x := l.center(o.X, o.Y, 0, 0).X
				switch netconfig.PlayerID(o.Properties.GetInt("scorer")) {
				case netconfig.Player2:
					l.GoalLeft = x
				case netconfig.Player1:
					l.GoalRight = x
				}
			}
		}
	}

	// Player 1 first regardless of object order in the map.
	sort.Slice(l.Paddles, func(i, j int) bool {
		return l.Paddles[i].Player < l.Paddles[j].Player
	})

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("arena %s: %w", tmxPath, err)
	}
	return l, nil
}

func (l *Layout) center(x, y, w, h float64) gamemath.Vec2 {
	return gamemath.Vec2{
		X: x + w/2 - l.Width/2,
		Y: l.Height/2 - (y + h/2),
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
