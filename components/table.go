package components

import (
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/yohamta/donburi"
)

// PaddleViewData links a drawable paddle entity to its side of the table
type PaddleViewData struct {
	Side netconfig.PlayerID
}

var PaddleView = donburi.NewComponentType[PaddleViewData]()

// WallViewData is a static boundary drawn around the table
type WallViewData struct {
	Wall arena.Wall
}

var WallView = donburi.NewComponentType[WallViewData]()
