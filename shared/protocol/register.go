package protocol

import (
	"fmt"

	"github.com/automoto/pong/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetBall      uint = 10
	SyncIDNetPaddle    uint = 11
	SyncIDNetGameState uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetBall   uint8 = 10
	InterpIDNetPaddle uint8 = 11
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetBall,
		netcomponents.NetBallData{},
		netcomponents.NetBall,
		esync.WithInterpFn(InterpIDNetBall, netcomponents.LerpNetBall),
	); err != nil {
		return fmt.Errorf("register ball: %w", err)
	}

	if err := esync.RegisterComponent(
		SyncIDNetPaddle,
		netcomponents.NetPaddleData{},
		netcomponents.NetPaddle,
		esync.WithInterpFn(InterpIDNetPaddle, netcomponents.LerpNetPaddle),
	); err != nil {
		return fmt.Errorf("register paddle: %w", err)
	}

	// GameState: no interpolation (discrete state)
	if err := esync.RegisterComponent(
		SyncIDNetGameState,
		netcomponents.NetGameStateData{},
		netcomponents.NetGameState,
	); err != nil {
		return fmt.Errorf("register game state: %w", err)
	}

	return nil
}
