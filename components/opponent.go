package components

import (
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/yohamta/donburi"
)

// OpponentData is a snapshot of another seat, written only from room
// messages and never simulated.
type OpponentData struct {
	Color    netconfig.Color
	Position netconfig.Position
	Score    int
	Seen     bool // at least one position arrived
}

var Opponent = donburi.NewComponentType[OpponentData]()
