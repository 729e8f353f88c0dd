package tags

import "github.com/yohamta/donburi"

var (
	Player   = donburi.NewTag().SetName("Player")
	Opponent = donburi.NewTag().SetName("Opponent")
)

// Resolv tags for broad-phase queries
const (
	ResolvSolid    = "solid"    // anything an arrow stops on
	ResolvCrossbow = "crossbow" // launchers; arrows pass through
	ResolvPowerUp  = "powerup"
	ResolvArrow    = "arrow"
)
