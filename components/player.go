package components

import (
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Rect
	Color netconfig.Color

	VX, VY float64

	Standing    bool
	Floating    bool
	Jumping     bool
	Alive       bool
	KeepJumping bool

	Keys       int
	Level      int
	FloatStart int // world clock ticks when the current float began
}

var Player = donburi.NewComponentType[PlayerData]()
