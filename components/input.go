package components

import "github.com/yohamta/donburi"

// InputEvent is one key transition delivered to the simulation.
type InputEvent int

const (
	PressLeft InputEvent = iota
	ReleaseLeft
	PressRight
	ReleaseRight
	PressJump
	ReleaseJump
	PressReset
)

type InputData struct {
	Pending  []InputEvent
	JumpHeld bool // armed by a jump press while standing
}

var Input = donburi.NewComponentType[InputData]()
