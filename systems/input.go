package systems

import (
	"github.com/automoto/boxninja/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// PushInput queues a key transition for the next UpdateInput.
func PushInput(ecs *ecs.ECS, ev components.InputEvent) {
	components.Input.Each(ecs.World, func(e *donburi.Entry) {
		in := components.Input.Get(e)
		in.Pending = append(in.Pending, ev)
	})
}

// UpdateInput applies queued key transitions to the player.
// Must run BEFORE UpdatePlayer in the system order.
func UpdateInput(ecs *ecs.ECS) {
	level := GetLevel(ecs)
	components.Player.Each(ecs.World, func(e *donburi.Entry) {
		player := components.Player.Get(e)
		in := components.Input.Get(e)

		for _, ev := range in.Pending {
			switch ev {
			case components.PressLeft:
				StartLeft(player)
			case components.ReleaseLeft:
				StopLeft(player)
			case components.PressRight:
				StartRight(player)
			case components.ReleaseRight:
				StopRight(player)
			case components.PressJump:
				// the jump only arms from the ground
				if player.Standing {
					in.JumpHeld = true
				}
			case components.ReleaseJump:
				in.JumpHeld = false
			case components.PressReset:
				if level != nil && level.Current != nil {
					Die(player, level.Current.Start)
				}
			}
		}
		in.Pending = in.Pending[:0]
	})
}
