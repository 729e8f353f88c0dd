package systems

import "github.com/automoto/boxninja/components"

// UpdateBodies runs the per-tick update of every body in level order.
func UpdateBodies(stage *components.Stage, world *components.WorldData) {
	for _, b := range stage.Bodies {
		UpdateBody(b, world)
	}
}

// UpdateBody advances a running turn first, then the kind's own behavior.
func UpdateBody(b *components.Body, world *components.WorldData) {
	AdvanceRotation(b, world)

	switch b.Kind {
	case components.KindDoor:
		updateDoor(b)
	case components.KindCrossbow:
		updateCrossbow(b)
	case components.KindKey, components.KindGravityRotator, components.KindJet:
		spinPowerUp(b)
	}
}
