package systems

import (
	"math"

	"github.com/automoto/boxninja/components"
)

// Collect marks a power-up as taken and fires its world effect. Effects on
// the player (keys, float) are applied by the caller.
func Collect(b *components.Body, stage *components.Stage, world *components.WorldData) {
	b.PowerUp.Collected = true
	if b.Kind == components.KindGravityRotator {
		BeginRotation(stage, world, b.PowerUp.Dir)
	}
}

// spinPowerUp advances the cosmetic spin by one degree, wrapping at 360.
func spinPowerUp(b *components.Body) {
	pu := b.PowerUp
	if pu.Spin == nil {
		return
	}
	deg, finished := pu.Spin.Update(1)
	if finished {
		pu.Spin.Reset()
		deg = 0
	}
	pu.Degree = math.Round(float64(deg))
}
