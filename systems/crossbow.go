package systems

import (
	"github.com/automoto/boxninja/components"
	"github.com/automoto/boxninja/tags"
)

// updateCrossbow counts down to the next launch and flies a launched arrow.
func updateCrossbow(b *components.Body) {
	cb := b.Crossbow
	arrow := cb.Arrow

	if !arrow.Arrow.Launched {
		cb.Count++
	}
	if cb.Count >= cb.Timing {
		arrow.Arrow.Launched = true
		cb.Count = 0
	}
	if arrow.Arrow.Launched {
		flyArrow(arrow)
	}
}

// flyArrow moves the arrow one step and sends it home on its first hit.
// Launchers and power-ups never stop it.
func flyArrow(a *components.Body) {
	a.X += a.Arrow.VX
	a.Y += a.Arrow.VY
	a.SyncProxy()

	if arrowBlocked(a) {
		a.X, a.Y = a.Arrow.OriginX, a.Arrow.OriginY
		a.Arrow.Launched = false
		a.SyncProxy()
	}
}

func arrowBlocked(a *components.Body) bool {
	if a.Proxy == nil {
		return false
	}
	check := a.Proxy.Check(0, 0, tags.ResolvSolid)
	if check == nil {
		return false
	}
	for _, o := range check.ObjectsByTags(tags.ResolvSolid) {
		other, ok := o.Data.(*components.Body)
		if !ok {
			continue
		}
		if a.Rect.Overlaps(other.Rect) {
			return true
		}
	}
	return false
}
