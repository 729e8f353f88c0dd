package systems

import (
	"github.com/automoto/boxninja/components"
	cfg "github.com/automoto/boxninja/config"
)

// resolveVertical snaps the player against bodies it hit while moving up
// or down. Bodies are visited in level order.
func resolveVertical(p *components.PlayerData, prevX, prevY float64, stage *components.Stage, world *components.WorldData) {
	for _, b := range stage.Bodies {
		if touchSpecial(p, b, stage, world) {
			if !p.Alive {
				return
			}
			continue
		}
		if !b.Collides(p.Rect) {
			continue
		}

		switch {
		case p.VY < 0 && prevY >= b.Bottom():
			if cornerTouch(p, prevX, b) {
				continue
			}
			p.Y = b.Bottom()
			p.VY = cfg.Physics.CeilingNudge

		case p.VY > 0 && prevY+p.H <= b.Y:
			if cornerTouch(p, prevX, b) {
				continue
			}
			p.Y = b.Y - p.H

			if b.Kind == components.KindSpringBoard {
				if p.VY < cfg.Physics.SpringCap {
					p.VY *= -cfg.Physics.SpringGain
				} else {
					p.VY *= -1
				}
			} else {
				p.VY = 0
				p.Standing = true
				p.Jumping = false
			}
		}
	}
}

// resolveHorizontal snaps the player against walls. Every snap while
// falling takes off half a gravity step, once per body.
func resolveHorizontal(p *components.PlayerData, prevX float64, stage *components.Stage, world *components.WorldData) {
	for _, b := range stage.Bodies {
		if touchSpecial(p, b, stage, world) {
			if !p.Alive {
				return
			}
			continue
		}
		if !b.Collides(p.Rect) {
			continue
		}

		switch {
		case p.VX < 0 && prevX >= b.Right():
			if p.Standing && p.Y == b.Y {
				continue
			}
			p.X = b.Right()
		case p.VX > 0 && prevX+p.W <= b.X:
			if p.Standing && p.Y == b.Y {
				continue
			}
			p.X = b.X - p.W
		default:
			continue
		}

		if p.VY > 0 && !p.Floating {
			p.VY -= cfg.Physics.Gravity / 2
		}
	}
}

// cornerTouch reports a player that was exactly beside b before moving, so
// sliding past its corner is not a landing.
func cornerTouch(p *components.PlayerData, prevX float64, b *components.Body) bool {
	return prevX == b.Right() || prevX+p.W == b.X
}

// touchSpecial handles bodies with their own contact rules. It returns true
// when b is consumed and must not be resolved as a solid this pass.
func touchSpecial(p *components.PlayerData, b *components.Body, stage *components.Stage, world *components.WorldData) bool {
	if b.Kind == components.KindCrossbow {
		if p.Rect.Overlaps(b.Crossbow.Arrow.Hitbox()) {
			Die(p, stage.Start)
			return true
		}
	}

	if !b.Collides(p.Rect) {
		return false
	}

	switch {
	case b.Kind.IsPowerUp():
		if !b.PowerUp.Collected {
			Collect(b, stage, world)
			switch b.Kind {
			case components.KindKey:
				p.Keys++
			case components.KindJet:
				Float(p, world.Clock)
			}
		}
		return true
	case b.Kind == components.KindSpikes:
		Die(p, stage.Start)
		return true
	case b.Kind == components.KindDoor:
		return b.Door.Open
	}
	return false
}
