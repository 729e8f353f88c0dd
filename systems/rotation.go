package systems

import (
	"math"

	"github.com/automoto/boxninja/components"
	cfg "github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/shared/gamemath"
)

// BeginRotation starts a quarter turn of every body in the stage. The
// player is not part of the stage and keeps its orientation.
func BeginRotation(stage *components.Stage, world *components.WorldData, dir int) {
	world.Rotating = true
	for _, b := range stage.Bodies {
		triggerRotation(b, dir)
	}
}

func triggerRotation(b *components.Body, dir int) {
	r := &b.Rotation
	r.Active = true
	r.Dir = dir
	r.Turns = ((r.Turns+dir)%4 + 4) % 4

	if b.Door != nil && b.Door.Closing {
		b.Door.TowardsUp = !b.Door.TowardsUp
	}
}

// AdvanceRotation steps an active turn. When the quarter turn completes the
// body is moved to its rotated place and the world flag is cleared; the
// first body to finish clears it. Returns true on completion.
func AdvanceRotation(b *components.Body, world *components.WorldData) bool {
	r := &b.Rotation
	if !r.Active {
		return false
	}

	r.Angle += cfg.Rotation.Step * float64(r.Dir)
	if math.Abs(r.Angle) < cfg.Rotation.QuarterTurn {
		return false
	}

	deg := cfg.Rotation.QuarterTurn * float64(r.Dir)
	b.X, b.Y, b.W, b.H = rotateRect(b.Rect, deg)

	r.Angle = 0
	r.Active = false
	if world.Rotating {
		world.Rotating = false
	}

	onRotationStop(b, deg)
	b.SyncProxy()
	return true
}

func rotateRect(r components.Rect, deg float64) (x, y, w, h float64) {
	return gamemath.RotateRect(r.X, r.Y, r.W, r.H, deg, float64(cfg.C.Width), float64(cfg.C.Height))
}

func onRotationStop(b *components.Body, deg float64) {
	switch b.Kind {
	case components.KindSpikes:
		turns, dir := b.Rotation.Turns, b.Rotation.Dir
		if (dir == cfg.Left && turns%2 == 0) || (dir == cfg.Right && turns%2 != 0) {
			b.Spikes.Facing *= -1
		}
	case components.KindCrossbow:
		rotateArrow(b.Crossbow, deg)
	}
}

// rotateArrow turns a crossbow's arrow with it: the current rectangle, the
// resting origin, the velocity and the launcher facing.
func rotateArrow(cb *components.CrossbowData, deg float64) {
	a := cb.Arrow
	origin := components.Rect{X: a.Arrow.OriginX, Y: a.Arrow.OriginY, W: a.W, H: a.H}

	a.X, a.Y, a.W, a.H = rotateRect(a.Rect, deg)
	a.Arrow.OriginX, a.Arrow.OriginY, _, _ = rotateRect(origin, deg)
	a.Arrow.VX, a.Arrow.VY = gamemath.RotateVector(a.Arrow.VX, a.Arrow.VY, deg)

	dx, dy := gamemath.RotateVector(float64(cb.DX), float64(cb.DY), deg)
	cb.DX, cb.DY = int(dx), int(dy)

	a.SyncProxy()
}
