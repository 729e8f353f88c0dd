package systems

import (
	"github.com/automoto/boxninja/components"
	cfg "github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer runs the player half of a tick: the held jump, gravity and
// then movement with collision.
func UpdatePlayer(ecs *ecs.ECS) {
	world := GetWorld(ecs)
	level := GetLevel(ecs)
	if world == nil || level == nil || level.Current == nil {
		return
	}

	components.Player.Each(ecs.World, func(e *donburi.Entry) {
		player := components.Player.Get(e)
		input := components.Input.Get(e)

		if input.JumpHeld && !world.Rotating {
			Jump(player)
		}
		Fall(player)
		StepPlayer(player, level.Current, world)
	})
}

// StepPlayer integrates the player and resolves collisions against stage.
// While the world rotates the player is frozen in place; Fall still runs,
// so the velocity keeps building.
func StepPlayer(p *components.PlayerData, stage *components.Stage, world *components.WorldData) {
	if world.Rotating {
		return
	}

	if p.Floating && world.Clock.Ticks(cfg.C.FPS)-p.FloatStart >= cfg.Physics.FloatDuration {
		p.Floating = false
	}

	p.X += p.VX
	p.Y += p.VY

	prevX := p.X - p.VX
	prevY := p.Y - p.VY

	p.Standing = false

	resolveVertical(p, prevX, prevY, stage, world)
	if !p.Alive {
		return
	}
	resolveHorizontal(p, prevX, stage, world)
}

// Fall applies gravity, or the weak upward pull while floating.
func Fall(p *components.PlayerData) {
	if p.Floating {
		if p.VY > -cfg.Physics.FloatMaxRise {
			p.VY -= cfg.Physics.FloatPull
		}
		return
	}
	p.VY += cfg.Physics.Gravity
}

// Jump starts a jump from the ground, or keeps boosting one that is still
// rising while the input is held.
func Jump(p *components.PlayerData) {
	if p.Standing {
		p.VY = -cfg.Physics.JumpSpeed
		p.Jumping = true
		p.KeepJumping = true
		return
	}
	if !p.Jumping {
		return
	}
	if p.VY > -cfg.Physics.MaxJumpSpeed && p.VY < 0 && p.KeepJumping {
		p.VY -= cfg.Physics.JumpBoost
	} else {
		p.KeepJumping = false
	}
}

// Float starts the Jet effect, measured from the current clock.
func Float(p *components.PlayerData, clock components.Clock) {
	p.FloatStart = clock.Ticks(cfg.C.FPS)
	p.Floating = true

	if p.VY < 0 {
		p.VY *= cfg.Physics.FloatDamping
	} else {
		p.VY = 0
	}
}

func StartLeft(p *components.PlayerData) {
	p.VX = cfg.Left * cfg.Physics.MoveSpeed
}

func StartRight(p *components.PlayerData) {
	p.VX = cfg.Right * cfg.Physics.MoveSpeed
}

// StopLeft only cancels a leftward move; a later right press wins.
func StopLeft(p *components.PlayerData) {
	if p.VX == cfg.Left*cfg.Physics.MoveSpeed {
		p.VX = 0
	}
}

// StopRight only cancels a rightward move.
func StopRight(p *components.PlayerData) {
	if p.VX == cfg.Right*cfg.Physics.MoveSpeed {
		p.VX = 0
	}
}

// Reset moves the player back to start and clears everything but Alive.
func Reset(p *components.PlayerData, start leveldata.Point) {
	p.X, p.Y = start.X, start.Y
	p.VX, p.VY = 0, 0

	p.Standing = false
	p.Floating = false
	p.Jumping = false
	p.KeepJumping = false

	p.Keys = 0
	p.FloatStart = 0
}

// Die resets the player to start keeping its horizontal velocity, and marks
// it dead so the level is rebuilt at the end of the tick.
func Die(p *components.PlayerData, start leveldata.Point) {
	if cfg.Debug.GodMode {
		return
	}
	vx := p.VX
	Reset(p, start)
	p.VX = vx
	p.Alive = false
}

// Passed reports whether the player has left the viewport on any side.
func Passed(p *components.PlayerData) bool {
	w, h := float64(cfg.C.Width), float64(cfg.C.Height)
	return p.Right() <= 0 || p.X >= w || p.Bottom() <= 0 || p.Y >= h
}
