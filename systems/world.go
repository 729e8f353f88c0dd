package systems

import (
	"github.com/automoto/boxninja/components"
	cfg "github.com/automoto/boxninja/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// GetWorld returns the world singleton, or nil before it is spawned.
func GetWorld(ecs *ecs.ECS) *components.WorldData {
	e, ok := components.World.First(ecs.World)
	if !ok {
		return nil
	}
	return components.World.Get(e)
}

// GetLevel returns the level singleton, or nil before it is spawned.
func GetLevel(ecs *ecs.ECS) *components.LevelData {
	e, ok := components.Level.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Level.Get(e)
}

// GetPlayer returns the local player entry.
func GetPlayer(ecs *ecs.ECS) (*donburi.Entry, bool) {
	return components.Player.First(ecs.World)
}

// UpdateClock advances the world clock once the run has begun.
func UpdateClock(ecs *ecs.ECS) {
	world := GetWorld(ecs)
	if world == nil || !world.Started {
		return
	}
	world.Clock.Advance(cfg.C.FPS)
}

// BeginRun starts the clock and records the cycle the run began on.
func BeginRun(world *components.WorldData) {
	world.Started = true
	world.BeginCycles = world.Clock.Cycles
}

// FinishRun freezes the score as the cycles elapsed since BeginRun.
func FinishRun(world *components.WorldData) {
	if world.Finished {
		return
	}
	world.Finished = true
	world.Score = world.Clock.Cycles - world.BeginCycles
}
